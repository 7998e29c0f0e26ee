package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Config struct {
	Data struct {
		File    string `koanf:"file" validate:"required_if=Backend file"`
		Backend string `koanf:"backend" validate:"oneof=file memory"`
	} `koanf:"data"`

	Log struct {
		Level  string `koanf:"level" validate:"oneof=debug info warn error"`
		Format string `koanf:"format" validate:"oneof=json text"`
		File   string `koanf:"file"`
	} `koanf:"log"`
}

func (c Config) String() string {
	logFile := c.Log.File
	if logFile == "" {
		logFile = "<stderr>"
	}
	return fmt.Sprintf("data.file=%s, data.backend=%s, log.level=%s, log.format=%s, log.file=%s",
		c.Data.File,
		c.Data.Backend,
		c.Log.Level,
		c.Log.Format,
		logFile)
}

const (
	envPrefix      = "inventory_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"
)

var defaults = map[string]any{
	"data.file":    "produtos.json",
	"data.backend": BackendFile,
	"log.level":    "warn",
	"log.format":   "json",
	"log.file":     "",
}

// Load reads the configuration from config.yaml, .env and environment variables
func Load() (*Config, error) {
	return LoadFrom(configFile, defaultEnvFile)
}

// LoadFrom reads the configuration from the given yaml and .env files, then from
// environment variables prefixed with INVENTORY_. Missing files are skipped.
func LoadFrom(yamlFile, envFile string) (*Config, error) {
	var k = koanf.New(".")

	// 0. Defaults, the lowest priority
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// 1. Load configuration from yaml file
	if err := k.Load(file.Provider(yamlFile), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("WARN: error loading YAML config: %v", err)
		}
	}

	// 2. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			envMap[keyTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(strings.ToUpper(envPrefix), ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading env vars: %v", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// keyTransformer transforms environment variable keys to match the expected format
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(key, "_", ".")
}
