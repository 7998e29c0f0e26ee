package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadFrom_Defaults(t *testing.T) {
	// given
	dir := t.TempDir()
	// when
	cfg, err := LoadFrom(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	// then
	require.NoError(t, err)
	assert.Equal(t, "produtos.json", cfg.Data.File)
	assert.Equal(t, BackendFile, cfg.Data.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
}

func Test_LoadFrom_Precedence(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", `
data:
  file: from-yaml.json
log:
  level: info
  format: text
`)
	envFile := writeFile(t, dir, ".env", "INVENTORY_LOG_LEVEL=debug\nINVENTORY_DATA_FILE=from-dotenv.json\n")
	t.Setenv("INVENTORY_DATA_FILE", "from-env.json")
	// when
	cfg, err := LoadFrom(yamlFile, envFile)
	// then
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.Data.File, "system env wins over .env and yaml")
	assert.Equal(t, "debug", cfg.Log.Level, ".env wins over yaml")
	assert.Equal(t, "text", cfg.Log.Format, "yaml wins over defaults")
}

func Test_LoadFrom_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "unknown backend", yaml: "data:\n  backend: postgres\n"},
		{name: "unknown log level", yaml: "log:\n  level: verbose\n"},
		{name: "unknown log format", yaml: "log:\n  format: xml\n"},
		{name: "file backend without file", yaml: "data:\n  file: \"\"\n  backend: file\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			dir := t.TempDir()
			yamlFile := writeFile(t, dir, "config.yaml", tc.yaml)
			// when
			cfg, err := LoadFrom(yamlFile, filepath.Join(dir, "missing.env"))
			// then
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func Test_LoadFrom_InvalidFromEnv(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Setenv("INVENTORY_DATA_BACKEND", "postgres")
	// when
	cfg, err := LoadFrom(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	// then
	assert.ErrorContains(t, err, "invalid configuration")
	assert.Nil(t, cfg)
}

func Test_LoadFrom_MemoryBackendNeedsNoFile(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", "data:\n  file: \"\"\n  backend: memory\n")
	// when
	cfg, err := LoadFrom(yamlFile, filepath.Join(dir, "missing.env"))
	// then
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Data.Backend)
	assert.Empty(t, cfg.Data.File)
}

func Test_Config_String(t *testing.T) {
	// given
	var cfg Config
	cfg.Data.File = "produtos.json"
	cfg.Data.Backend = BackendFile
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"
	// when
	s := cfg.String()
	// then
	assert.Equal(t, "data.file=produtos.json, data.backend=file, log.level=warn, log.format=json, log.file=<stderr>", s)
}
