// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	producterrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/abgdnv/inventory/internal/product/store"
)

// MaxProducts is the capacity of the register.
const MaxProducts = 50

// Register defines the methods for managing the in-memory product register.
// Every successful mutation re-persists the whole register through the store.
type Register interface {
	// Add validates the input and appends a new product.
	// Returns ErrLimitReached, ErrEmptyName, ErrInvalidPrice or ErrInvalidQuantity
	// without mutating anything when the input is rejected.
	Add(ctx context.Context, in ProductInput) (*ProductDto, error)

	// List returns every product in insertion order.
	List() []ProductDto

	// Remove deletes the first product whose name matches case-insensitively,
	// after confirm approves it.
	// Returns ErrProductNotFound or ErrRemovalCancelled without mutating anything.
	Remove(ctx context.Context, name string, confirm Confirmer) (*ProductDto, error)

	// Count returns the number of products currently held.
	Count() int
}

// Confirmer asks whether the given product should really be removed.
type Confirmer func(ctx context.Context, product ProductDto) (bool, error)

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	Name     string          `validate:"required"`
	Price    decimal.Decimal `validate:"gte=0"`
	Quantity int             `validate:"gte=0"`
}

// register implements Register on top of a ProductStore.
type register struct {
	repository store.ProductStore
	products   []store.Product
	logger     *slog.Logger
}

// NewRegister loads the current products from repo and returns a Register over them.
func NewRegister(ctx context.Context, repo store.ProductStore, logger *slog.Logger) (Register, error) {
	products, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if products == nil {
		products = []store.Product{}
	}

	r := &register{
		repository: repo,
		products:   products,
		logger:     logger.With("component", "register"),
	}
	r.logger.InfoContext(ctx, "Register loaded", "count", len(products))
	return r, nil
}

// Add appends a validated product and persists the register.
func (r *register) Add(ctx context.Context, in ProductInput) (*ProductDto, error) {
	if len(r.products) >= MaxProducts {
		r.logger.WarnContext(ctx, "Product limit reached", "limit", MaxProducts)
		return nil, producterrors.ErrLimitReached
	}

	dto, err := parseInput(in)
	if err != nil {
		r.logger.DebugContext(ctx, "Product rejected", "error", err)
		return nil, err
	}

	r.products = append(r.products, toStore(dto))
	if err := r.persist(ctx); err != nil {
		r.products = r.products[:len(r.products)-1]
		return nil, err
	}

	r.logger.InfoContext(ctx, "Product added", "name", dto.Name, "count", len(r.products))
	return &dto, nil
}

// List returns a copy of all products.
func (r *register) List() []ProductDto {
	list := make([]ProductDto, len(r.products))
	for i, p := range r.products {
		list[i] = toDto(p)
	}
	return list
}

// Remove deletes the first case-insensitive name match once confirmed.
func (r *register) Remove(ctx context.Context, name string, confirm Confirmer) (*ProductDto, error) {
	query := strings.TrimSpace(name)
	idx := r.indexOf(query)
	if idx < 0 {
		r.logger.DebugContext(ctx, "Product not found", "name", query)
		return nil, fmt.Errorf("%w: %q", producterrors.ErrProductNotFound, query)
	}

	found := toDto(r.products[idx])
	ok, err := confirm(ctx, found)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.logger.DebugContext(ctx, "Removal cancelled", "name", found.Name)
		return nil, producterrors.ErrRemovalCancelled
	}

	previous := r.products
	r.products = make([]store.Product, 0, len(previous)-1)
	r.products = append(r.products, previous[:idx]...)
	r.products = append(r.products, previous[idx+1:]...)
	if err := r.persist(ctx); err != nil {
		r.products = previous
		return nil, err
	}

	r.logger.InfoContext(ctx, "Product removed", "name", found.Name, "count", len(r.products))
	return &found, nil
}

// Count returns the number of products.
func (r *register) Count() int {
	return len(r.products)
}

func (r *register) indexOf(name string) int {
	for i, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

func (r *register) persist(ctx context.Context) error {
	if err := r.repository.Save(ctx, r.products); err != nil {
		r.logger.ErrorContext(ctx, "Error saving products", "error", err)
		return fmt.Errorf("%w: %w", producterrors.ErrSaveFailed, err)
	}
	return nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product store.Product) ProductDto {
	return ProductDto{
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

func toStore(dto ProductDto) store.Product {
	return store.Product{
		Name:     dto.Name,
		Price:    dto.Price,
		Quantity: dto.Quantity,
	}
}
