package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	producterrors "github.com/abgdnv/inventory/internal/product/errors"
)

// Field identifies one user-supplied attribute of a product.
type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldQuantity
)

// ProductInput is the raw text a user typed for a new product.
type ProductInput struct {
	Name     string
	Price    string
	Quantity string
}

// newValidator returns a validator that understands decimal.Decimal fields.
// A decimal is presented to the validator as its sign (-1, 0 or 1), so only
// zero-bound tags such as gte=0 are meaningful on it, and they are exact for
// values too small or too large for a float64.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

var validate = newValidator()

// ValidateField parses and checks a single raw value. It returns the same errors
// Add would return for that field, so callers can reject bad input early.
func ValidateField(field Field, raw string) error {
	switch field {
	case FieldName:
		return validateName(raw)
	case FieldPrice:
		_, err := parsePrice(raw)
		return err
	case FieldQuantity:
		_, err := parseQuantity(raw)
		return err
	default:
		return fmt.Errorf("unknown field %d", field)
	}
}

// parseInput converts raw input into a product DTO, checking fields in prompt order.
func parseInput(in ProductInput) (ProductDto, error) {
	if err := validateName(in.Name); err != nil {
		return ProductDto{}, err
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return ProductDto{}, err
	}
	quantity, err := parseQuantity(in.Quantity)
	if err != nil {
		return ProductDto{}, err
	}

	dto := ProductDto{
		Name:     strings.TrimSpace(in.Name),
		Price:    price,
		Quantity: quantity,
	}
	if err := validate.Struct(dto); err != nil {
		return ProductDto{}, toDomainError(err)
	}
	return dto, nil
}

func validateName(raw string) error {
	if err := validate.Var(strings.TrimSpace(raw), "required"); err != nil {
		return producterrors.ErrEmptyName
	}
	return nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w: %q", producterrors.ErrInvalidPrice, producterrors.ErrMalformedNumber, s)
	}
	if price.IsNegative() || validate.Var(price, "gte=0") != nil {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", producterrors.ErrInvalidPrice, s)
	}
	return price, nil
}

func parseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	quantity, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %q", producterrors.ErrInvalidQuantity, producterrors.ErrMalformedNumber, s)
	}
	if err := validate.Var(quantity, "gte=0"); err != nil {
		return 0, fmt.Errorf("%w: %d is negative", producterrors.ErrInvalidQuantity, quantity)
	}
	return quantity, nil
}

// toDomainError maps the first failed struct field to its sentinel error.
func toDomainError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}
	switch vErrs[0].Field() {
	case "Name":
		return producterrors.ErrEmptyName
	case "Price":
		return fmt.Errorf("%w: %v", producterrors.ErrInvalidPrice, vErrs[0].Value())
	case "Quantity":
		return fmt.Errorf("%w: %v", producterrors.ErrInvalidQuantity, vErrs[0].Value())
	default:
		return err
	}
}
