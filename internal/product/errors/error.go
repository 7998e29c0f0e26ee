// Package errors provides custom error types for product-related operations.
package errors

import "errors"

// Validation errors. The register is never mutated when one of them is returned.
var ErrLimitReached = errors.New("product limit reached")
var ErrEmptyName = errors.New("product name is empty")
var ErrInvalidPrice = errors.New("invalid price")
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrMalformedNumber marks numeric input that could not be parsed at all,
// as opposed to a parsed value that is out of range.
var ErrMalformedNumber = errors.New("malformed number")

var ErrProductNotFound = errors.New("product not found")
var ErrRemovalCancelled = errors.New("removal cancelled")
var ErrSaveFailed = errors.New("can't save products")
