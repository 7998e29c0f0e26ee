// Package digits counts the decimal digits of integers.
package digits

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrNotInteger is returned by Parse for text that is not a base-10 integer.
var ErrNotInteger = errors.New("not an integer")

// Count returns the number of decimal digits of n, ignoring its sign.
// Count(0) is 1.
func Count(n int64) int {
	// comparing against both bounds avoids negating math.MinInt64
	if n > -10 && n < 10 {
		return 1
	}
	return 1 + Count(n/10)
}

// CountBig is Count for integers of arbitrary size.
func CountBig(n *big.Int) int {
	if n.IsInt64() {
		return Count(n.Int64())
	}
	return len(new(big.Int).Abs(n).Text(10))
}

// Parse reads s as a base-10 integer with an optional sign. Surrounding
// whitespace is ignored; fractions and exponents are rejected.
func Parse(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return n, nil
}
