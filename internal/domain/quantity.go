package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// QuantityAllKeyword selects the maximum possible amount
const QuantityAllKeyword = "all"

// Quantity is either a positive count or the "all" sentinel
type Quantity struct {
	count int
	all   bool
}

// AllQuantity returns the "all" sentinel
func AllQuantity() Quantity {
	return Quantity{all: true}
}

// Exactly returns a fixed quantity. Non-positive values are rejected where the quantity is used.
func Exactly(n int) Quantity {
	return Quantity{count: n}
}

// ParseQuantity parses "all" (any case) or a decimal integer
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, QuantityAllKeyword) {
		return AllQuantity(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q is not a number or %q", ErrInvalidQuantity, s, QuantityAllKeyword)
	}
	if n <= 0 {
		return Quantity{}, fmt.Errorf("%w: must be at least 1", ErrInvalidQuantity)
	}
	return Exactly(n), nil
}

// IsAll reports whether this is the "all" sentinel
func (q Quantity) IsAll() bool {
	return q.all
}

// Count returns the fixed count (zero for "all")
func (q Quantity) Count() int {
	return q.count
}

// String implements fmt.Stringer
func (q Quantity) String() string {
	if q.all {
		return QuantityAllKeyword
	}
	return strconv.Itoa(q.count)
}
