package utils

import (
	"math/rand/v2"
)

// RandomFloat returns a uniform float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Drop rolls are game logic, not security critical
}
