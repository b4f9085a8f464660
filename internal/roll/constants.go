package roll

// Dampening policy defaults
const (
	// DefaultCommonCutoff is the largest base denominator treated as a common item
	DefaultCommonCutoff int64 = 50

	// DefaultCommonExponent damps luck above 1 for common items (luck^exponent)
	DefaultCommonExponent = 0.1

	// DefaultMinDenominator keeps rare effective denominators away from zero
	DefaultMinDenominator = 1e-10
)
