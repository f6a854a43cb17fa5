package domain

// WastePolicy is an immutable value describing extra material reserved for
// waste: DropAllowance adds meters to every strip for pattern matching,
// ExtraFactor multiplies the strip count before rounding up to whole rolls.
type WastePolicy struct {
	DropAllowance float64
	ExtraFactor   float64
}

// NewWastePolicy validates parameters and constructs a WastePolicy.
func NewWastePolicy(dropAllowance, extraFactor float64) (WastePolicy, error) {
	if dropAllowance < 0 {
		return WastePolicy{}, newValidationError("drop allowance", dropAllowance,
			"drop allowance cannot be negative, got %.2f m", dropAllowance)
	}
	if extraFactor < 1.0 {
		return WastePolicy{}, newValidationError("extra factor", extraFactor,
			"extra factor must be >= 1.0, got %.2f", extraFactor)
	}
	return WastePolicy{DropAllowance: dropAllowance, ExtraFactor: extraFactor}, nil
}

// DefaultWastePolicy returns a policy with no extra allowances.
func DefaultWastePolicy() WastePolicy {
	return WastePolicy{DropAllowance: 0, ExtraFactor: 1.0}
}
