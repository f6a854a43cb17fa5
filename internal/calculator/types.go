package calculator

// Calculator describes the behaviour required from a rolls calculator: a
// single deterministic computation over its bound configuration. Alternative
// strategies (and test fakes) implement this interface and can be swapped
// into the Wallpaper facade at runtime.
type Calculator interface {
	RollsNeeded() (int, error)
}
