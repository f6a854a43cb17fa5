package calculator

import "github.com/Vilis322/roomsizer/internal/domain"

// Wallpaper is a thin facade over a rolls calculator. It holds exactly one
// Calculator at a time and forwards RollsNeeded to it; the strategy can be
// replaced at runtime, which tests use to plug in fakes.
type Wallpaper struct {
	calculator Calculator
}

// NewWallpaper constructs a facade backed by a StripCalculator bound to the
// given roll dimensions, room, and policy.
func NewWallpaper(rollWidth, rollLength float64, room *domain.Room, policy domain.WastePolicy) (*Wallpaper, error) {
	calc, err := New(rollWidth, rollLength, room, policy)
	if err != nil {
		return nil, err
	}
	return &Wallpaper{calculator: calc}, nil
}

// NewWallpaperWith constructs a facade around an already-built calculator.
func NewWallpaperWith(calc Calculator) *Wallpaper {
	return &Wallpaper{calculator: calc}
}

// Calculator returns the current strategy.
func (w *Wallpaper) Calculator() Calculator {
	return w.calculator
}

// SetCalculator replaces the strategy.
func (w *Wallpaper) SetCalculator(calc Calculator) {
	w.calculator = calc
}

// RollsNeeded forwards to the held calculator.
func (w *Wallpaper) RollsNeeded() (int, error) {
	return w.calculator.RollsNeeded()
}
