package calculator

import "fmt"

// RollTooShortError is returned when the roll cannot yield even one full
// strip at the current strip height. It is distinct from dimension errors:
// both inputs can be individually valid and still not fit together.
type RollTooShortError struct {
	RollLength  float64
	StripHeight float64
}

func (e *RollTooShortError) Error() string {
	return fmt.Sprintf("roll too short for at least one strip: roll_length=%.2f m, strip_height=%.2f m",
		e.RollLength, e.StripHeight)
}
