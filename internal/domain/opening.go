package domain

import (
	"fmt"
	"strings"
)

// OpeningKind is the type of an opening in a room wall.
type OpeningKind string

const (
	KindWindow OpeningKind = "window"
	KindDoor   OpeningKind = "door"
)

// ParseOpeningKind normalizes a textual kind ("window"/"door", any case)
// into an OpeningKind.
func ParseOpeningKind(raw string) (OpeningKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(KindWindow):
		return KindWindow, nil
	case string(KindDoor):
		return KindDoor, nil
	default:
		return "", fmt.Errorf("unknown opening kind %q, expected %q or %q", raw, KindWindow, KindDoor)
	}
}

// Opening is an immutable window or door in a room wall. It is a plain
// comparable value: two openings with the same dimensions and kind are equal,
// which Room.RemoveOpening relies on.
type Opening struct {
	Width  float64
	Height float64
	Kind   OpeningKind
}

// NewOpening validates dimensions and constructs an Opening.
func NewOpening(width, height float64, kind OpeningKind) (Opening, error) {
	if width <= 0 {
		return Opening{}, newValidationError("opening width", width, "opening width must be positive, got %.2f m", width)
	}
	if height <= 0 {
		return Opening{}, newValidationError("opening height", height, "opening height must be positive, got %.2f m", height)
	}
	return Opening{Width: width, Height: height, Kind: kind}, nil
}

// Area returns the area of the opening in square meters.
func (o Opening) Area() float64 {
	return o.Width * o.Height
}

func (o Opening) String() string {
	return fmt.Sprintf("%s %.2fm x %.2fm", o.Kind, o.Width, o.Height)
}
