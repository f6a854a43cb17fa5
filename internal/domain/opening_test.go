package domain

import (
	"errors"
	"testing"
)

func TestNewOpening(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		width     float64
		height    float64
		kind      OpeningKind
		wantField string
	}{
		{name: "ValidWindow", width: 1.2, height: 1.5, kind: KindWindow},
		{name: "ValidDoor", width: 0.9, height: 2.0, kind: KindDoor},
		{name: "ZeroWidth", width: 0, height: 1.5, kind: KindWindow, wantField: "opening width"},
		{name: "NegativeWidth", width: -1.2, height: 1.5, kind: KindWindow, wantField: "opening width"},
		{name: "ZeroHeight", width: 1.2, height: 0, kind: KindDoor, wantField: "opening height"},
		{name: "NegativeHeight", width: 1.2, height: -2, kind: KindDoor, wantField: "opening height"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewOpening(tc.width, tc.height, tc.kind)

			if tc.wantField != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if verr.Field != tc.wantField {
					t.Fatalf("expected field %q, got %q", tc.wantField, verr.Field)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Width != tc.width || got.Height != tc.height || got.Kind != tc.kind {
				t.Fatalf("unexpected opening: %+v", got)
			}
		})
	}
}

func TestOpeningArea(t *testing.T) {
	t.Parallel()

	o, err := NewOpening(1.2, 1.5, KindWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := o.Area(), 1.8; !almostEqual(got, want) {
		t.Fatalf("expected area %.2f, got %.2f", want, got)
	}
}

func TestOpeningEquality(t *testing.T) {
	t.Parallel()

	a, _ := NewOpening(1.2, 1.5, KindWindow)
	b, _ := NewOpening(1.2, 1.5, KindWindow)
	c, _ := NewOpening(1.2, 1.5, KindDoor)

	if a != b {
		t.Fatalf("expected identical openings to be equal")
	}
	if a == c {
		t.Fatalf("expected openings of different kinds to differ")
	}
}

func TestParseOpeningKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    OpeningKind
		wantErr bool
	}{
		{raw: "window", want: KindWindow},
		{raw: "WINDOW", want: KindWindow},
		{raw: " Door ", want: KindDoor},
		{raw: "door", want: KindDoor},
		{raw: "skylight", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseOpeningKind(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	const epsilon = 1e-9
	diff := a - b
	return diff < epsilon && diff > -epsilon
}
