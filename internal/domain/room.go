package domain

// Room is a rectangular room defined by its width, length, and height in
// meters. Openings (windows and doors) can be added to account for wall area
// that needs no wallpaper. A Room is not safe for concurrent use; each
// request or caller is expected to build its own.
type Room struct {
	width    float64
	length   float64
	height   float64
	openings []Opening
}

// NewRoom validates dimensions and constructs a Room with no openings.
func NewRoom(width, length, height float64) (*Room, error) {
	if width <= 0 {
		return nil, newValidationError("room width", width, "room width must be positive, got %.2f m", width)
	}
	if length <= 0 {
		return nil, newValidationError("room length", length, "room length must be positive, got %.2f m", length)
	}
	if height <= 0 {
		return nil, newValidationError("room height", height, "room height must be positive, got %.2f m", height)
	}
	return &Room{width: width, length: length, height: height}, nil
}

func (r *Room) Width() float64  { return r.width }
func (r *Room) Length() float64 { return r.length }
func (r *Room) Height() float64 { return r.height }

// Openings returns a defensive copy of the openings in insertion order.
func (r *Room) Openings() []Opening {
	out := make([]Opening, len(r.openings))
	copy(out, r.openings)
	return out
}

// AddOpening appends an opening after checking it fits the room: its height
// must not exceed the room height and its width must not exceed the longer
// wall. Aggregate coverage is deliberately NOT checked here; NetWallArea
// performs that check lazily.
func (r *Room) AddOpening(o Opening) error {
	if o.Area() <= 0 {
		return newValidationError("opening area", o.Area(), "opening must have positive area, got %.2f m2", o.Area())
	}
	if o.Height > r.height {
		return newValidationError("opening height", o.Height,
			"opening height (%.2f m) cannot exceed room height (%.2f m)", o.Height, r.height)
	}
	maxWall := max(r.width, r.length)
	if o.Width > maxWall {
		return newValidationError("opening width", o.Width,
			"opening width (%.2f m) exceeds maximum wall dimension (%.2f m)", o.Width, maxWall)
	}
	r.openings = append(r.openings, o)
	return nil
}

// RemoveOpening removes the first opening equal to o.
func (r *Room) RemoveOpening(o Opening) error {
	for i, existing := range r.openings {
		if existing == o {
			r.openings = append(r.openings[:i], r.openings[i+1:]...)
			return nil
		}
	}
	return ErrOpeningNotFound
}

// ClearOpenings removes all openings from the room.
func (r *Room) ClearOpenings() {
	r.openings = r.openings[:0]
}

// WallArea returns the total area of all four walls in square meters.
func (r *Room) WallArea() float64 {
	return 2 * r.height * (r.width + r.length)
}

// Perimeter returns the room perimeter in meters.
func (r *Room) Perimeter() float64 {
	return 2 * (r.width + r.length)
}

// NetWallArea returns the wall area minus all opening areas. It fails when
// the openings collectively reach or exceed the wall area; equality fails
// too, since a fully consumed wall leaves nothing to paper.
func (r *Room) NetWallArea() (float64, error) {
	wall := r.WallArea()
	var openings float64
	for _, o := range r.openings {
		openings += o.Area()
	}
	if openings >= wall {
		return 0, newValidationError("opening area", openings,
			"total opening area (%.2f m2) must be less than wall area (%.2f m2)", openings, wall)
	}
	return wall - openings, nil
}
