package calculator

import (
	"fmt"
	"math"

	"github.com/Vilis322/roomsizer/internal/domain"
)

// StripCalculator models wallpaper application as vertical strips cut from
// rolls and placed side by side around the room's perimeter. It is stateless
// beyond its bound configuration; RollsNeeded can be called repeatedly and
// always returns the same answer.
type StripCalculator struct {
	rollWidth  float64
	rollLength float64
	room       *domain.Room
	policy     domain.WastePolicy
}

// New constructs a strip-based rolls calculator bound to the given roll
// dimensions, room, and waste policy.
func New(rollWidth, rollLength float64, room *domain.Room, policy domain.WastePolicy) (*StripCalculator, error) {
	if rollWidth <= 0 {
		return nil, &domain.ValidationError{
			Field:  "roll width",
			Value:  rollWidth,
			Detail: fmt.Sprintf("roll width must be positive, got %.2f m", rollWidth),
		}
	}
	if rollLength <= 0 {
		return nil, &domain.ValidationError{
			Field:  "roll length",
			Value:  rollLength,
			Detail: fmt.Sprintf("roll length must be positive, got %.2f m", rollLength),
		}
	}
	return &StripCalculator{
		rollWidth:  rollWidth,
		rollLength: rollLength,
		room:       room,
		policy:     policy,
	}, nil
}

// RollsNeeded returns the number of whole rolls required. Steps run in a
// fixed order because later steps consume earlier derived values and the
// order decides which error fires first.
func (c *StripCalculator) RollsNeeded() (int, error) {
	stripHeight := c.stripHeight()

	stripsPerRoll := int(math.Floor(c.rollLength / stripHeight))
	if stripsPerRoll <= 0 {
		return 0, &RollTooShortError{RollLength: c.rollLength, StripHeight: stripHeight}
	}

	baseStrips := int(math.Ceil(c.room.Perimeter() / c.rollWidth))
	saved := c.stripsSavedByOpenings(stripHeight)

	netStrips := baseStrips - saved
	if netStrips < 0 {
		netStrips = 0
	}

	rolls := int(math.Ceil(float64(netStrips) * c.policy.ExtraFactor / float64(stripsPerRoll)))
	return rolls, nil
}

// stripHeight is the vertical material needed per strip: room height plus
// the policy's drop allowance for pattern matching.
func (c *StripCalculator) stripHeight() float64 {
	return c.room.Height() + c.policy.DropAllowance
}

// stripsSavedByOpenings sums, per opening, the number of whole strips the
// opening displaces: floor(width/rollWidth) full strip-widths spanned
// horizontally (a strip straddling an opening edge still needs full
// material) times ceil(height/stripHeight) strip bands interrupted
// vertically. Openings are counted independently; no overlap modelling.
func (c *StripCalculator) stripsSavedByOpenings(stripHeight float64) int {
	total := 0
	for _, o := range c.room.Openings() {
		stripsWide := int(math.Floor(o.Width / c.rollWidth))
		stripsTall := int(math.Ceil(o.Height / stripHeight))
		total += stripsWide * stripsTall
	}
	return total
}
