package engine

import (
	"fmt"
	"math/rand/v2"

	"wardrobe/errors"
	"wardrobe/models"
)

// ColorWheel maps a color to the colors that pair well with it.
// It is read-only after construction.
type ColorWheel struct {
	complements map[string][]string
	rng         *rand.Rand
}

// NewColorWheel builds the standard table. A nil rng uses a randomly seeded source.
func NewColorWheel(rng *rand.Rand) *ColorWheel {
	if rng == nil {
		rng = newRand()
	}
	return &ColorWheel{
		complements: map[string][]string{
			"orange": {"green", "blue", "navy", "white", "black"},
			"red":    {"blue", "navy", "gray", "white", "black"},
			"beige":  {"navy", "brown", "white", "black"},
			"green":  {"orange", "brown", "white", "black"},
			"blue":   {"red", "orange", "white", "black"},
			"navy":   {"red", "gray", "white", "black"},
			"brown":  {"green", "white", "beige", "black"},
			"gray":   {"red", "navy", "black", "white"},
			"black":  {"red", "orange", "beige", "green", "blue", "navy", "brown", "gray", "white"},
			"white":  {"red", "orange", "beige", "green", "blue", "navy", "brown", "gray", "black"},
		},
		rng: rng,
	}
}

// ComplementsOf returns the ordered complements of color
func (cw *ColorWheel) ComplementsOf(color string) ([]string, error) {
	list, ok := cw.complements[models.NormalizeColor(color)]
	if !ok {
		return nil, errors.UnknownColor(fmt.Sprintf("no complements known for %q", color))
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// RandomComplement picks one complement of color uniformly at random
func (cw *ColorWheel) RandomComplement(color string) (string, error) {
	list, ok := cw.complements[models.NormalizeColor(color)]
	if !ok {
		return "", errors.UnknownColor(fmt.Sprintf("no complements known for %q", color))
	}
	return list[cw.rng.IntN(len(list))], nil
}
