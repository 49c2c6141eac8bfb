package engine

import (
	"fmt"
	"log/slog"
	"time"

	"wardrobe/errors"
	"wardrobe/logger"
	"wardrobe/models"
)

// DefaultLayers is used when the temperature cannot be looked up.
const DefaultLayers = 0

// LayerCount maps a Fahrenheit temperature to the number of extra layers.
// Exactly 30°F falls through to 0 layers.
func LayerCount(tempF float64) int {
	if tempF < 30 {
		return 2
	}
	if tempF > 30 && tempF < 55 {
		return 1
	}
	return 0
}

// layerCategory returns the category worn over the shirt for a layer count
func layerCategory(layers int) (models.Category, bool) {
	switch layers {
	case 1:
		return models.Sweaters, true
	case 2:
		return models.Outerwear, true
	default:
		return "", false
	}
}

// Choice is the user's pick between the two suggestions
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceMonochrome
	ChoiceComplementary
)

// ParseChoice maps "1" and "2" to a suggestion; anything else means none
func ParseChoice(key string) Choice {
	switch key {
	case "1":
		return ChoiceMonochrome
	case "2":
		return ChoiceComplementary
	default:
		return ChoiceNone
	}
}

// Suggestions holds one generation cycle
type Suggestions struct {
	Layers        int
	Monochrome    models.Outfit
	Complementary models.Outfit
}

// Composer builds outfit suggestions from a wardrobe snapshot
type Composer struct {
	wardrobe *Wardrobe
	wheel    *ColorWheel
	logger   *slog.Logger
}

// NewComposer creates a composer. A nil logger discards output.
func NewComposer(w *Wardrobe, wheel *ColorWheel, log *slog.Logger) *Composer {
	if log == nil {
		log = logger.Discard()
	}
	return &Composer{wardrobe: w, wheel: wheel, logger: log}
}

// BuildMonochrome picks a random shirt and matches bottom and layer to its color
func (c *Composer) BuildMonochrome(tempF float64) (models.Outfit, error) {
	return c.compose(models.Monochrome, LayerCount(tempF))
}

// BuildComplementary picks a random shirt, a bottom in a complementary color,
// and a layer in the shirt's color
func (c *Composer) BuildComplementary(tempF float64) (models.Outfit, error) {
	return c.compose(models.Complementary, LayerCount(tempF))
}

// Generate builds both suggestions for the given temperature
func (c *Composer) Generate(tempF float64) (Suggestions, error) {
	return c.GenerateForLayers(LayerCount(tempF))
}

// GenerateForLayers builds both suggestions for an explicit layer count
func (c *Composer) GenerateForLayers(layers int) (Suggestions, error) {
	mono, err := c.compose(models.Monochrome, layers)
	if err != nil {
		return Suggestions{}, err
	}
	comp, err := c.compose(models.Complementary, layers)
	if err != nil {
		return Suggestions{}, err
	}
	c.logger.Debug("outfits generated",
		"layers", layers,
		"monochrome_single_color", mono.SingleColor(),
		"complementary_notes", len(comp.Notes),
	)
	return Suggestions{Layers: layers, Monochrome: mono, Complementary: comp}, nil
}

// Select marks every garment of the chosen outfit as worn on now.
// ChoiceNone changes nothing and returns ok=false.
func (c *Composer) Select(s Suggestions, choice Choice, now time.Time) (models.Outfit, bool, error) {
	var chosen models.Outfit
	switch choice {
	case ChoiceMonochrome:
		chosen = s.Monochrome
	case ChoiceComplementary:
		chosen = s.Complementary
	default:
		return models.Outfit{}, false, nil
	}

	for _, g := range chosen.Garments {
		if err := c.wardrobe.UpdateLastWorn(g.Name, g.Category, g.Color, now); err != nil {
			return chosen, false, fmt.Errorf("mark %s worn: %w", g.Name, err)
		}
	}
	c.logger.Info("outfit worn", "kind", chosen.Kind, "garments", len(chosen.Garments), "date", models.Day(now).Format(time.DateOnly))
	return chosen, true, nil
}

func (c *Composer) compose(kind models.OutfitKind, layers int) (models.Outfit, error) {
	outfit := models.Outfit{Kind: kind}

	top, err := c.wardrobe.RandomItem(models.Shirts)
	if err != nil {
		return models.Outfit{}, cannotCompose(kind, err)
	}
	outfit.Garments = append(outfit.Garments, top)
	mainColor := top.Color

	var bottom models.Garment
	if kind == models.Complementary {
		complement, cerr := c.wheel.RandomComplement(mainColor)
		if cerr != nil {
			c.logger.Warn("complement lookup failed", "color", mainColor, "error", cerr)
			outfit.Notes = append(outfit.Notes, fmt.Sprintf("No complements known for %s, picked Bottoms at random.", mainColor))
			bottom, err = c.random(models.Bottoms)
		} else {
			bottom, err = c.pick(&outfit, models.Bottoms, complement)
		}
	} else {
		bottom, err = c.pick(&outfit, models.Bottoms, mainColor)
	}
	if err != nil {
		return models.Outfit{}, cannotCompose(kind, err)
	}
	outfit.Garments = append(outfit.Garments, bottom)

	// The layer always follows the shirt, even when the bottom contrasts.
	if category, ok := layerCategory(layers); ok {
		layer, err := c.pick(&outfit, category, mainColor)
		if err != nil {
			return models.Outfit{}, cannotCompose(kind, err)
		}
		outfit.Garments = append(outfit.Garments, layer)
	}

	return outfit, nil
}

// pick returns the oldest garment of color, or a random one when none match
func (c *Composer) pick(outfit *models.Outfit, category models.Category, color string) (models.Garment, error) {
	g, err := c.wardrobe.OldestOfColor(category, color)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, errors.ErrNoMatch) {
		return models.Garment{}, err
	}
	outfit.Notes = append(outfit.Notes, fmt.Sprintf("No %s %s found, picked one at random.", color, category))
	return c.random(category)
}

func (c *Composer) random(category models.Category) (models.Garment, error) {
	return c.wardrobe.RandomItem(category)
}

func cannotCompose(kind models.OutfitKind, cause error) error {
	return errors.CannotComposeOutfit(fmt.Sprintf("cannot compose %s outfit", kind)).WithCause(cause)
}
