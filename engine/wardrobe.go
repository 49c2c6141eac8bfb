package engine

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"time"

	"wardrobe/errors"
	"wardrobe/models"
)

// Wardrobe is the in-memory garment store, keyed by category.
// Every category has an entry, possibly empty.
type Wardrobe struct {
	items     map[models.Category][]models.Garment
	rng       *rand.Rand
	validator *Validator
}

// NewWardrobe creates an empty wardrobe. A nil rng uses a randomly seeded source.
func NewWardrobe(rng *rand.Rand) *Wardrobe {
	if rng == nil {
		rng = newRand()
	}
	w := &Wardrobe{
		items:     make(map[models.Category][]models.Garment, len(models.Categories)),
		rng:       rng,
		validator: NewValidator(),
	}
	for _, c := range models.Categories {
		w.items[c] = []models.Garment{}
	}
	return w
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Add appends a new garment with the default last-worn date
func (w *Wardrobe) Add(name string, category models.Category, color string) error {
	g := models.Garment{
		Name:     name,
		Category: category,
		Color:    models.NormalizeColor(color),
		LastWorn: models.DefaultLastWorn,
	}
	if err := w.validator.Garment(g); err != nil {
		return err
	}
	w.items[category] = append(w.items[category], g)
	return nil
}

// Remove deletes the first garment matching name and color
func (w *Wardrobe) Remove(name string, category models.Category, color string) error {
	idx, err := w.find(name, category, color)
	if err != nil {
		return err
	}
	items := w.items[category]
	w.items[category] = append(items[:idx:idx], items[idx+1:]...)
	return nil
}

// UpdateLastWorn sets the last-worn date of the first match
func (w *Wardrobe) UpdateLastWorn(name string, category models.Category, color string, date time.Time) error {
	idx, err := w.find(name, category, color)
	if err != nil {
		return err
	}
	w.items[category][idx].LastWorn = models.Day(date)
	return nil
}

func (w *Wardrobe) find(name string, category models.Category, color string) (int, error) {
	if !category.Valid() {
		return -1, errors.InvalidCategory(fmt.Sprintf("invalid category: %q", category))
	}
	for i, g := range w.items[category] {
		if g.Matches(name, color) {
			return i, nil
		}
	}
	return -1, errors.NotFound(fmt.Sprintf("item not found: %s (%s) in type: %s", name, models.NormalizeColor(color), category))
}

// ItemsOfColor yields the garments of category with the given color, in order
func (w *Wardrobe) ItemsOfColor(category models.Category, color string) iter.Seq[models.Garment] {
	color = models.NormalizeColor(color)
	return func(yield func(models.Garment) bool) {
		for _, g := range w.items[category] {
			if g.Color != color {
				continue
			}
			if !yield(g) {
				return
			}
		}
	}
}

// OldestOfColor returns the least recently worn garment of that color.
// Ties go to the first one in sequence order.
func (w *Wardrobe) OldestOfColor(category models.Category, color string) (models.Garment, error) {
	var oldest models.Garment
	found := false
	for g := range w.ItemsOfColor(category, color) {
		if !found || g.LastWorn.Before(oldest.LastWorn) {
			oldest = g
			found = true
		}
	}
	if !found {
		return models.Garment{}, errors.NoMatch(fmt.Sprintf("no %s %s found", models.NormalizeColor(color), category))
	}
	return oldest, nil
}

// RandomItem picks one garment of category uniformly at random
func (w *Wardrobe) RandomItem(category models.Category) (models.Garment, error) {
	items := w.items[category]
	if len(items) == 0 {
		return models.Garment{}, errors.EmptyCategory(fmt.Sprintf("no %s in the wardrobe", category))
	}
	return items[w.rng.IntN(len(items))], nil
}

// Items returns a copy of the garments in category
func (w *Wardrobe) Items(category models.Category) []models.Garment {
	items := w.items[category]
	out := make([]models.Garment, len(items))
	copy(out, items)
	return out
}

// All returns every garment in canonical category order
func (w *Wardrobe) All() []models.Garment {
	var out []models.Garment
	for _, c := range models.Categories {
		out = append(out, w.items[c]...)
	}
	return out
}

// Len returns the total number of garments
func (w *Wardrobe) Len() int {
	n := 0
	for _, items := range w.items {
		n += len(items)
	}
	return n
}

// Replace swaps the contents for garments loaded from storage.
// Garments keep their stored last-worn dates.
func (w *Wardrobe) Replace(garments []models.Garment) error {
	next := make(map[models.Category][]models.Garment, len(models.Categories))
	for _, c := range models.Categories {
		next[c] = []models.Garment{}
	}
	for _, g := range garments {
		if !g.Category.Valid() {
			return errors.InvalidCategory(fmt.Sprintf("invalid category: %q", g.Category))
		}
		g.Color = models.NormalizeColor(g.Color)
		if g.LastWorn.IsZero() {
			g.LastWorn = models.DefaultLastWorn
		}
		next[g.Category] = append(next[g.Category], g)
	}
	w.items = next
	return nil
}
