package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe/errors"
	"wardrobe/models"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWardrobeHasEveryCategory(t *testing.T) {
	w := NewWardrobe(seeded())

	for _, c := range models.Categories {
		items := w.Items(c)
		assert.NotNil(t, items, c)
		assert.Empty(t, items, c)
	}
	assert.Zero(t, w.Len())
}

func TestAddUsesDefaultLastWornAndNormalizesColor(t *testing.T) {
	w := NewWardrobe(seeded())

	require.NoError(t, w.Add("Oxford", models.Shirts, "Red"))

	items := w.Items(models.Shirts)
	require.Len(t, items, 1)
	assert.Equal(t, "Oxford", items[0].Name)
	assert.Equal(t, "red", items[0].Color)
	assert.Equal(t, models.Shirts, items[0].Category)
	assert.True(t, items[0].LastWorn.Equal(models.DefaultLastWorn))
}

func TestAddRejectsInvalidInput(t *testing.T) {
	w := NewWardrobe(seeded())

	err := w.Add("Cape", models.Category("Capes"), "red")
	assert.True(t, errors.Is(err, errors.ErrInvalidCategory))

	err = w.Add("", models.Shirts, "red")
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "name is required")

	err = w.Add("Tee, white", models.Shirts, "white")
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "commas")

	err = w.Add("Tee", models.Shirts, "")
	assert.True(t, errors.Is(err, errors.ErrValidation))

	assert.Zero(t, w.Len())
}

func TestAddRejectsLineBreaks(t *testing.T) {
	w := NewWardrobe(seeded())

	tests := []struct {
		name, item, color string
	}{
		{"newline in name", "Tee\nshirt", "white"},
		{"carriage return in name", "Tee\rshirt", "white"},
		{"newline in color", "Tee", "navy\nblue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.Add(tt.item, models.Shirts, tt.color)
			assert.True(t, errors.Is(err, errors.ErrValidation))
			assert.Contains(t, err.Error(), "line breaks")
		})
	}

	assert.Zero(t, w.Len())
}

func TestAddAllowsDuplicates(t *testing.T) {
	w := NewWardrobe(seeded())

	require.NoError(t, w.Add("Tee", models.Shirts, "white"))
	require.NoError(t, w.Add("Tee", models.Shirts, "white"))

	assert.Len(t, w.Items(models.Shirts), 2)
}

func TestRemoveFirstMatch(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Replace([]models.Garment{
		{Name: "Tee", Category: models.Shirts, Color: "white", LastWorn: date(2023, 5, 1)},
		{Name: "Tee", Category: models.Shirts, Color: "white", LastWorn: date(2023, 6, 1)},
		{Name: "Polo", Category: models.Shirts, Color: "navy"},
	}))

	require.NoError(t, w.Remove("Tee", models.Shirts, "WHITE"))

	items := w.Items(models.Shirts)
	require.Len(t, items, 2)
	assert.True(t, items[0].LastWorn.Equal(date(2023, 6, 1)))
	assert.Equal(t, "Polo", items[1].Name)
}

func TestRemoveMissingReportsNotFoundAndLeavesStoreUnchanged(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Add("Beanie", models.Hat, "gray"))
	before := w.All()

	err := w.Remove("Zebra-print", models.Hat, "black")

	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "Zebra-print")
	assert.Equal(t, before, w.All())
}

func TestUpdateLastWorn(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Add("Chinos", models.Bottoms, "beige"))

	require.NoError(t, w.UpdateLastWorn("Chinos", models.Bottoms, "beige", time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)))

	items := w.Items(models.Bottoms)
	assert.True(t, items[0].LastWorn.Equal(date(2024, 3, 5)))

	err := w.UpdateLastWorn("Chinos", models.Bottoms, "navy", time.Now())
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestItemsOfColorIsRestartable(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Add("Jeans", models.Bottoms, "blue"))
	require.NoError(t, w.Add("Chinos", models.Bottoms, "beige"))
	require.NoError(t, w.Add("Cords", models.Bottoms, "blue"))

	seq := w.ItemsOfColor(models.Bottoms, "Blue")
	for range 2 {
		var names []string
		for g := range seq {
			names = append(names, g.Name)
		}
		assert.Equal(t, []string{"Jeans", "Cords"}, names)
	}
}

func TestOldestOfColor(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Replace([]models.Garment{
		{Name: "A", Category: models.Bottoms, Color: "blue", LastWorn: date(2023, 3, 1)},
		{Name: "B", Category: models.Bottoms, Color: "blue", LastWorn: date(2022, 6, 1)},
		{Name: "C", Category: models.Bottoms, Color: "red", LastWorn: date(2020, 1, 1)},
		{Name: "D", Category: models.Bottoms, Color: "blue", LastWorn: date(2022, 6, 1)},
	}))

	got, err := w.OldestOfColor(models.Bottoms, "blue")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name, "ties go to the first in sequence")

	for g := range w.ItemsOfColor(models.Bottoms, "blue") {
		assert.False(t, g.LastWorn.Before(got.LastWorn), g.Name)
	}
}

func TestOldestOfColorNoMatch(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Add("Jeans", models.Bottoms, "blue"))

	_, err := w.OldestOfColor(models.Bottoms, "red")
	assert.True(t, errors.Is(err, errors.ErrNoMatch))
}

func TestRandomItemEmptyCategory(t *testing.T) {
	w := NewWardrobe(seeded())

	_, err := w.RandomItem(models.Shirts)
	assert.True(t, errors.Is(err, errors.ErrEmptyCategory))
}

func TestRandomItemReachesEveryGarment(t *testing.T) {
	w := NewWardrobe(seeded())
	names := []string{"A", "B", "C", "D"}
	for _, n := range names {
		require.NoError(t, w.Add(n, models.Shoes, "black"))
	}

	seen := map[string]int{}
	for range 1000 {
		g, err := w.RandomItem(models.Shoes)
		require.NoError(t, err)
		seen[g.Name]++
	}
	for _, n := range names {
		assert.Positive(t, seen[n], n)
	}
}

func TestReplaceRejectsUnknownCategory(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Add("Tee", models.Shirts, "white"))

	err := w.Replace([]models.Garment{{Name: "Cape", Category: "Capes", Color: "red"}})

	assert.True(t, errors.Is(err, errors.ErrInvalidCategory))
	assert.Equal(t, 1, w.Len(), "contents kept on failure")
}

func TestAllUsesCategoryOrder(t *testing.T) {
	w := NewWardrobe(seeded())
	require.NoError(t, w.Add("Cap", models.Hat, "red"))
	require.NoError(t, w.Add("Boots", models.Shoes, "brown"))
	require.NoError(t, w.Add("Tee", models.Shirts, "white"))

	var got []models.Category
	for _, g := range w.All() {
		got = append(got, g.Category)
	}
	assert.Equal(t, []models.Category{models.Shoes, models.Shirts, models.Hat}, got)
}
