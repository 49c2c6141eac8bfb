package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wardrobe/errors"
)

// Category is one of the fixed garment categories
type Category string

const (
	Shoes     Category = "Shoes"
	Bottoms   Category = "Bottoms"
	Shirts    Category = "Shirts"
	Sweaters  Category = "Sweaters"
	Outerwear Category = "Outerwear"
	Hat       Category = "Hat"
)

// Categories lists every category in display and save order
var Categories = []Category{Shoes, Bottoms, Shirts, Sweaters, Outerwear, Hat}

var (
	titleCaser = cases.Title(language.English)
	lowerCaser = cases.Lower(language.English)
)

// ParseCategory canonicalizes user input ("shirts", "SHIRTS") to a Category
func ParseCategory(s string) (Category, error) {
	c := Category(titleCaser.String(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", errors.InvalidCategory("invalid category: " + s)
	}
	return c, nil
}

// Valid reports whether c is in the fixed set
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeColor lower-cases a color name so "Red" and "red" match
func NormalizeColor(color string) string {
	return lowerCaser.String(strings.TrimSpace(color))
}

// DefaultLastWorn is the sentinel date for garments that were never worn
var DefaultLastWorn = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// Day truncates t to its calendar day in UTC
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Garment represents a single clothing item.
// ID is only assigned by the SQLite store.
type Garment struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	Name     string    `gorm:"not null" json:"name" validate:"required,excludesall=0x2C\n\r"`
	Category Category  `gorm:"not null;index" json:"category" validate:"category"`
	Color    string    `gorm:"not null" json:"color" validate:"required,excludesall=0x2C\n\r"`
	LastWorn time.Time `gorm:"not null;type:datetime" json:"last_worn"`
}

// Matches reports whether g is identified by name and color
func (g Garment) Matches(name, color string) bool {
	return g.Name == name && g.Color == NormalizeColor(color)
}

// OutfitKind distinguishes the two generated suggestions
type OutfitKind string

const (
	Monochrome    OutfitKind = "monochrome"
	Complementary OutfitKind = "complementary"
)

// Outfit is an ordered set of garments: top, bottom and an optional layer
type Outfit struct {
	Kind     OutfitKind
	Garments []Garment
	Notes    []string // fallbacks taken while composing
}

// SingleColor reports whether every garment shares one color
func (o Outfit) SingleColor() bool {
	for _, g := range o.Garments {
		if g.Color != o.Garments[0].Color {
			return false
		}
	}
	return true
}
