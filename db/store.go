package db

import (
	"strings"

	"wardrobe/errors"
	"wardrobe/models"
)

const (
	EngineText   = "text"
	EngineSQLite = "sqlite"
)

// Store loads and saves the whole wardrobe at process boundaries
type Store interface {
	Load() ([]models.Garment, error)
	Save(garments []models.Garment) error
	Close() error
}

// NewByEngine opens the store for engine at path
func NewByEngine(engine string, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineText:
		return NewTextStore(path), nil
	case EngineSQLite:
		s, err := InitDB(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.Persistence("unsupported store engine: " + engine)
	}
}

// DefaultPath returns the data file used when none is configured
func DefaultPath(engine string) string {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case EngineSQLite:
		return "wardrobe.db"
	default:
		return "wardrobedata.txt"
	}
}
