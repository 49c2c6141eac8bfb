package db

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wardrobe/errors"
	"wardrobe/models"
)

const blockSeparator = "==="

const defaultFileMode os.FileMode = 0644

// dateLayouts are accepted when reading; the first one is written
var dateLayouts = []string{time.DateOnly, "01/02/2006", "01/02/06"}

// TextStore persists the wardrobe as a line-oriented text file:
//
//	===
//	Shirts
//	Oxford,white,2024-03-05
type TextStore struct {
	path string
}

// NewTextStore creates a store backed by the file at path
func NewTextStore(path string) *TextStore {
	return &TextStore{path: path}
}

// Load reads the file. A missing file is an empty wardrobe.
func (s *TextStore) Load() ([]models.Garment, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Persistence("unable to open file for loading").WithCause(err)
	}
	defer f.Close()

	garments, err := Decode(f)
	if err != nil {
		return nil, errors.Persistence(fmt.Sprintf("unable to load %s", s.path)).WithCause(err)
	}
	return garments, nil
}

// Save writes every category block to a temp file and renames it into place
func (s *TextStore) Save(garments []models.Garment) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Persistence("unable to create data directory").WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Persistence("unable to open file for saving").WithCause(err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp uses 0600; keep the mode of the file being replaced.
	mode := defaultFileMode
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return errors.Persistence("unable to set file mode").WithCause(err)
	}

	if err := Encode(tmp, garments); err != nil {
		tmp.Close()
		return errors.Persistence("unable to write wardrobe data").WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Persistence("unable to write wardrobe data").WithCause(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Persistence("unable to replace " + s.path).WithCause(err)
	}
	return nil
}

// Backup moves the data file aside to <path>.bak so a later Save cannot
// overwrite data that failed to load. It returns the backup path.
func (s *TextStore) Backup() (string, error) {
	backup := s.path + ".bak"
	if err := os.Rename(s.path, backup); err != nil {
		return "", errors.Persistence("unable to back up " + s.path).WithCause(err)
	}
	return backup, nil
}

// Close is a no-op; the file is only open during Load and Save
func (s *TextStore) Close() error {
	return nil
}

// Encode writes one block per category, including empty ones
func Encode(w io.Writer, garments []models.Garment) error {
	bw := bufio.NewWriter(w)
	for _, c := range models.Categories {
		fmt.Fprintln(bw, blockSeparator)
		fmt.Fprintln(bw, c)
		for _, g := range garments {
			if g.Category != c {
				continue
			}
			fmt.Fprintf(bw, "%s,%s,%s\n", g.Name, g.Color, g.LastWorn.UTC().Format(dateLayouts[0]))
		}
	}
	return bw.Flush()
}

// Decode parses blocks written by Encode or by older releases using US dates.
// Lines without two commas are skipped.
func Decode(r io.Reader) ([]models.Garment, error) {
	var garments []models.Garment
	var category models.Category
	haveCategory := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == blockSeparator {
			if !scanner.Scan() {
				break
			}
			lineNo++
			header := strings.TrimSpace(scanner.Text())
			c := models.Category(header)
			if !c.Valid() {
				return nil, fmt.Errorf("line %d: unknown category %q", lineNo, header)
			}
			category = c
			haveCategory = true
			continue
		}

		name, rest, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		color, worn, ok := strings.Cut(rest, ",")
		if !ok {
			continue
		}
		if !haveCategory {
			return nil, fmt.Errorf("line %d: garment before any category header", lineNo)
		}

		lastWorn, err := parseDate(strings.TrimSpace(worn))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		garments = append(garments, models.Garment{
			Name:     name,
			Category: category,
			Color:    models.NormalizeColor(color),
			LastWorn: lastWorn,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return garments, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid last-worn date %q", s)
}
