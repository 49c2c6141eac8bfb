package db

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe/errors"
	"wardrobe/models"
)

func TestTextRoundTrip(t *testing.T) {
	store := NewTextStore(filepath.Join(t.TempDir(), "wardrobedata.txt"))

	require.NoError(t, store.Save(sampleGarments()))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, multiset(sampleGarments()), multiset(got))
}

func TestEncodeWritesEveryCategory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []models.Garment{
		{Name: "Oxford", Category: models.Shirts, Color: "white", LastWorn: day(2024, 3, 5)},
	}))

	want := strings.Join([]string{
		"===", "Shoes",
		"===", "Bottoms",
		"===", "Shirts",
		"Oxford,white,2024-03-05",
		"===", "Sweaters",
		"===", "Outerwear",
		"===", "Hat",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestDecodeLegacyFile(t *testing.T) {
	legacy := "===\nHat\n===\nShirts\nTee,Red,01/01/2023\nPolo,navy,12/21/23\nnot a garment line\n===\nBottoms\nJeans,blue,06/01/2022\n"

	got, err := Decode(strings.NewReader(legacy))
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, models.Garment{Name: "Tee", Category: models.Shirts, Color: "red", LastWorn: day(2023, 1, 1)}, got[0])
	assert.Equal(t, models.Garment{Name: "Polo", Category: models.Shirts, Color: "navy", LastWorn: day(2023, 12, 21)}, got[1])
	assert.Equal(t, models.Garment{Name: "Jeans", Category: models.Bottoms, Color: "blue", LastWorn: day(2022, 6, 1)}, got[2])
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"unknown category":  "===\nCapes\nCape,red,2024-01-01\n",
		"bad date":          "===\nShirts\nTee,red,yesterday\n",
		"garment no header": "Tee,red,2024-01-01\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestTextLoadMissingFileIsEmpty(t *testing.T) {
	store := NewTextStore(filepath.Join(t.TempDir(), "absent.txt"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTextLoadCorruptFileIsPersistenceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardrobedata.txt")
	require.NoError(t, os.WriteFile(path, []byte("===\nCapes\n"), 0644))

	_, err := NewTextStore(path).Load()
	assert.True(t, errors.Is(err, errors.ErrPersistence))
}

func TestTextSaveUnwritableIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewTextStore(filepath.Join(blocker, "wardrobedata.txt")).Save(sampleGarments())
	assert.True(t, errors.Is(err, errors.ErrPersistence))
}

func TestNewByEngine(t *testing.T) {
	dir := t.TempDir()

	text, err := NewByEngine("", filepath.Join(dir, "w.txt"))
	require.NoError(t, err)
	assert.IsType(t, &TextStore{}, text)

	sqlStore, err := NewByEngine("SQLite", filepath.Join(dir, "w.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sqlStore)
	require.NoError(t, sqlStore.Close())

	_, err = NewByEngine("mongo", "x")
	assert.True(t, errors.Is(err, errors.ErrPersistence))

	assert.Equal(t, "wardrobedata.txt", DefaultPath(EngineText))
	assert.Equal(t, "wardrobe.db", DefaultPath(EngineSQLite))
}

func TestTextSaveKeepsFileMode(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.txt")
	require.NoError(t, NewTextStore(fresh).Save(sampleGarments()))
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	existing := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(existing, nil, 0644))
	require.NoError(t, os.Chmod(existing, 0640))
	require.NoError(t, NewTextStore(existing).Save(sampleGarments()))
	info, err = os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestTextBackupPreservesUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardrobedata.txt")
	corrupt := "===\nShirts\nTee,red,2024-01-01\nPolo,navy,2024-01-02\nOxford,white,13/45/2024\n===\nBottoms\nJeans,blue,2024-01-01\n"
	require.NoError(t, os.WriteFile(path, []byte(corrupt), 0644))

	store := NewTextStore(path)
	_, err := store.Load()
	require.Error(t, err)

	backup, err := store.Backup()
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)
	assert.NoFileExists(t, path)

	require.NoError(t, store.Save(nil))

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, corrupt, string(data))
}

func TestTextBackupMissingFileFails(t *testing.T) {
	_, err := NewTextStore(filepath.Join(t.TempDir(), "absent.txt")).Backup()
	assert.True(t, errors.Is(err, errors.ErrPersistence))
}
