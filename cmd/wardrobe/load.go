package main

import (
	"fmt"
	"log/slog"

	"wardrobe/db"
	"wardrobe/engine"
)

// startup is the outcome of loading the wardrobe at launch
type startup struct {
	warning string // shown on the menu when the load failed
	save    bool   // false when the data on disk must not be overwritten
}

// backuper is implemented by stores whose data file can be moved aside
type backuper interface {
	Backup() (string, error)
}

// loadWardrobe fills w from store. On failure w stays empty and the unread
// data is either moved to a backup or protected by disabling the exit save.
func loadWardrobe(store db.Store, w *engine.Wardrobe, path string, log *slog.Logger) startup {
	garments, err := store.Load()
	if err == nil {
		err = w.Replace(garments)
	}
	if err == nil {
		log.Info("wardrobe loaded", "path", path, "items", w.Len())
		return startup{save: true}
	}
	log.Warn("starting with an empty wardrobe", "path", path, "error", err)

	if b, ok := store.(backuper); ok {
		backup, berr := b.Backup()
		if berr == nil {
			log.Warn("unreadable data file moved aside", "path", path, "backup", backup)
			return startup{
				save:    true,
				warning: fmt.Sprintf("Could not load %s: %v. It was moved to %s and the wardrobe starts empty.", path, err, backup),
			}
		}
		log.Error("failed to back up data file", "path", path, "error", berr)
	}

	return startup{
		warning: fmt.Sprintf("Could not load %s: %v. The wardrobe starts empty and changes will not be saved.", path, err),
	}
}

// saveOnExit writes the wardrobe back unless the startup load forbade it.
// It reports whether anything was written.
func saveOnExit(store db.Store, w *engine.Wardrobe, st startup, path string, log *slog.Logger) (bool, error) {
	if !st.save {
		log.Warn("skipping save to protect unread data", "path", path)
		return false, nil
	}
	if err := store.Save(w.All()); err != nil {
		log.Error("failed to save wardrobe", "path", path, "error", err)
		return false, err
	}
	log.Info("wardrobe saved", "path", path, "items", w.Len())
	return true, nil
}
