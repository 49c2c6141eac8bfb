package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wardrobe/errors"
	"wardrobe/models"

	_ "modernc.org/sqlite" // Use pure Go SQLite driver (no CGO required)
)

// SQLiteStore keeps the wardrobe in a SQLite database through GORM
type SQLiteStore struct {
	db *gorm.DB
}

// InitDB opens (or creates) the database at dbPath and migrates the schema
func InitDB(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Persistence("failed to create data directory").WithCause(err)
	}

	config := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true,
	}

	// _time_format=sqlite keeps datetime columns readable by the sqlite3 CLI
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Persistence("failed to open sqlite database").WithCause(err)
	}

	gdb, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, config)
	if err != nil {
		sqlDB.Close()
		return nil, errors.Persistence("failed to connect to database").WithCause(err)
	}

	if err := gdb.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		sqlDB.Close()
		return nil, errors.Persistence("failed to enable WAL mode").WithCause(err)
	}

	// NORMAL is safe in WAL mode
	if err := gdb.Exec("PRAGMA synchronous = NORMAL;").Error; err != nil {
		sqlDB.Close()
		return nil, errors.Persistence("failed to set synchronous mode").WithCause(err)
	}

	// SQLite only supports one writer at a time
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := gdb.AutoMigrate(&models.Garment{}); err != nil {
		sqlDB.Close()
		return nil, errors.Persistence("failed to migrate database").WithCause(err)
	}

	return &SQLiteStore{db: gdb}, nil
}

// Load returns every garment in insertion order
func (s *SQLiteStore) Load() ([]models.Garment, error) {
	var garments []models.Garment
	if err := s.db.Order("id ASC").Find(&garments).Error; err != nil {
		return nil, errors.Persistence("failed to retrieve garments").WithCause(err)
	}
	for i := range garments {
		garments[i].LastWorn = models.Day(garments[i].LastWorn)
	}
	return garments, nil
}

// Save replaces the table contents with garments in one transaction
func (s *SQLiteStore) Save(garments []models.Garment) error {
	rows := make([]models.Garment, len(garments))
	for i, g := range garments {
		g.ID = 0
		g.LastWorn = models.Day(g.LastWorn)
		rows[i] = g
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Garment{}).Error; err != nil {
			return fmt.Errorf("failed to clear garments: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to add garments: %w", err)
		}
		return nil
	})
	if err != nil {
		return errors.Persistence("failed to save wardrobe").WithCause(err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
