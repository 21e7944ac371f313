// Package sqlite contains the concrete implementation of the persistence
// layer using GORM over a local SQLite file. The client's durable state is
// tiny (a handful of keys), so a single-file database that survives process
// restarts is the whole requirement.
package sqlite

import (
	"os"
	"path/filepath"

	"ogsnotify/config"
	"ogsnotify/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens (creating if needed) the state database at the configured path
// and migrates the schema.
func New(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.Storage.Path)
}

// Open opens the state database at path.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "create storage directory")
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open state database")
	}

	if err := db.AutoMigrate(&model.StateEntryModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate state schema")
	}

	return db, nil
}
