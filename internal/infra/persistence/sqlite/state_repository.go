package sqlite

import (
	"context"
	"time"

	"ogsnotify/internal/domain/repository"
	"ogsnotify/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stateRepository implements the repository.StateRepository interface.
type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository is the constructor for stateRepository.
func NewStateRepository(db *gorm.DB) repository.StateRepository {
	return &stateRepository{
		db: db,
	}
}

// Get returns the persisted value for key.
func (repo *stateRepository) Get(ctx context.Context, key string) (string, error) {
	var entry model.StateEntryModel

	if err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrStateNotFound
		}

		return "", errors.Wrapf(err, "failed to read state key %q", key)
	}

	return entry.Value, nil
}

// Set persists value under key, replacing any previous value.
func (repo *stateRepository) Set(ctx context.Context, key, value string) error {
	entry := model.StateEntryModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error; err != nil {
		return errors.Wrapf(err, "failed to write state key %q", key)
	}

	return nil
}
