package model

import "time"

// StateEntryModel is the GORM-specific struct for the 'state_entries' table.
// One row per persisted key; last write wins.
type StateEntryModel struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StateEntryModel) TableName() string {
	return "state_entries"
}
