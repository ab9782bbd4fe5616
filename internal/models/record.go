package models

import (
	"time"

	"gorm.io/datatypes"
)

// Record is a persisted key-value blob backing the entitlement subsystem.
// Each entitlement, usage and security record is one JSON payload under a
// fixed key name.
type Record struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Key     string         `gorm:"type:text;not null;uniqueIndex"` // Record key.
	Content datatypes.JSON `gorm:"type:jsonb;not null"`            // Serialized record payload.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
