// Package audit stamps updated_at on every update, mirroring the database
// trigger that refreshed user rows regardless of what the caller supplied.
// The callback is generic: any model with an UpdatedAt column gets the same
// treatment once registered on the connection.
package audit

import (
	"time"

	"gorm.io/gorm"
)

const callbackName = "audit:touch_updated_at"

// Register installs the update callback on the connection. Call once right
// after opening the database.
func Register(db *gorm.DB) error {
	return db.Callback().Update().Before("gorm:update").Register(callbackName, touchUpdatedAt)
}

// touchUpdatedAt overwrites the UpdatedAt column with the current time,
// discarding any value the caller set.
func touchUpdatedAt(tx *gorm.DB) {
	if tx.Statement.Schema == nil {
		return
	}
	field := tx.Statement.Schema.LookUpField("UpdatedAt")
	if field == nil {
		return
	}
	tx.Statement.SetColumn(field.DBName, time.Now(), true)
}
