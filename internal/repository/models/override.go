package models

import "time"

// OverrideRecord is one row of the override_store table.
type OverrideRecord struct {
	Key       string    `db:"store_key"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
