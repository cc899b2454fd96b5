package models

import (
	"encoding/json"
	"time"
)

// Presentation stores the live state of one presentation. The slide deck and
// vote counters arrive from clients as opaque JSON and are kept as-is.
type Presentation struct {
	ID        string          `db:"id" json:"_id"`
	Data      json.RawMessage `db:"data" json:"data"`
	History   json.RawMessage `db:"history" json:"history"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
