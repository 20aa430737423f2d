package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a tracked player entity. Players are created on first
// sighting and never deleted; injuries and season memberships reference them.
type Player struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Name      string    `db:"name" json:"name" validate:"required"`
	NameKey   string    `db:"name_key" json:"name_key" validate:"required"`
	Position  string    `db:"position" json:"position"`
	College   *string   `db:"college" json:"college"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
