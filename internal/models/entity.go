package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity carries the identity and creation timestamp shared by Book and User.
// It is embedded, not inherited; both fields are set once at construction and
// never reassigned afterwards (pagination sorts on CreatedAt and relies on it
// staying fixed).
type Entity struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// newEntity assigns a fresh ID. A zero createdAt means "now".
func newEntity(createdAt time.Time) Entity {
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return Entity{
		ID:        uuid.New(),
		CreatedAt: createdAt,
	}
}
