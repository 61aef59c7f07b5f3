package datasets

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is one uploaded season schedule. A re-upload targets the same
// dataset and merges row by row rather than creating a new one.
type Dataset struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Season    string    `json:"season,omitempty"`
	RowCount  int       `json:"rowCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
