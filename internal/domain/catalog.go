package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelInterest is an admin-curated activity category ("Hiking", "Scuba").
// Identity is determined by Slug, which is always lowercase and hyphenated.
// Name preserves the casing supplied when the interest was first created.
type TravelInterest struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Destination is a place trips can be planned to.
type Destination struct {
	ID          uuid.UUID
	Name        string
	Location    string
	Description string
	CreatedAt   time.Time
}
