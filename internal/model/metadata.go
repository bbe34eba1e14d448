package model

import "time"

// CreationMetadata carries the server-managed timestamp pair shared by all
// persisted entities. Stamping is done explicitly by the service layer, not
// by ORM hooks, so the flow stays visible in tests.
type CreationMetadata struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StampCreate sets both timestamps to now. On a fresh record
// UpdatedAt always equals CreatedAt.
func (m *CreationMetadata) StampCreate(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// StampUpdate bumps UpdatedAt only.
func (m *CreationMetadata) StampUpdate(now time.Time) {
	m.UpdatedAt = now
}
