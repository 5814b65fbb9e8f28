package domain

import (
	"time"

	"github.com/google/uuid"
)

// MentalType is a seeded taxonomy row: MEDITATION or AFFIRMATION.
type MentalType struct {
	ID   uuid.UUID
	Name string
}

// MentalActivity is a mental practice (a meditation, an affirmation) with
// optional supporting http refs.
type MentalActivity struct {
	ID uuid.UUID
	Ownership
	Title        string
	Description  *string
	MentalTypeID uuid.UUID
	HttpRefs     []HttpRef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HttpRefWithActivityID is a batch relation-loading row: one linked http
// ref tagged with the activity it belongs to, for grouping by the caller.
type HttpRefWithActivityID struct {
	ActivityID uuid.UUID
	HttpRef
}

// SortRelations orders the http ref list ascending by id.
func (m *MentalActivity) SortRelations() {
	SortHttpRefsByID(m.HttpRefs)
}
