package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Exercise is a physical activity. It references at least one body part and
// any number of http refs. A custom exercise may reference default http refs
// and the owner's own custom http refs, never another user's.
type Exercise struct {
	ID uuid.UUID
	Ownership
	Title          string
	Description    *string
	NeedsEquipment bool
	BodyParts      []BodyPart
	HttpRefs       []HttpRef
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SortRelations orders both relation lists ascending by id.
func (e *Exercise) SortRelations() {
	sort.Slice(e.BodyParts, func(i, j int) bool { return LessID(e.BodyParts[i].ID, e.BodyParts[j].ID) })
	SortHttpRefsByID(e.HttpRefs)
}

// BodyPartWithExerciseID is a batch relation-loading row: one linked body
// part tagged with the exercise it belongs to, for grouping by the caller.
type BodyPartWithExerciseID struct {
	ExerciseID uuid.UUID
	BodyPart
}

// HttpRefWithExerciseID is a batch relation-loading row.
type HttpRefWithExerciseID struct {
	ExerciseID uuid.UUID
	HttpRef
}

// SortExercisesByID sorts exercises ascending by id in place.
func SortExercisesByID(list []Exercise) {
	sort.Slice(list, func(i, j int) bool { return LessID(list[i].ID, list[j].ID) })
}
