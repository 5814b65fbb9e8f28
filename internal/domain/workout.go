package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a named set of exercises. The relation is mandatory: a workout
// references at least one exercise. A custom workout may combine default
// exercises with the owner's own custom ones.
type Workout struct {
	ID uuid.UUID
	Ownership
	Title       string
	Description *string
	Exercises   []Exercise
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NeedsEquipment reports whether any referenced exercise needs equipment.
func (w *Workout) NeedsEquipment() bool {
	for _, e := range w.Exercises {
		if e.NeedsEquipment {
			return true
		}
	}
	return false
}

// SortRelations orders the exercise list, and each exercise's own
// relations, ascending by id.
func (w *Workout) SortRelations() {
	SortExercisesByID(w.Exercises)
	for i := range w.Exercises {
		w.Exercises[i].SortRelations()
	}
}
