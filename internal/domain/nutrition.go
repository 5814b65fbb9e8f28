package domain

import (
	"time"

	"github.com/google/uuid"
)

// NutritionType is a seeded taxonomy row: SUPPLEMENT or RECIPE.
type NutritionType struct {
	ID   uuid.UUID
	Name string
}

// Nutrition is a nutrition item (a supplement, a recipe) with optional
// supporting http refs.
type Nutrition struct {
	ID uuid.UUID
	Ownership
	Title           string
	Description     *string
	NutritionTypeID uuid.UUID
	HttpRefs        []HttpRef
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HttpRefWithNutritionID is a batch relation-loading row: one linked http
// ref tagged with the nutrition item it belongs to, for grouping by the
// caller.
type HttpRefWithNutritionID struct {
	NutritionID uuid.UUID
	HttpRef
}

// SortRelations orders the http ref list ascending by id.
func (n *Nutrition) SortRelations() {
	SortHttpRefsByID(n.HttpRefs)
}
