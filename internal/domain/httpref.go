package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// HttpRef is an http reference (article, video) that exercises, mental
// activities and nutrition items may link to. Default refs are curated and
// globally visible; custom refs belong to the user who created them.
type HttpRef struct {
	ID          uuid.UUID
	Ownership
	Name        string
	Ref         string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SortHttpRefsByID sorts refs ascending by id in place.
func SortHttpRefsByID(refs []HttpRef) {
	sort.Slice(refs, func(i, j int) bool { return LessID(refs[i].ID, refs[j].ID) })
}
