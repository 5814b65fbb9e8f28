package domain

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// LessID reports whether id a sorts before id b in ascending id order.
// Related sub-resources are always returned sorted ascending by their own
// id; deterministic output ordering is part of the API contract.
func LessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// SortIDs sorts a slice of ids ascending in place.
func SortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return LessID(ids[i], ids[j]) })
}

// DedupIDs returns ids with duplicates removed, preserving first occurrence.
func DedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
