package domain

import "github.com/google/uuid"

// BodyPart is a shared taxonomy node: default-only, never owned, immutable.
// It exists solely to be referenced by exercises.
type BodyPart struct {
	ID   uuid.UUID
	Name string
}
