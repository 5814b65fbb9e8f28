package domain

import "github.com/google/uuid"

// Visibility selects which variant of a resource a caller asks for.
type Visibility string

const (
	VisibilityDefault Visibility = "default"
	VisibilityCustom  Visibility = "custom"
)

// AccessMode distinguishes reads from mutations: default resources are
// globally readable but never mutable through user-facing operations.
type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessMutate
)

// Ownership carries the default/custom flag and the owning user of a
// resource. Invariant: IsCustom == (OwnerID != nil); a default resource is
// system-owned, a custom resource belongs to exactly one user.
type Ownership struct {
	IsCustom bool
	OwnerID  *uuid.UUID
}

// CustomOwnedBy builds the ownership of a freshly created custom resource.
func CustomOwnedBy(userID uuid.UUID) Ownership {
	return Ownership{IsCustom: true, OwnerID: &userID}
}

// Consistent reports whether the default/custom flag agrees with the owner
// reference. Repositories reject rows violating it with ErrServer.
func (o Ownership) Consistent() bool {
	return o.IsCustom == (o.OwnerID != nil)
}

// OwnedBy reports whether the resource is a custom resource of the given user.
func (o Ownership) OwnedBy(userID uuid.UUID) bool {
	return o.IsCustom && o.OwnerID != nil && *o.OwnerID == userID
}

// CheckAccess decides whether a caller may proceed with a resource.
// It is pure and invoked identically by every domain service before any
// read-for-mutation, update or delete:
//
//   - a mutation on a default resource fails with ErrDefaultImmutable;
//   - a variant mismatch between the request and the stored flag fails with
//     ErrDefaultCustomMismatch;
//   - a custom resource not owned by the requester fails with
//     ErrResourceOwnerMismatch.
//
// For AccessMutate the requested visibility is implied to be custom.
func CheckAccess(own Ownership, requested Visibility, userID uuid.UUID, mode AccessMode) error {
	if mode == AccessMutate {
		if !own.IsCustom {
			return ErrDefaultImmutable
		}
	} else {
		if requested == VisibilityDefault && own.IsCustom {
			return ErrDefaultCustomMismatch
		}
		if requested == VisibilityCustom && !own.IsCustom {
			return ErrDefaultCustomMismatch
		}
	}

	if own.IsCustom && !own.OwnedBy(userID) {
		return ErrResourceOwnerMismatch
	}

	return nil
}
