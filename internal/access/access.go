// Package access enforces the ownership model: a note is only visible and
// mutable through the identity of its owning user, and privileged
// operations require an explicit role.
package access

import (
	"context"

	apperrors "notehub/internal/errors"
	"notehub/internal/model"
	"notehub/internal/repository"
)

// HasRole reports whether the required role is present in the given
// effective role set. Pure function so role checks stay trivially testable.
func HasRole(roles []string, required string) bool {
	for _, role := range roles {
		if role == required {
			return true
		}
	}
	return false
}

// RequireRole returns ErrForbidden when the required role is missing.
// Denial is distinct from not-found: the caller knows the operation exists
// but is not allowed to perform it.
func RequireRole(roles []string, required string) error {
	if !HasRole(roles, required) {
		return apperrors.ErrForbidden
	}
	return nil
}

// Resolver looks up notes scoped to the calling user. A note owned by
// another user resolves exactly like a note that does not exist, so callers
// can never probe for foreign resources.
type Resolver struct {
	notes repository.NoteRepository
}

// NewResolver builds a Resolver over the note repository.
func NewResolver(notes repository.NoteRepository) *Resolver {
	return &Resolver{notes: notes}
}

// Resolve returns the note with the given id if the caller owns it,
// ErrNoteNotFound otherwise. Id and owner are matched in a single query.
func (r *Resolver) Resolve(ctx context.Context, callerID, noteID uint) (*model.Note, error) {
	notes, err := r.notes.FindByOwnerAndOptionalID(ctx, callerID, &noteID)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, apperrors.ErrNoteNotFound
	}
	return &notes[0], nil
}

// ResolveAll returns every note owned by the caller in insertion order.
// An empty slice is a valid result, not an error.
func (r *Resolver) ResolveAll(ctx context.Context, callerID uint) ([]model.Note, error) {
	return r.notes.FindByOwnerAndOptionalID(ctx, callerID, nil)
}
