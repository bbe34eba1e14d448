package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "notehub/internal/errors"
	"notehub/internal/model"
)

// NoteRepository defines note persistence operations. Every lookup is
// parameterized by the owning user; there is no unscoped read path.
type NoteRepository interface {
	// Save upserts the note inside a transaction.
	Save(ctx context.Context, note *model.Note) error
	// Delete removes the note inside a transaction.
	Delete(ctx context.Context, note *model.Note) error
	// FindByOwnerAndOptionalID is the single scoped-lookup primitive. With a
	// nil id it returns all of the owner's notes in id order; with an id it
	// returns at most one note matching both id and owner.
	FindByOwnerAndOptionalID(ctx context.Context, ownerID uint, id *uint) ([]model.Note, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Save(ctx context.Context, note *model.Note) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(note).Error
	})
	if err != nil {
		return fmt.Errorf("%w: save note: %v", apperrors.ErrPersistenceFault, err)
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, note *model.Note) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(note).Error
	})
	if err != nil {
		return fmt.Errorf("%w: delete note: %v", apperrors.ErrPersistenceFault, err)
	}
	return nil
}

func (r *noteRepository) FindByOwnerAndOptionalID(ctx context.Context, ownerID uint, id *uint) ([]model.Note, error) {
	var notes []model.Note
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id")
	if id != nil {
		query = query.Where("id = ?", *id)
	}
	if err := query.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("%w: find notes: %v", apperrors.ErrPersistenceFault, err)
	}
	return notes, nil
}
