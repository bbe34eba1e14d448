package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notehub/internal/access"
	"notehub/internal/cache"
	"notehub/internal/model"
	"notehub/internal/repository"
)

const noteCacheTTL = 5 * time.Minute

// NoteService exposes note operations, all scoped to the calling user.
type NoteService interface {
	Get(ctx context.Context, callerID, noteID uint) (*model.Note, error)
	List(ctx context.Context, callerID uint) ([]model.Note, error)
	Create(ctx context.Context, callerID uint, title, content string) (*model.Note, error)
	// Update replaces only the supplied fields. With both fields nil the
	// note is returned unchanged and nothing is persisted.
	Update(ctx context.Context, note *model.Note, title, content *string) (*model.Note, error)
	Delete(ctx context.Context, note *model.Note) error
}

type noteService struct {
	resolver *access.Resolver
	repo     repository.NoteRepository
	cache    *cache.Client
}

// NewNoteService builds a NoteService over the ownership resolver and repository.
func NewNoteService(resolver *access.Resolver, repo repository.NoteRepository, cache *cache.Client) NoteService {
	return &noteService{resolver: resolver, repo: repo, cache: cache}
}

func (s *noteService) cacheKey(ownerID, noteID uint) string {
	return fmt.Sprintf("note:%d:%d", ownerID, noteID)
}

func (s *noteService) Get(ctx context.Context, callerID, noteID uint) (*model.Note, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(callerID, noteID)); data != nil {
		var cached model.Note
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	note, err := s.resolver.Resolve(ctx, callerID, noteID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(note); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(callerID, noteID), payload, noteCacheTTL)
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, callerID uint) ([]model.Note, error) {
	return s.resolver.ResolveAll(ctx, callerID)
}

func (s *noteService) Create(ctx context.Context, callerID uint, title, content string) (*model.Note, error) {
	note := &model.Note{
		Title:   title,
		Content: content,
		UserID:  callerID,
	}
	note.StampCreate(time.Now())
	if err := s.repo.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, note *model.Note, title, content *string) (*model.Note, error) {
	if title == nil && content == nil {
		return note, nil
	}
	if title != nil {
		note.Title = *title
	}
	if content != nil {
		note.Content = *content
	}
	note.StampUpdate(time.Now())
	if err := s.repo.Save(ctx, note); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(note.UserID, note.ID))
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, note *model.Note) error {
	if err := s.repo.Delete(ctx, note); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(note.UserID, note.ID))
	return nil
}
