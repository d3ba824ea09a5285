package services

import (
	"context"
	"sync"
	"time"

	"github.com/reishandy/noteapp/internal/logging"
	"github.com/reishandy/noteapp/internal/models"
	"github.com/reishandy/noteapp/internal/repositories/notes"
)

// NoteService manages the logged-in user's notes: the live listing, adds,
// edits, deletes, and the exclusive note selection that edits and deletes
// operate on.
type NoteService struct {
	feed *notes.Feed
	log  logging.Logger

	mu       sync.Mutex
	selected *models.Note
}

// NewNoteService constructs a NoteService over the given feed.
func NewNoteService(feed *notes.Feed, log logging.Logger) *NoteService {
	return &NoteService{feed: feed, log: log.With("component", "notes")}
}

// Listen binds the live note feed for username. The channel emits the
// current list immediately and a fresh snapshot after every change, until
// ctx is done.
func (s *NoteService) Listen(ctx context.Context, username string) (<-chan []models.Note, error) {
	return s.feed.Subscribe(ctx, username)
}

// Add stores a new note for username, timestamped now.
func (s *NoteService) Add(ctx context.Context, username, title, subtitle, content string) error {
	note := &models.Note{
		Title:     title,
		Subtitle:  subtitle,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
		UserID:    username,
	}
	if err := s.feed.Insert(ctx, note); err != nil {
		return err
	}
	s.log.Info(ctx, "note added", "id", note.ID, "user", username)
	return nil
}

// Update rewrites the selected note's title, subtitle, and content and
// refreshes its timestamp. Without a selection this is a silent no-op.
// The selection is cleared on success.
func (s *NoteService) Update(ctx context.Context, title, subtitle, content string) error {
	sel := s.Selected()
	if sel == nil {
		return nil
	}

	sel.Title = title
	sel.Subtitle = subtitle
	sel.Content = content
	sel.Timestamp = time.Now().UnixMilli()

	if err := s.feed.Update(ctx, sel); err != nil {
		return err
	}

	s.clearSelection()
	s.log.Info(ctx, "note updated", "id", sel.ID)
	return nil
}

// Delete removes the selected note. Without a selection this is a silent
// no-op. The selection is cleared on success.
func (s *NoteService) Delete(ctx context.Context) error {
	sel := s.Selected()
	if sel == nil {
		return nil
	}

	if err := s.feed.Delete(ctx, sel); err != nil {
		return err
	}

	s.clearSelection()
	s.log.Info(ctx, "note deleted", "id", sel.ID)
	return nil
}

// RenameOwner delegates the bulk ownership rewrite to the store.
func (s *NoteService) RenameOwner(ctx context.Context, oldUsername, newUsername string) error {
	return s.feed.RenameOwner(ctx, oldUsername, newUsername)
}

// Select toggles the exclusive selection: selecting a note replaces any
// previous selection, selecting the currently selected note again clears it.
func (s *NoteService) Select(note models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == note.ID {
		s.selected = nil
		return
	}
	n := note
	s.selected = &n
}

// Selected returns a copy of the selected note, or nil.
func (s *NoteService) Selected() *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	n := *s.selected
	return &n
}

// ClearSelection drops any selection, e.g. when the note list view is left.
func (s *NoteService) ClearSelection() {
	s.clearSelection()
}

func (s *NoteService) clearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}
