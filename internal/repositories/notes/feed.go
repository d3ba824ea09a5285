package notes

import (
	"context"
	"sync"

	"github.com/reishandy/noteapp/internal/logging"
	"github.com/reishandy/noteapp/internal/models"
)

// Feed wraps a Repository and turns the per-user note list into a live
// subscription: every mutation routed through the Feed re-emits a fresh
// snapshot to all subscribers of the affected username.
//
// Channels are latest-value with capacity 1: when a subscriber has not yet
// consumed the previous snapshot, it is dropped and replaced, so a reader
// always observes the newest state. A subscription ends when its context is
// done; the channel is then closed.
type Feed struct {
	repo Repository
	log  logging.Logger

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

type subscriber struct {
	username string
	ch       chan []models.Note
}

// NewFeed returns a Feed publishing snapshots from repo. The repo must be
// bound to the shared *sql.DB, not a transaction.
func NewFeed(repo Repository, log logging.Logger) *Feed {
	return &Feed{
		repo: repo,
		log:  log.With("component", "notefeed"),
		subs: make(map[int]*subscriber),
	}
}

// Subscribe registers a live subscription for username and returns its
// channel. The current note list is emitted immediately; afterwards a new
// snapshot arrives after every mutation affecting username. When ctx is
// done the subscription is removed and the channel closed.
func (f *Feed) Subscribe(ctx context.Context, username string) (<-chan []models.Note, error) {
	snapshot, err := f.repo.GetAll(ctx, username)
	if err != nil {
		return nil, err
	}

	sub := &subscriber{username: username, ch: make(chan []models.Note, 1)}
	sub.ch <- snapshot

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = sub
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, id)
		close(sub.ch)
		f.mu.Unlock()
	}()

	return sub.ch, nil
}

// Insert stores the note and notifies subscribers of its owner.
func (f *Feed) Insert(ctx context.Context, note *models.Note) error {
	if err := f.repo.Insert(ctx, note); err != nil {
		return err
	}
	f.Invalidate(ctx, note.UserID)
	return nil
}

// Update rewrites the note's fields and notifies subscribers of its owner.
func (f *Feed) Update(ctx context.Context, note *models.Note) error {
	if err := f.repo.Update(ctx, note.ID, note.Title, note.Subtitle, note.Content, note.Timestamp); err != nil {
		return err
	}
	f.Invalidate(ctx, note.UserID)
	return nil
}

// Delete removes the note and notifies subscribers of its owner.
func (f *Feed) Delete(ctx context.Context, note *models.Note) error {
	if err := f.repo.Delete(ctx, note.ID); err != nil {
		return err
	}
	f.Invalidate(ctx, note.UserID)
	return nil
}

// RenameOwner migrates note ownership and notifies subscribers on both
// sides of the rename.
func (f *Feed) RenameOwner(ctx context.Context, oldUsername, newUsername string) error {
	if err := f.repo.RenameOwner(ctx, oldUsername, newUsername); err != nil {
		return err
	}
	f.Invalidate(ctx, oldUsername, newUsername)
	return nil
}

// GetAll reads the current note list without subscribing.
func (f *Feed) GetAll(ctx context.Context, username string) ([]models.Note, error) {
	return f.repo.GetAll(ctx, username)
}

// Invalidate re-emits a fresh snapshot to every subscriber of the given
// usernames. Used directly by callers whose mutations bypass the Feed,
// e.g. the FK cascade of an account deletion or a transactional rename.
func (f *Feed) Invalidate(ctx context.Context, usernames ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, username := range usernames {
		var targets []*subscriber
		for _, s := range f.subs {
			if s.username == username {
				targets = append(targets, s)
			}
		}
		if len(targets) == 0 {
			continue
		}

		snapshot, err := f.repo.GetAll(ctx, username)
		if err != nil {
			f.log.Error(ctx, "failed to load note snapshot", "user", username, "error", err)
			continue
		}

		for _, s := range targets {
			// Drop an undelivered stale snapshot before sending the new one.
			select {
			case s.ch <- snapshot:
			default:
				select {
				case <-s.ch:
				default:
				}
				s.ch <- snapshot
			}
		}
	}
}
