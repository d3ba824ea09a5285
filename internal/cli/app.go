// Package cli implements the interactive terminal front end of the note
// keeper. It owns no business logic: every command reads input, calls into
// the services, and prints the outcome.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/reishandy/noteapp/internal/config"
	"github.com/reishandy/noteapp/internal/logging"
	"github.com/reishandy/noteapp/internal/models"
	"github.com/reishandy/noteapp/internal/repositories/notes"
	"github.com/reishandy/noteapp/internal/services"
	"github.com/reishandy/noteapp/internal/storage"

	_ "modernc.org/sqlite"
)

// App wires the services to the REPL and keeps the per-session view state:
// the latest note snapshot delivered by the live feed.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	auth   *services.AuthService
	notes  *services.NoteService
	reader *bufio.Reader

	mu         sync.Mutex
	latest     []models.Note
	listenStop context.CancelFunc
}

// NewApp opens the database, applies migrations, and constructs the
// application with its services.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to open database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	feed := notes.NewFeed(notes.NewSQLiteRepository(db), log)

	return &App{
		config: cfg,
		log:    log,
		db:     db,
		auth:   services.NewAuthService(db, feed, log),
		notes:  services.NewNoteService(feed, log),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to noteapp (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close stops the live feed and releases the database.
func (a *App) Close() error {
	a.stopListening()
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.CurrentSession()
	return ok
}

func (a *App) getStatus() string {
	if sess, ok := a.auth.CurrentSession(); ok {
		return fmt.Sprintf("(%s)", sess.Username)
	}
	return ""
}

// startListening subscribes to the live feed of the logged-in user and
// keeps the latest snapshot for the list/select commands. Any previous
// subscription is stopped first.
func (a *App) startListening(ctx context.Context) error {
	sess, ok := a.auth.CurrentSession()
	if !ok {
		return nil
	}
	a.stopListening()

	lctx, cancel := context.WithCancel(ctx)
	ch, err := a.notes.Listen(lctx, sess.Username)
	if err != nil {
		cancel()
		return err
	}

	a.mu.Lock()
	a.listenStop = cancel
	a.mu.Unlock()

	go func() {
		for snapshot := range ch {
			a.mu.Lock()
			a.latest = snapshot
			a.mu.Unlock()
		}
	}()
	return nil
}

// stopListening cancels the feed subscription and drops the cached snapshot.
func (a *App) stopListening() {
	a.mu.Lock()
	if a.listenStop != nil {
		a.listenStop()
		a.listenStop = nil
	}
	a.latest = nil
	a.mu.Unlock()
	a.notes.ClearSelection()
}

func (a *App) latestNotes() []models.Note {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}
