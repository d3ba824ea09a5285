package services

import (
	"bytes"
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reishandy/noteapp/internal/common"
	"github.com/reishandy/noteapp/internal/dbx"
	"github.com/reishandy/noteapp/internal/logging"
	"github.com/reishandy/noteapp/internal/models"
	"github.com/reishandy/noteapp/internal/repositories/notes"
	"github.com/reishandy/noteapp/internal/repositories/users"
)

// AuthService provides account and session operations:
//   - Login / Logout: establish and clear the current session
//   - Register: create accounts (stores the password hash, never plaintext)
//   - ChangeUsername: rename the account and migrate note ownership
//   - ChangePassword: replace the stored hash
//   - DeleteAccount: remove the account and, via cascade, its notes
//
// It also owns the transient form state: the active FormMode and the
// per-field validation messages of the last failed submission. Passwords
// are accepted as byte slices and never retained; callers should wipe them
// after use.
type AuthService struct {
	db    *sql.DB
	users users.Repository
	feed  *notes.Feed
	log   logging.Logger

	mu      sync.Mutex
	mode    FormMode
	fields  FieldErrors
	session *Session
}

// NewAuthService constructs an AuthService over the shared database handle.
// The feed is notified whenever an account operation changes note ownership
// behind the Note Store's back (cascade delete, transactional rename).
func NewAuthService(db *sql.DB, feed *notes.Feed, log logging.Logger) *AuthService {
	return &AuthService{
		db:    db,
		users: users.NewSQLiteRepository(db),
		feed:  feed,
		log:   log.With("component", "auth"),
	}
}

// SetMode switches the active form. Field errors are cleared; any password
// input held by the caller belongs to the previous form and must be wiped.
func (s *AuthService) SetMode(mode FormMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.fields = FieldErrors{}
}

// Mode returns the active form mode.
func (s *AuthService) Mode() FormMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// FieldErrors returns the validation messages of the last submission.
func (s *AuthService) FieldErrors() FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// CurrentSession returns a copy of the active session, or ok=false when
// nobody is logged in.
func (s *AuthService) CurrentSession() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

func (s *AuthService) setFields(f FieldErrors) {
	s.mu.Lock()
	s.fields = f
	s.mu.Unlock()
}

func (s *AuthService) requireSession() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Session{}, common.ErrNoSession
	}
	return *s.session, nil
}

func (s *AuthService) startSession(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &Session{ID: uuid.NewString(), Username: username, StartedAt: time.Now()}
	s.mode = FormLogin
	s.fields = FieldErrors{}
}

// Login verifies the credentials and establishes a session. An unknown
// username yields ErrNotFound on the username field; a wrong password
// yields ErrInvalidCredential on the password field, never ErrNotFound.
func (s *AuthService) Login(ctx context.Context, username string, password []byte) error {
	s.setFields(FieldErrors{})

	if username == "" {
		s.setFields(FieldErrors{Username: "Must not be empty"})
		return common.ErrEmptyField
	}
	if len(password) == 0 {
		s.setFields(FieldErrors{Password: "Must not be empty"})
		return common.ErrEmptyField
	}

	user, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.setFields(FieldErrors{Username: "Username not found"})
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	candidate := common.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(candidate)) != 1 {
		s.setFields(FieldErrors{Password: "Incorrect password"})
		return common.ErrInvalidCredential
	}

	s.startSession(username)
	s.log.Info(ctx, "user logged in", "user", username)
	return nil
}

// Register creates a new account. The stored password is the SHA-256 hex
// digest; registration does not log the user in but switches the form back
// to Login.
func (s *AuthService) Register(ctx context.Context, username string, password, rePassword []byte) error {
	s.setFields(FieldErrors{})

	if username == "" {
		s.setFields(FieldErrors{Username: "Must not be empty"})
		return common.ErrEmptyField
	}
	if err := s.validatePassword(password, rePassword); err != nil {
		return err
	}

	err := s.users.Insert(ctx, &models.User{Username: username, Password: common.HashPassword(password)})
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			s.setFields(FieldErrors{Username: "Username already exists"})
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.SetMode(FormLogin)
	s.log.Info(ctx, "account created", "user", username)
	return nil
}

// ChangeUsername renames the logged-in account and migrates note ownership.
// The rename and the migration run in one transaction: the note rewrite
// must not begin before the rename has committed, and neither half may land
// without the other. On success the session is re-established under the
// new name.
func (s *AuthService) ChangeUsername(ctx context.Context, newUsername string) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	s.setFields(FieldErrors{})

	if newUsername == "" {
		s.setFields(FieldErrors{Username: "Must not be empty"})
		return common.ErrEmptyField
	}

	taken, err := s.users.Exists(ctx, newUsername)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		s.setFields(FieldErrors{Username: "Username already exists"})
		return common.ErrUsernameTaken
	}

	user, err := s.users.Get(ctx, sess.Username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// Until RenameOwner runs, the notes still reference the old
		// username; FK checks must wait for the end of the transaction.
		// The pragma resets itself on commit or rollback.
		if _, err := tx.ExecContext(ctx, `PRAGMA defer_foreign_keys = ON`); err != nil {
			return err
		}
		if err := users.NewSQLiteRepository(tx).Update(ctx, user.Username, newUsername, user.Password); err != nil {
			return err
		}
		return notes.NewSQLiteRepository(tx).RenameOwner(ctx, user.Username, newUsername)
	})
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			s.setFields(FieldErrors{Username: "Username already exists"})
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("failed to rename user: %w", err)
	}

	s.feed.Invalidate(ctx, user.Username, newUsername)
	s.startSession(newUsername)
	s.log.Info(ctx, "username changed", "from", user.Username, "to", newUsername)
	return nil
}

// ChangePassword replaces the stored hash of the logged-in account. The
// username and the notes are untouched; the session stays as it is.
func (s *AuthService) ChangePassword(ctx context.Context, password, rePassword []byte) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}
	s.setFields(FieldErrors{})

	if err := s.validatePassword(password, rePassword); err != nil {
		return err
	}

	if err := s.users.Update(ctx, sess.Username, sess.Username, common.HashPassword(password)); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.SetMode(FormLogin)
	s.log.Info(ctx, "password changed", "user", sess.Username)
	return nil
}

// DeleteAccount removes the logged-in account; the schema cascade removes
// its notes. The session is cleared on success.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	sess, err := s.requireSession()
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, sess.Username); err != nil {
		return err
	}

	s.feed.Invalidate(ctx, sess.Username)
	s.Logout()
	s.log.Info(ctx, "account deleted", "user", sess.Username)
	return nil
}

// Logout clears the session and all transient form state.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.mode = FormLogin
	s.fields = FieldErrors{}
}

// validatePassword applies the shared strength and confirmation rules of
// the Register and ChangePassword forms.
func (s *AuthService) validatePassword(password, rePassword []byte) error {
	if len(password) < 8 {
		s.setFields(FieldErrors{Password: "Password must be at least 8 characters"})
		return common.ErrWeakPassword
	}
	if !bytes.Equal(password, rePassword) {
		s.setFields(FieldErrors{RePassword: "Password does not match"})
		return common.ErrPasswordMismatch
	}
	return nil
}
