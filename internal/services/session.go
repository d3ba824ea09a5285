// Package services contains the application logic between the CLI and the
// repositories: account/session management and note management.
package services

import "time"

// FormMode identifies which auth form is active. Each mode has its own
// required fields and validation rules.
type FormMode int

const (
	FormLogin FormMode = iota
	FormRegister
	FormChangeUsername
	FormChangePassword
)

func (m FormMode) String() string {
	switch m {
	case FormLogin:
		return "login"
	case FormRegister:
		return "register"
	case FormChangeUsername:
		return "change username"
	case FormChangePassword:
		return "change password"
	default:
		return "unknown"
	}
}

// FieldErrors carries per-input validation messages for the active form.
// An empty string means the field is fine. Errors are recoverable; the user
// corrects the input and resubmits.
type FieldErrors struct {
	Username   string
	Password   string
	RePassword string
}

// Session is the explicit current-user context established by a successful
// login. It replaces any ambient "current user" global: whoever holds the
// session acts as that user.
type Session struct {
	ID        string
	Username  string
	StartedAt time.Time
}
