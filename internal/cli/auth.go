package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/reishandy/noteapp/internal/common"
	"github.com/reishandy/noteapp/internal/services"
)

// getSimpleText, getPassword, and confirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirm = Confirm

// printFieldErrors reports the per-field validation messages of the last
// failed submission, attached to the inputs that caused them.
func printFieldErrors(fe services.FieldErrors) {
	if fe.Username != "" {
		fmt.Println("  username: " + fe.Username)
	}
	if fe.Password != "" {
		fmt.Println("  password: " + fe.Password)
	}
	if fe.RePassword != "" {
		fmt.Println("  re-enter password: " + fe.RePassword)
	}
}

// Register prompts for a username and a password (entered twice) and
// attempts to create a new account. Password buffers are wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	a.auth.SetMode(services.FormRegister)

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	rePassword, err := getPassword("Re-enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(rePassword)

	if err := a.auth.Register(ctx, username, password, rePassword); err != nil {
		printFieldErrors(a.auth.FieldErrors())
		return err
	}

	fmt.Println("Account created successfully")
	return nil
}

// Login prompts for credentials and tries to establish a session. On
// success the live note feed for the user is started.
func (a *App) Login(ctx context.Context) error {
	a.auth.SetMode(services.FormLogin)

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, password); err != nil {
		printFieldErrors(a.auth.FieldErrors())
		return err
	}

	if err := a.startListening(ctx); err != nil {
		a.log.Error(ctx, "failed to start note feed", "error", err)
		return err
	}

	fmt.Printf("Welcome back %s\n", username)
	return nil
}

// ChangeUsername prompts for a new username, renames the account, and
// restarts the live feed under the new name.
func (a *App) ChangeUsername(ctx context.Context) error {
	a.auth.SetMode(services.FormChangeUsername)

	username, err := getSimpleText(a.reader, "Enter new username", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.ChangeUsername(ctx, username); err != nil {
		printFieldErrors(a.auth.FieldErrors())
		return err
	}

	if err := a.startListening(ctx); err != nil {
		a.log.Error(ctx, "failed to restart note feed", "error", err)
		return err
	}

	fmt.Printf("Username changed successfully to %s\n", username)
	return nil
}

// ChangePassword prompts for a new password (entered twice) and replaces
// the stored hash. Password buffers are wiped before returning.
func (a *App) ChangePassword(ctx context.Context) error {
	a.auth.SetMode(services.FormChangePassword)

	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	rePassword, err := getPassword("Re-enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(rePassword)

	if err := a.auth.ChangePassword(ctx, password, rePassword); err != nil {
		printFieldErrors(a.auth.FieldErrors())
		return err
	}

	fmt.Println("Password changed successfully")
	return nil
}

// DeleteAccount asks for confirmation, then removes the account and every
// note it owns.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := confirm(a.reader, "Delete your account and all of its notes?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return err
	}

	a.stopListening()
	fmt.Println("Account deleted successfully")
	return nil
}

// Logout clears the session and stops the live feed.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout()
	a.stopListening()
	fmt.Println("Logged out successfully")
	return nil
}
