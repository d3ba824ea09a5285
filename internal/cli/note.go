package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/reishandy/noteapp/internal/common"
)

// List prints the latest snapshot of the live note feed, most recent first.
// The selected note is marked with an asterisk.
func (a *App) List(ctx context.Context) error {
	notes := a.latestNotes()
	if len(notes) == 0 {
		fmt.Println("No notes yet")
		return nil
	}

	selected := a.notes.Selected()
	for _, n := range notes {
		marker := " "
		if selected != nil && selected.ID == n.ID {
			marker = "*"
		}
		fmt.Printf("%s %4d  %s  %s | %s\n", marker, n.ID, common.FormatTimestamp(n.Timestamp), n.Title, n.Subtitle)
	}
	return nil
}

// AddNote prompts for title, subtitle, and content, and stores a new note
// for the logged-in user.
func (a *App) AddNote(ctx context.Context) error {
	sess, ok := a.auth.CurrentSession()
	if !ok {
		return common.ErrNoSession
	}

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	subtitle, err := getSimpleText(a.reader, "Enter subtitle", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.notes.Add(ctx, sess.Username, title, subtitle, content); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return err
	}

	fmt.Println("Note added")
	return nil
}

// SelectNote toggles the selection of a note by id. Selecting the already
// selected note deselects it.
func (a *App) SelectNote(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Enter note id", os.Stdout)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Println("Not a valid id:", raw)
		return nil
	}

	for _, n := range a.latestNotes() {
		if n.ID == id {
			a.notes.Select(n)
			if sel := a.notes.Selected(); sel != nil {
				fmt.Printf("Selected note %d\n", sel.ID)
			} else {
				fmt.Println("Selection cleared")
			}
			return nil
		}
	}

	fmt.Println("No such note:", id)
	return nil
}

// EditNote prompts for replacement fields and updates the selected note.
func (a *App) EditNote(ctx context.Context) error {
	sel := a.notes.Selected()
	if sel == nil {
		fmt.Println("No note selected (use 'select' first)")
		return nil
	}
	fmt.Printf("Editing note %d (%s)\n", sel.ID, sel.Title)

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	subtitle, err := getSimpleText(a.reader, "Enter subtitle", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.notes.Update(ctx, title, subtitle, content); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return err
	}

	fmt.Printf("Note %s updated\n", title)
	return nil
}

// DeleteNote asks for confirmation and removes the selected note.
func (a *App) DeleteNote(ctx context.Context) error {
	sel := a.notes.Selected()
	if sel == nil {
		fmt.Println("No note selected (use 'select' first)")
		return nil
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete note %q?", sel.Title), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.notes.Delete(ctx); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return err
	}

	fmt.Printf("Note %s deleted\n", sel.Title)
	return nil
}
