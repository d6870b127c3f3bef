package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/eiannone/keyboard"
)

// RefreshInterval is how often the status line is redrawn without input.
const RefreshInterval = 300 * time.Millisecond

const clearScreen = "\033[H\033[2J"

// Session is the part of the sorting service the terminal drives.
type Session interface {
	Next(ctx context.Context)
	Categorize(ctx context.Context, key string) (*sorting.RelocationRecord, error)
	Undo(ctx context.Context) (*sorting.UndoResult, error)
	Replay(ctx context.Context) error
	TogglePause(ctx context.Context) (bool, error)
	Status() sorting.Status
}

// Terminal is the keyboard driven sorter.
type Terminal struct {
	session Session
	out     io.Writer
	message string
}

// NewTerminal creates a terminal UI writing to out.
func NewTerminal(session Session, out io.Writer) *Terminal {
	return &Terminal{session: session, out: out}
}

// Run reads keys until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.draw()
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("failed to read keyboard: %w", ev.Err)
			}
			if quit := t.HandleKey(ctx, ev.Rune, ev.Key); quit {
				fmt.Fprint(t.out, "\r\nBye.\r\n")
				return nil
			}
			t.draw()
		}
	}
}

// HandleKey runs the action bound to a key press and reports whether to quit.
func (t *Terminal) HandleKey(ctx context.Context, char rune, key keyboard.Key) bool {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return true
	case keyboard.KeySpace:
		t.togglePause(ctx)
		return false
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		t.undo(ctx)
		return false
	}

	switch {
	case char == 'q' || char == 'Q':
		return true
	case char >= '1' && char <= '9':
		t.categorize(ctx, string(char))
	case char == 'r' || char == 'R':
		if err := t.session.Replay(ctx); err != nil {
			t.message = err.Error()
		} else {
			t.message = ""
		}
	case char == 'n' || char == 'N':
		t.session.Next(ctx)
		t.message = "skipped"
	case char == 'u' || char == 'U':
		t.undo(ctx)
	}
	return false
}

func (t *Terminal) categorize(ctx context.Context, key string) {
	rec, err := t.session.Categorize(ctx, key)
	switch {
	case errors.Is(err, sorting.ErrUnknownCategory):
		t.message = fmt.Sprintf("no category on key %s", key)
	case err != nil:
		t.message = err.Error()
	default:
		t.message = fmt.Sprintf("moved to %s", rec.Category)
	}
}

func (t *Terminal) undo(ctx context.Context) {
	result, err := t.session.Undo(ctx)
	switch {
	case err != nil:
		t.message = err.Error()
	case result == nil:
		t.message = "nothing to undo"
	case !result.Tracked:
		t.message = fmt.Sprintf("restored %s (filtered out, not queued)", result.RestoredPath)
	default:
		t.message = fmt.Sprintf("restored %s", result.RestoredPath)
	}
}

func (t *Terminal) togglePause(ctx context.Context) {
	if _, err := t.session.TogglePause(ctx); err != nil {
		t.message = err.Error()
		return
	}
	t.message = ""
}

func (t *Terminal) draw() {
	if _, err := io.WriteString(t.out, clearScreen+Render(t.session.Status(), t.message)); err != nil {
		slog.Debug("Failed to draw terminal", "error", err)
	}
}

// Render formats the screen for a status. Lines end in \r\n since the keyboard puts the tty in raw mode.
func Render(st sorting.Status, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Soundsort: %s\r\n\r\n", st.SourceDir)

	if st.Done {
		b.WriteString("All sounds are sorted.\r\n")
	} else if st.Current != nil {
		state := "stopped"
		switch {
		case st.Paused:
			state = "paused"
		case st.Playing:
			state = "playing"
		}
		fmt.Fprintf(&b, "Now: %s [%s]\r\n", st.Current.DisplayName(), state)
		if st.Current.License != "" {
			fmt.Fprintf(&b, "License: %s\r\n", st.Current.License)
		}
	}
	fmt.Fprintf(&b, "%s\r\n\r\n", st.Progress())

	keys := make([]string, 0, len(st.Categories)+5)
	for _, cat := range st.Categories {
		keys = append(keys, fmt.Sprintf("%s %s", cat.Key, cat.Folder))
	}
	keys = append(keys, "space play/pause", "r replay", "n skip")
	if st.CanUndo {
		keys = append(keys, "backspace undo")
	}
	keys = append(keys, "q quit")
	fmt.Fprintf(&b, "Keys: %s\r\n", strings.Join(keys, " | "))

	if st.LastError != "" && st.LastError != message {
		fmt.Fprintf(&b, "\r\nError: %s\r\n", st.LastError)
	}
	if message != "" {
		fmt.Fprintf(&b, "\r\n> %s\r\n", message)
	}
	return b.String()
}
