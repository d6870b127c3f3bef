package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/contre95/soundsort/src/sound"
	"github.com/eiannone/keyboard"
)

// MockSession records the calls made by the terminal
type MockSession struct {
	calls      []string
	undoResult *sorting.UndoResult
	status     sorting.Status
}

func (m *MockSession) Next(ctx context.Context) { m.calls = append(m.calls, "next") }

func (m *MockSession) Categorize(ctx context.Context, key string) (*sorting.RelocationRecord, error) {
	m.calls = append(m.calls, "categorize "+key)
	if key != "1" {
		return nil, sorting.ErrUnknownCategory
	}
	return &sorting.RelocationRecord{Category: "gunshot"}, nil
}

func (m *MockSession) Undo(ctx context.Context) (*sorting.UndoResult, error) {
	m.calls = append(m.calls, "undo")
	return m.undoResult, nil
}

func (m *MockSession) Replay(ctx context.Context) error {
	m.calls = append(m.calls, "replay")
	return nil
}

func (m *MockSession) TogglePause(ctx context.Context) (bool, error) {
	m.calls = append(m.calls, "pause")
	return true, nil
}

func (m *MockSession) Status() sorting.Status { return m.status }

func TestTerminal_HandleKey(t *testing.T) {
	session := &MockSession{}
	term := NewTerminal(session, io.Discard)
	ctx := context.Background()

	presses := []struct {
		char rune
		key  keyboard.Key
	}{
		{'1', 0},
		{'7', 0},
		{0, keyboard.KeySpace},
		{'r', 0},
		{'n', 0},
		{0, keyboard.KeyBackspace2},
	}
	for _, p := range presses {
		if term.HandleKey(ctx, p.char, p.key) {
			t.Fatalf("unexpected quit on %q/%v", p.char, p.key)
		}
	}
	want := []string{"categorize 1", "categorize 7", "pause", "replay", "next", "undo"}
	if strings.Join(session.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, session.calls)
	}
	if term.message != "nothing to undo" {
		t.Errorf("unexpected message %q", term.message)
	}

	if !term.HandleKey(ctx, 'q', 0) || !term.HandleKey(ctx, 0, keyboard.KeyEsc) {
		t.Error("expected q and esc to quit")
	}
}

func TestTerminal_UnknownCategoryMessage(t *testing.T) {
	term := NewTerminal(&MockSession{}, io.Discard)
	term.HandleKey(context.Background(), '5', 0)
	if term.message != "no category on key 5" {
		t.Errorf("unexpected message %q", term.message)
	}
}

func TestRender(t *testing.T) {
	st := sorting.Status{
		Current:    &sound.Sound{Name: "shot.wav"},
		Processed:  1,
		Remaining:  2,
		Total:      3,
		Playing:    true,
		CanUndo:    true,
		SourceDir:  "/sounds",
		Categories: sound.Categories{{Key: "1", Folder: "gunshot"}, {Key: "2", Folder: "noise"}},
		LastError:  "disk full",
	}
	out := Render(st, "moved to gunshot")
	for _, want := range []string{
		"Now: shot.wav [playing]",
		"1 of 3 processed | 2 left",
		"1 gunshot | 2 noise",
		"backspace undo",
		"Error: disk full",
		"> moved to gunshot",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	done := Render(sorting.Status{Done: true}, "")
	if !strings.Contains(done, "All sounds are sorted.") || !strings.Contains(done, "done, nothing left to sort") {
		t.Errorf("unexpected done screen:\n%s", done)
	}
	if strings.Contains(done, "backspace undo") {
		t.Error("undo key must be hidden when nothing can be undone")
	}
}
