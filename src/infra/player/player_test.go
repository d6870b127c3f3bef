package player

import (
	"errors"
	"reflect"
	"runtime"
	"testing"
	"time"
)

func TestArgs(t *testing.T) {
	p, err := NewExecPlayer([]string{"ffplay", "-nodisp", "{file}"})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Args("/tmp/a b.wav"); !reflect.DeepEqual(got, []string{"ffplay", "-nodisp", "/tmp/a b.wav"}) {
		t.Errorf("unexpected args %v", got)
	}

	p, _ = NewExecPlayer([]string{"afplay"})
	if got := p.Args("x.wav"); !reflect.DeepEqual(got, []string{"afplay", "x.wav"}) {
		t.Errorf("expected path to be appended, got %v", got)
	}
}

func TestNewExecPlayer_EmptyCommand(t *testing.T) {
	if _, err := NewExecPlayer(nil); !errors.Is(err, ErrNoCommand) {
		t.Errorf("expected ErrNoCommand, got %v", err)
	}
}

func TestExecPlayer_Lifecycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
	p, err := NewExecPlayer([]string{"sh", "-c", "sleep 30", "sh", "{file}"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Busy() {
		t.Fatal("expected idle player")
	}
	if _, err := p.TogglePause(); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("expected ErrNotPlaying, got %v", err)
	}

	if err := p.Play("a.wav"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !p.Busy() {
		t.Fatal("expected busy player")
	}
	paused, err := p.TogglePause()
	if err != nil || !paused {
		t.Fatalf("expected paused, got %v, %v", paused, err)
	}
	paused, err = p.TogglePause()
	if err != nil || paused {
		t.Fatalf("expected resumed, got %v, %v", paused, err)
	}

	if err := p.Release(); err != nil {
		t.Fatal(err)
	}
	if p.Busy() {
		t.Error("expected release to end playback")
	}
	// Idempotent
	if err := p.Release(); err != nil {
		t.Fatal(err)
	}
}

func TestExecPlayer_FinishedIsNotBusy(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
	p, err := NewExecPlayer([]string{"true"})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play("a.wav"); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for p.Busy() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if p.Busy() {
		t.Error("expected finished process to be reported idle")
	}
	p.Stop()
}

func TestExecPlayer_MissingBinary(t *testing.T) {
	p, err := NewExecPlayer([]string{"soundsort-no-such-player"})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play("a.wav"); err == nil {
		t.Error("expected start failure")
	}
	if p.Busy() {
		t.Error("expected idle player after failed start")
	}
}
