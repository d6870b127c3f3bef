package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// Placeholder is replaced by the sound path in the player command.
const Placeholder = "{file}"

var (
	ErrNoCommand  = errors.New("player command is empty")
	ErrNotPlaying = errors.New("nothing is playing")
)

// ExecPlayer plays sounds by running an external player process, one at a time.
// The running process is the only handle on the file, so Release just ends it.
type ExecPlayer struct {
	mu      sync.Mutex
	command []string
	cmd     *exec.Cmd
	done    chan struct{}
	paused  bool
}

// NewExecPlayer creates a player for the given command line.
func NewExecPlayer(command []string) (*ExecPlayer, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, ErrNoCommand
	}
	return &ExecPlayer{command: append([]string(nil), command...)}, nil
}

// Args builds the argv for path. Without a placeholder the path is appended.
func (p *ExecPlayer) Args(path string) []string {
	args := make([]string, 0, len(p.command)+1)
	replaced := false
	for _, arg := range p.command {
		if strings.Contains(arg, Placeholder) {
			arg = strings.ReplaceAll(arg, Placeholder, path)
			replaced = true
		}
		args = append(args, arg)
	}
	if !replaced {
		args = append(args, path)
	}
	return args
}

// Play stops whatever is playing and starts path from the beginning.
func (p *ExecPlayer) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	args := p.Args(path)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", args[0], err)
	}
	done := make(chan struct{})
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Player process exited", "path", path, "error", err)
		}
		close(done)
	}()
	p.cmd = cmd
	p.done = done
	p.paused = false
	slog.Debug("Player started", "pid", cmd.Process.Pid, "path", path)
	return nil
}

// Stop ends playback. It does nothing when idle.
func (p *ExecPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Release drops the handle on the loaded file by ending the player process.
func (p *ExecPlayer) Release() error {
	p.Stop()
	return nil
}

// Busy reports whether a player process is still running.
func (p *ExecPlayer) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningLocked()
}

// TogglePause suspends or resumes the player process.
func (p *ExecPlayer) TogglePause() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.runningLocked() {
		return false, ErrNotPlaying
	}
	if p.paused {
		if err := resume(p.cmd.Process); err != nil {
			return true, fmt.Errorf("failed to resume player: %w", err)
		}
		p.paused = false
		return false, nil
	}
	if err := suspend(p.cmd.Process); err != nil {
		return false, fmt.Errorf("failed to pause player: %w", err)
	}
	p.paused = true
	return true, nil
}

func (p *ExecPlayer) runningLocked() bool {
	if p.cmd == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *ExecPlayer) stopLocked() {
	if p.cmd == nil {
		return
	}
	if p.runningLocked() {
		if err := p.cmd.Process.Kill(); err != nil {
			slog.Debug("Failed to kill player process", "error", err)
		}
	}
	<-p.done
	p.cmd = nil
	p.done = nil
	p.paused = false
}
