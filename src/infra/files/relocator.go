package files

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	DefaultRetries = 6
	DefaultBackoff = 250 * time.Millisecond
)

// Releasable is anything holding a handle on a file that can be asked to let go of it.
type Releasable interface {
	Release() error
}

// Method tells how a relocation reached the destination.
type Method string

const (
	MethodRename Method = "rename"
	MethodCopy   Method = "copy"
)

// Observer receives relocation outcomes. Implementations must not block.
type Observer interface {
	Relocated(method Method, attempts int)
	RelocationFailed()
	OrphanLeft()
}

// Relocator moves files, retrying around transient locks and falling back to copy+delete.
type Relocator struct {
	retries  int
	backoff  time.Duration
	holder   Releasable
	observer Observer

	sleep  func(time.Duration)
	stat   func(string) (os.FileInfo, error)
	rename func(oldpath, newpath string) error
	remove func(string) error
	copy   func(src, dst string) error
}

// Option configures a Relocator.
type Option func(*Relocator)

// WithHolder sets the handle owner asked to release the file on lock errors.
func WithHolder(h Releasable) Option { return func(r *Relocator) { r.holder = h } }

// WithObserver sets the outcome observer.
func WithObserver(o Observer) Option { return func(r *Relocator) { r.observer = o } }

// WithSleep replaces time.Sleep, mostly for tests.
func WithSleep(fn func(time.Duration)) Option { return func(r *Relocator) { r.sleep = fn } }

// WithRename replaces os.Rename.
func WithRename(fn func(oldpath, newpath string) error) Option {
	return func(r *Relocator) { r.rename = fn }
}

// WithRemove replaces os.Remove used to delete the source after a fallback copy.
func WithRemove(fn func(string) error) Option { return func(r *Relocator) { r.remove = fn } }

// WithCopy replaces the fallback copy.
func WithCopy(fn func(src, dst string) error) Option { return func(r *Relocator) { r.copy = fn } }

// NewRelocator creates a relocator making up to retries rename attempts, waiting backoff between them.
func NewRelocator(retries int, backoff time.Duration, opts ...Option) *Relocator {
	if retries <= 0 {
		retries = DefaultRetries
	}
	if backoff < 0 {
		backoff = DefaultBackoff
	}
	r := &Relocator{
		retries: retries,
		backoff: backoff,
		sleep:   time.Sleep,
		stat:    os.Stat,
		rename:  os.Rename,
		remove:  os.Remove,
		copy:    CopyFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetHolder replaces the handle owner. Not safe for use during a Relocate call.
func (r *Relocator) SetHolder(h Releasable) {
	r.holder = h
}

// Relocate moves source to destination and returns the path the file ended up at.
// The destination's parent directory must exist and destination must already be
// free of collisions. Once started the call always runs to one of its outcomes;
// ctx is only checked before the first attempt.
func (r *Relocator) Relocate(ctx context.Context, source, destination string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RelocationError{Source: source, Destination: destination, Err: err}
	}

	var lastErr error
	attempts := 0
	for i := 1; i <= r.retries; i++ {
		if _, err := r.stat(source); err != nil {
			// Not visible yet, maybe a holder is still flushing it
			slog.DebugContext(ctx, "Source not ready, waiting", "source", source, "attempt", i)
			r.sleep(r.backoff)
			continue
		}

		attempts++
		err := r.rename(source, destination)
		if err == nil {
			slog.DebugContext(ctx, "File renamed", "source", source, "destination", destination, "attempt", i)
			r.notifyRelocated(MethodRename, attempts)
			return destination, nil
		}

		if !IsTransientAccess(err) {
			// Cross-device moves and the like won't get better by waiting
			slog.DebugContext(ctx, "Rename failed permanently, falling back to copy", "source", source, "error", err)
			lastErr = err
			break
		}

		lastErr = &TransientAccessError{Attempt: i, Err: err}
		slog.DebugContext(ctx, "Rename hit a transient failure", "source", source, "attempt", i, "error", err)
		r.releaseHolder(ctx)
		r.sleep(r.backoff)
	}

	return r.fallback(ctx, source, destination, lastErr, attempts)
}

func (r *Relocator) fallback(ctx context.Context, source, destination string, lastErr error, attempts int) (string, error) {
	slog.InfoContext(ctx, "Falling back to copy and delete", "source", source, "destination", destination, "attempts", attempts)

	if err := r.copy(source, destination); err != nil {
		cause := lastErr
		if cause == nil {
			cause = err
		}
		slog.ErrorContext(ctx, "Relocation failed", "source", source, "destination", destination, "error", cause, "copy_error", err)
		if r.observer != nil {
			r.observer.RelocationFailed()
		}
		return "", &RelocationError{Source: source, Destination: destination, Err: cause}
	}

	if err := r.remove(source); err != nil && !errors.Is(err, os.ErrNotExist) {
		warning := &OrphanCleanupWarning{Source: source, Err: err}
		slog.WarnContext(ctx, "Source left behind after copy", "warning", warning.Error())
		if r.observer != nil {
			r.observer.OrphanLeft()
		}
	}

	r.notifyRelocated(MethodCopy, attempts)
	return destination, nil
}

// releaseHolder asks the holder to let go of its handle. Failures, panics included, are only logged.
func (r *Relocator) releaseHolder(ctx context.Context) {
	if r.holder == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			slog.WarnContext(ctx, "Holder panicked while releasing", "panic", fmt.Sprint(rec))
		}
	}()
	if err := r.holder.Release(); err != nil {
		slog.WarnContext(ctx, "Holder failed to release file", "error", err)
	}
}

func (r *Relocator) notifyRelocated(method Method, attempts int) {
	if r.observer != nil {
		r.observer.Relocated(method, attempts)
	}
}
