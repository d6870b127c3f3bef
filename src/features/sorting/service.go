package sorting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/sound"
	"github.com/google/uuid"
)

var (
	ErrNoCurrentSound  = errors.New("no sound loaded")
	ErrUnknownCategory = errors.New("unknown category")
)

// UndoResult tells where an undone file went back to and whether it is queued again.
type UndoResult struct {
	Record       RelocationRecord `json:"record"`
	RestoredPath string           `json:"restored_path"`
	Tracked      bool             `json:"tracked"`
}

// Service runs a sorting session. Every operation holds the session lock until it
// completes, so the terminal UI, the HTTP API and the watcher never interleave.
type Service struct {
	mu        sync.Mutex
	cfg       *config.Manager
	organizer Organizer
	relocator Relocator
	player    Player
	tags      TagReader
	journal   Journal
	observer  Observer
	filter    sound.ExtensionFilter
	shuffle   func([]string)
	now       func() time.Time

	catalog *Catalog
	history *History
	state   State
}

// Option configures the sorting service.
type Option func(*Service)

// WithJournal enables the audit journal.
func WithJournal(j Journal) Option { return func(s *Service) { s.journal = j } }

// WithObserver registers an operation observer.
func WithObserver(o Observer) Option { return func(s *Service) { s.observer = o } }

// WithShuffle replaces the shuffling applied when sort.shuffle is on.
func WithShuffle(fn func([]string)) Option { return func(s *Service) { s.shuffle = fn } }

// WithFilter overrides the extension filter built from sort.extensions.
func WithFilter(f sound.ExtensionFilter) Option { return func(s *Service) { s.filter = f } }

// NewService creates a new sorting service. Call Start before anything else.
func NewService(cfg *config.Manager, organizer Organizer, relocator Relocator, player Player, tags TagReader, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		organizer: organizer,
		relocator: relocator,
		player:    player,
		tags:      tags,
		filter:    sound.NewExtensionFilter(cfg.Get().Sort.Extensions...),
		shuffle: func(paths []string) {
			rand.Shuffle(len(paths), func(i, j int) { paths[i], paths[j] = paths[j], paths[i] })
		},
		now:     time.Now,
		catalog: NewCatalog(nil),
		history: NewHistory(),
		state:   State{Index: -1},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start prepares the category folders, builds the catalog from the source folder and loads the first sound.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sortCfg := s.cfg.Get().Sort
	for _, cat := range sortCfg.Categories {
		if _, err := s.organizer.CategoryDir(cat.Folder); err != nil {
			return fmt.Errorf("failed to prepare category %s: %w", cat.Folder, err)
		}
	}

	paths, err := s.organizer.ListSounds(ctx, s.filter)
	if err != nil {
		return fmt.Errorf("failed to list sounds: %w", err)
	}
	if sortCfg.Shuffle {
		s.shuffle(paths)
	}

	s.catalog = NewCatalog(paths)
	s.history = NewHistory()
	s.state = State{Index: -1}
	slog.InfoContext(ctx, "Sorting session started", "source", sortCfg.SourceDir, "sounds", len(paths), "shuffle", sortCfg.Shuffle)

	s.advance(ctx)
	return nil
}

// Next skips the current sound and loads the following one, wrapping around at the end.
func (s *Service) Next(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hadCurrent := s.state.Current != ""
	s.advance(ctx)
	if hadCurrent && s.observer != nil {
		s.observer.Skipped()
	}
}

// Categorize moves the current sound into the folder bound to key and loads the next one.
// On failure the sound stays current and neither the catalog nor the history change.
func (s *Service) Categorize(ctx context.Context, key string) (*RelocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current == "" {
		return nil, ErrNoCurrentSound
	}
	cat, ok := s.cfg.Get().Sort.Categories.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}

	dir, err := s.organizer.CategoryDir(cat.Folder)
	if err != nil {
		s.state.LastError = err.Error()
		return nil, err
	}

	src := s.state.Current
	dest := UniqueDestination(s.organizer.Exists, dir, filepath.Base(src))

	s.player.Stop()
	s.release(ctx)
	s.state.Paused = false

	resolved, err := s.relocator.Relocate(ctx, src, dest)
	if err != nil {
		s.state.LastError = err.Error()
		slog.ErrorContext(ctx, "Failed to categorize sound", "source", src, "category", cat.Folder, "error", err)
		return nil, fmt.Errorf("failed to move %s: %w", filepath.Base(src), err)
	}

	rec := RelocationRecord{
		ID:                  uuid.NewString(),
		ResolvedDestination: resolved,
		OriginalSource:      src,
		Category:            cat.Folder,
		At:                  s.now(),
	}
	s.history.Record(rec)
	if _, err := s.catalog.RemoveAt(s.state.Index); err != nil {
		// Can't happen while Current is set, Index always points at it
		slog.ErrorContext(ctx, "Catalog out of sync", "index", s.state.Index, "error", err)
	}
	s.state.LastError = ""
	s.appendJournal(ctx, JournalEntry{RecordID: rec.ID, Action: ActionMove, Source: src, Destination: resolved, Category: cat.Folder})
	if s.observer != nil {
		s.observer.Categorized(cat.Folder)
	}
	slog.InfoContext(ctx, "Sound categorized", "sound", filepath.Base(src), "category", cat.Folder, "destination", resolved)

	// The following sound slid into the freed position
	if s.catalog.Len() == 0 {
		s.clearCurrent()
		return &rec, nil
	}
	idx := s.state.Index
	if idx >= s.catalog.Len() {
		idx = 0
	}
	s.load(ctx, idx)
	return &rec, nil
}

// Undo moves the most recently categorized sound back. It returns nil, nil when there is nothing to undo.
// The record is consumed even when moving the file back fails.
func (s *Service) Undo(ctx context.Context) (*UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.history.Pop()
	if !ok {
		return nil, nil
	}

	s.player.Stop()
	s.release(ctx)
	s.state.Paused = false

	restore := RestoreDestination(s.organizer.Exists, rec.OriginalSource)
	restored, err := s.relocator.Relocate(ctx, rec.ResolvedDestination, restore)
	if err != nil {
		s.state.LastError = err.Error()
		slog.ErrorContext(ctx, "Failed to undo", "record", rec.ID, "from", rec.ResolvedDestination, "error", err)
		return nil, fmt.Errorf("failed to undo %s: %w", filepath.Base(rec.OriginalSource), err)
	}

	s.state.LastError = ""
	s.appendJournal(ctx, JournalEntry{RecordID: rec.ID, Action: ActionUndo, Source: rec.ResolvedDestination, Destination: restored, Category: rec.Category})
	if s.observer != nil {
		s.observer.Undone()
	}
	slog.InfoContext(ctx, "Undo done", "restored", restored, "category", rec.Category)

	result := &UndoResult{Record: rec, RestoredPath: restored}
	if !s.filter.Accepts(restored) {
		slog.InfoContext(ctx, "Restored file is filtered out, not queuing it again", "path", restored)
		return result, nil
	}

	idx := s.state.Index
	if idx < 0 {
		idx = 0
	}
	if idx > s.catalog.Len() {
		idx = s.catalog.Len()
	}
	if err := s.catalog.InsertAt(idx, restored); err != nil {
		slog.ErrorContext(ctx, "Failed to queue restored sound", "path", restored, "error", err)
		return result, nil
	}
	result.Tracked = true
	s.load(ctx, idx)
	return result, nil
}

// Replay plays the current sound from the start.
func (s *Service) Replay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current == "" {
		return ErrNoCurrentSound
	}
	s.load(ctx, s.state.Index)
	return nil
}

// TogglePause pauses or resumes the current sound and returns whether it is now paused.
// A sound that already played to the end starts over.
func (s *Service) TogglePause(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current == "" {
		return false, ErrNoCurrentSound
	}
	if !s.state.Paused && !s.player.Busy() {
		s.load(ctx, s.state.Index)
		return false, nil
	}
	paused, err := s.player.TogglePause()
	if err != nil {
		slog.WarnContext(ctx, "Failed to toggle pause", "error", err)
		return s.state.Paused, err
	}
	s.state.Paused = paused
	return paused, nil
}

// Add queues a file that appeared in the source folder while sorting.
// It reports whether the file was queued.
func (s *Service) Add(ctx context.Context, path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.filter.Accepts(path) || s.catalog.Contains(path) || !s.organizer.Exists(path) {
		return false
	}
	s.catalog.Append(path)
	slog.InfoContext(ctx, "New sound queued", "path", path, "remaining", s.catalog.Len())
	if s.state.Current == "" {
		s.load(ctx, s.catalog.Len()-1)
	}
	return true
}

// Status returns a snapshot of the session.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg.Get().Sort
	st := Status{
		Index:      s.state.Index,
		Processed:  s.history.Len(),
		Remaining:  s.catalog.Len(),
		Total:      s.history.Len() + s.catalog.Len(),
		Paused:     s.state.Paused,
		Done:       s.state.Current == "" && s.catalog.Len() == 0,
		CanUndo:    s.history.Len() > 0,
		LastError:  s.state.LastError,
		SourceDir:  cfg.SourceDir,
		Categories: cfg.Categories,
	}
	if s.state.Current != "" {
		snd := *s.state.sound
		st.Current = &snd
		st.Playing = s.player.Busy() && !s.state.Paused
	}
	return st
}

// CurrentPath returns the path of the loaded sound.
func (s *Service) CurrentPath() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Current, s.state.Current != ""
}

// Close stops playback and releases the player.
func (s *Service) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Stop()
	s.release(ctx)
}

func (s *Service) advance(ctx context.Context) {
	s.player.Stop()
	s.release(ctx)
	if s.catalog.Len() == 0 {
		s.clearCurrent()
		return
	}
	idx := s.state.Index + 1
	if idx >= s.catalog.Len() {
		idx = 0
	}
	s.load(ctx, idx)
}

func (s *Service) load(ctx context.Context, idx int) {
	path, ok := s.catalog.At(idx)
	if !ok {
		s.clearCurrent()
		return
	}
	s.player.Stop()
	s.state.Index = idx
	s.state.Current = path
	s.state.Paused = false
	s.state.sound = s.readSound(ctx, path)

	if err := s.player.Play(path); err != nil {
		s.state.LastError = fmt.Sprintf("playback failed: %v", err)
		slog.WarnContext(ctx, "Failed to play sound", "path", path, "error", err)
		return
	}
	slog.DebugContext(ctx, "Playing sound", "path", path, "index", idx)
}

func (s *Service) readSound(ctx context.Context, path string) *sound.Sound {
	fallback := sound.FromPath(path)
	if s.tags == nil {
		return &fallback
	}
	snd, err := s.tags.ReadSound(ctx, path)
	if err != nil || snd == nil {
		slog.DebugContext(ctx, "No tags for sound", "path", path, "error", err)
		return &fallback
	}
	return snd
}

func (s *Service) clearCurrent() {
	s.state.Current = ""
	s.state.Paused = false
	s.state.sound = nil
}

func (s *Service) release(ctx context.Context) {
	if err := s.player.Release(); err != nil {
		slog.WarnContext(ctx, "Player did not release the file", "error", err)
	}
}

func (s *Service) appendJournal(ctx context.Context, entry JournalEntry) {
	if s.journal == nil {
		return
	}
	entry.ID = uuid.NewString()
	entry.At = s.now()
	if err := s.journal.Append(ctx, entry); err != nil {
		slog.WarnContext(ctx, "Failed to write journal entry", "action", entry.Action, "error", err)
	}
}

// Journal returns the latest journal entries, or nil when the journal is off.
func (s *Service) Journal(ctx context.Context, limit int) ([]JournalEntry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.List(ctx, limit)
}

func formatProgress(processed, remaining int) string {
	return fmt.Sprintf("%d of %d processed | %d left", processed, processed+remaining, remaining)
}
