// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package settings holds the per-section website settings as an immutable
// in-memory snapshot, reloaded wholesale whenever the website_settings
// collection changes.
package settings

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/notify"
	"github.com/olegiv/folio-go/internal/store"
)

// Collection is the notification topic for settings changes.
const Collection = "website_settings"

// Snapshot is one immutable, point-in-time view of all section settings.
// Consumers hold a snapshot for the duration of a request; a reload installs
// a new snapshot and never mutates a published one.
type Snapshot struct {
	Version  uint64
	Sections map[string]model.WebsiteSetting
	LoadedAt time.Time
}

// Section returns the settings row for a section, if configured.
func (s *Snapshot) Section(name string) (model.WebsiteSetting, bool) {
	ws, ok := s.Sections[name]
	return ws, ok
}

// Visible reports whether a section should render. An unconfigured section
// is visible by default; only an explicit false suppresses it.
func (s *Snapshot) Visible(name string) bool {
	ws, ok := s.Sections[name]
	if !ok {
		return true
	}
	return ws.IsVisible()
}

// Config holds store tuning knobs.
type Config struct {
	// DebounceInterval coalesces change messages arriving in a burst into a
	// single reload.
	DebounceInterval time.Duration
	// MaxWait bounds how long a reload can be deferred while messages keep
	// arriving.
	MaxWait time.Duration
}

// DefaultConfig returns the default debounce configuration.
func DefaultConfig() Config {
	return Config{
		DebounceInterval: 250 * time.Millisecond,
		MaxWait:          2 * time.Second,
	}
}

// Store loads and caches website settings. Reads are lock-free snapshot
// loads; writes happen only inside Load, guarded so that out of several
// concurrent loads only the most recently issued one installs its result.
type Store struct {
	queries *store.Queries
	bus     notify.Bus
	logger  *slog.Logger
	cfg     Config

	snap atomic.Pointer[Snapshot]
	seq  atomic.Uint64

	mu      sync.Mutex
	applied uint64
	lastErr error

	// debounce state for change messages
	dmu       sync.Mutex
	timer     *time.Timer
	firstSeen time.Time
}

// New creates a settings store. The store starts with an empty snapshot;
// call Load before serving, then Run to follow change notifications.
func New(queries *store.Queries, bus notify.Bus, logger *slog.Logger, cfg Config) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultConfig().DebounceInterval
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DefaultConfig().MaxWait
	}

	s := &Store{
		queries: queries,
		bus:     bus,
		logger:  logger,
		cfg:     cfg,
	}
	s.snap.Store(&Snapshot{Sections: map[string]model.WebsiteSetting{}})
	return s
}

// Snapshot returns the current settings snapshot. Never nil.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Err returns the error recorded by the most recent failed load, or nil.
// A failed load is not fatal: the store degrades to an empty snapshot and
// every section falls back to visible with default configuration.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load fetches all settings rows and installs them as a new snapshot.
// The whole map is replaced: sections missing from this load disappear.
// When loads overlap, only the latest-issued one wins; results of loads
// issued earlier are discarded even if they finish later.
func (s *Store) Load(ctx context.Context) error {
	issue := s.seq.Add(1)

	rows, err := s.queries.ListWebsiteSettings(ctx)

	sections := make(map[string]model.WebsiteSetting, len(rows))
	for _, row := range rows {
		sections[row.Section] = row
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if issue < s.applied {
		// A newer load already installed its result
		return nil
	}
	s.applied = issue

	if err != nil {
		s.lastErr = err
		s.snap.Store(&Snapshot{
			Version:  issue,
			Sections: map[string]model.WebsiteSetting{},
			LoadedAt: time.Now(),
		})
		s.logger.Error("loading website settings failed, serving defaults",
			"category", model.EventCategorySettings, "error", err)
		return err
	}

	s.lastErr = nil
	s.snap.Store(&Snapshot{
		Version:  issue,
		Sections: sections,
		LoadedAt: time.Now(),
	})
	s.logger.Debug("website settings loaded", "sections", len(sections), "version", issue)
	return nil
}

// Run subscribes to change notifications for the settings collection and
// reloads on every change until ctx is canceled. Reloads are debounced so a
// burst of row changes triggers a single reload. If the subscription channel
// drops it is not re-established (callers decide their own restart policy).
func (s *Store) Run(ctx context.Context) {
	ch, err := s.bus.Subscribe(ctx, Collection)
	if err != nil {
		s.logger.Error("subscribing to settings changes failed; live updates disabled",
			"category", model.EventCategorySettings, "error", err)
		return
	}
	s.logger.Info("watching website settings for changes")

	for {
		select {
		case <-ctx.Done():
			s.stopTimer()
			return
		case msg, ok := <-ch:
			if !ok {
				s.stopTimer()
				s.logger.Warn("settings change channel closed; live updates stopped",
					"category", model.EventCategorySettings)
				return
			}
			s.logger.Debug("settings change notification",
				"op", msg.Op, "id", msg.ID)
			s.scheduleReload(ctx)
		}
	}
}

// scheduleReload arms (or re-arms) the debounce timer for a full reload.
// The payload of the triggering message is irrelevant: any change means
// reload everything.
func (s *Store) scheduleReload(ctx context.Context) {
	s.dmu.Lock()
	defer s.dmu.Unlock()

	now := time.Now()
	if s.timer == nil {
		s.firstSeen = now
		s.timer = time.AfterFunc(s.cfg.DebounceInterval, func() { s.fireReload(ctx) })
		return
	}

	if now.Sub(s.firstSeen) >= s.cfg.MaxWait {
		// Messages keep arriving; reload now rather than deferring forever
		s.timer.Stop()
		s.timer = nil
		go s.fireReload(ctx)
		return
	}

	s.timer.Reset(s.cfg.DebounceInterval)
}

// fireReload performs the debounced reload.
func (s *Store) fireReload(ctx context.Context) {
	s.dmu.Lock()
	s.timer = nil
	s.dmu.Unlock()

	if ctx.Err() != nil {
		return
	}
	_ = s.Load(ctx)
}

// stopTimer cancels any pending debounced reload.
func (s *Store) stopTimer() {
	s.dmu.Lock()
	defer s.dmu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
