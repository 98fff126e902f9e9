// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio-go/internal/store"
)

// Scheduler handles scheduled maintenance like event log retention.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	logger    *slog.Logger
	retention time.Duration
}

// New creates a new scheduler instance. retentionDays bounds how long event
// log entries are kept.
func New(db *sql.DB, logger *slog.Logger, retentionDays int) *Scheduler {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &Scheduler{
		db:        db,
		cron:      cron.New(),
		logger:    logger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start begins the scheduler with a nightly event log retention job.
func (s *Scheduler) Start() error {
	// Run daily at 03:10
	_, err := s.cron.AddFunc("10 3 * * *", func() {
		if err := s.pruneEvents(); err != nil {
			s.logger.Error("failed to prune event log", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneEvents deletes event log entries older than the retention window.
func (s *Scheduler) pruneEvents() error {
	ctx := context.Background()
	queries := store.New(s.db)

	cutoff := time.Now().Add(-s.retention)
	deleted, err := queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("pruned event log", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}
