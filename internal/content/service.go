// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content is the access layer for portfolio collections. It is an
// error boundary: list operations resolve failures to empty slices and the
// contact write resolves to a boolean, so callers above it never see a
// storage error. Only the by-ID lookups report failure, because detail pages
// must tell "not found" apart from "lookup failed".
package content

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// tagLookupLimit bounds concurrent per-parent tag lookups.
const tagLookupLimit = 8

// Service exposes the content collections to handlers.
type Service struct {
	queries *store.Queries
	logger  *slog.Logger
}

// New creates a content service.
func New(queries *store.Queries, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{queries: queries, logger: logger}
}

// Qualifications returns all qualifications in display order.
// Failures degrade to an empty slice.
func (s *Service) Qualifications(ctx context.Context) []model.Qualification {
	items, err := s.queries.ListQualifications(ctx)
	if err != nil {
		s.logger.Error("fetching qualifications failed",
			"category", model.EventCategoryContent, "error", err)
		return []model.Qualification{}
	}
	if items == nil {
		items = []model.Qualification{}
	}
	return items
}

// WorkExperience returns all work experience entries in display order.
// Failures degrade to an empty slice.
func (s *Service) WorkExperience(ctx context.Context) []model.WorkExperience {
	items, err := s.queries.ListWorkExperience(ctx)
	if err != nil {
		s.logger.Error("fetching work experience failed",
			"category", model.EventCategoryContent, "error", err)
		return []model.WorkExperience{}
	}
	if items == nil {
		items = []model.WorkExperience{}
	}
	return items
}

// CaseStudies returns all case studies in display order with tags attached.
// Failures degrade to an empty slice.
func (s *Service) CaseStudies(ctx context.Context) []model.CaseStudy {
	items, err := s.queries.ListCaseStudies(ctx)
	if err != nil {
		s.logger.Error("fetching case studies failed",
			"category", model.EventCategoryContent, "error", err)
		return []model.CaseStudy{}
	}

	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	tags := s.resolveTags(ctx, ids, s.queries.ListTagsForCaseStudy)
	for i := range items {
		items[i].Tags = tags[i]
	}
	if items == nil {
		items = []model.CaseStudy{}
	}
	return items
}

// CaseStudyByID returns one case study with tags attached. Returns (nil, nil)
// when no such row exists; an error only when the lookup itself failed.
func (s *Service) CaseStudyByID(ctx context.Context, id string) (*model.CaseStudy, error) {
	cs, err := s.queries.GetCaseStudyByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("fetching case study failed",
			"category", model.EventCategoryContent, "id", id, "error", err)
		return nil, err
	}

	tags := s.resolveTags(ctx, []string{cs.ID}, s.queries.ListTagsForCaseStudy)
	cs.Tags = tags[0]
	return &cs, nil
}

// BlogPosts returns all blog posts newest first with tags attached.
// Posts with no publish date sort after dated posts. Failures degrade to an
// empty slice.
func (s *Service) BlogPosts(ctx context.Context) []model.BlogPost {
	items, err := s.queries.ListBlogPosts(ctx)
	if err != nil {
		s.logger.Error("fetching blog posts failed",
			"category", model.EventCategoryContent, "error", err)
		return []model.BlogPost{}
	}

	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	tags := s.resolveTags(ctx, ids, s.queries.ListTagsForBlogPost)
	for i := range items {
		items[i].Tags = tags[i]
	}
	if items == nil {
		items = []model.BlogPost{}
	}
	return items
}

// BlogPostByID returns one blog post with tags attached. Returns (nil, nil)
// when no such row exists; an error only when the lookup itself failed.
func (s *Service) BlogPostByID(ctx context.Context, id string) (*model.BlogPost, error) {
	post, err := s.queries.GetBlogPostByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("fetching blog post failed",
			"category", model.EventCategoryContent, "id", id, "error", err)
		return nil, err
	}

	tags := s.resolveTags(ctx, []string{post.ID}, s.queries.ListTagsForBlogPost)
	post.Tags = tags[0]
	return &post, nil
}

// Tags returns all tags ordered by name. Failures degrade to an empty slice.
func (s *Service) Tags(ctx context.Context) []model.Tag {
	items, err := s.queries.ListTags(ctx)
	if err != nil {
		s.logger.Error("fetching tags failed",
			"category", model.EventCategoryContent, "error", err)
		return []model.Tag{}
	}
	if items == nil {
		items = []model.Tag{}
	}
	return items
}

// SubmitContact stores one contact form submission. Returns true on success;
// any failure resolves to false and is logged, never surfaced as an error.
func (s *Service) SubmitContact(ctx context.Context, name, email, subject, message string) bool {
	err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   util.NullStringFromValue(subject),
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("storing contact submission failed",
			"category", model.EventCategoryContact, "error", err)
		return false
	}

	s.logger.Info("contact submission received",
		"category", model.EventCategoryContact, "name", name)
	return true
}

// tagLookup fetches the tags joined to one parent row.
type tagLookup func(ctx context.Context, parentID string) ([]model.Tag, error)

// resolveTags runs one join-table lookup per parent id, concurrently, and
// returns the tag slices positionally. A parent with no join rows, or whose
// lookup fails, gets an empty slice, never nil; one lookup failing does not
// affect any other parent's result.
func (s *Service) resolveTags(ctx context.Context, ids []string, lookup tagLookup) [][]model.Tag {
	out := make([][]model.Tag, len(ids))
	if len(ids) == 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(tagLookupLimit)
	for i, id := range ids {
		g.Go(func() error {
			tags, err := lookup(ctx, id)
			if err != nil {
				s.logger.Error("resolving tags failed",
					"category", model.EventCategoryContent, "parent_id", id, "error", err)
				out[i] = []model.Tag{}
				return nil
			}
			if tags == nil {
				tags = []model.Tag{}
			}
			out[i] = tags
			return nil
		})
	}
	_ = g.Wait()
	return out
}
