// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/util"
)

// Seed creates the default per-section settings rows if none exist.
// Sections left unseeded still render with built-in defaults, but seeding
// them makes the admin settings editor populated from the start.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	existing, err := queries.ListWebsiteSettings(ctx)
	if err != nil {
		return fmt.Errorf("checking website settings: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("website settings already present, skipping seed", "sections", len(existing))
		return nil
	}

	now := time.Now()
	defaults := []struct {
		section  string
		order    int64
		settings string
	}{
		{model.SectionNavbar, 0, `{"brand":"Portfolio"}`},
		{model.SectionHero, 1, `{"title":"Psychology. Design. Code.","subtitle":"Creating thoughtful digital experiences that merge psychological insights with elegant design and efficient code.","cta_label":"Discover More"}`},
		{model.SectionAbout, 2, `{"title":"About Me"}`},
		{model.SectionContent, 3, `{"title":"My Work"}`},
		{model.SectionContact, 4, `{"title":"Get In Touch","show_resume":true}`},
		{model.SectionFooter, 5, `{}`},
	}

	for _, d := range defaults {
		err := queries.UpsertWebsiteSetting(ctx, UpsertWebsiteSettingParams{
			ID:         uuid.NewString(),
			Section:    d.section,
			Visible:    sql.NullBool{Bool: true, Valid: true},
			OrderIndex: util.NullInt64FromValue(d.order),
			Settings:   util.NullStringFromValue(d.settings),
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("seeding settings for section %q: %w", d.section, err)
		}
	}

	slog.Info("seeded default website settings", "sections", len(defaults))
	return nil
}

// SeedDemo populates sample portfolio content when enabled and the content
// tables are empty. Intended for local development and demos.
func SeedDemo(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	count, err := queries.CountCaseStudies(ctx)
	if err != nil {
		return fmt.Errorf("checking case studies: %w", err)
	}
	if count > 0 {
		slog.Info("content already present, skipping demo seed")
		return nil
	}

	now := time.Now()

	quals := []CreateQualificationParams{
		{
			Title:       "Master's in Psychology",
			Institution: "University of Psychology",
			Year:        "2018",
			Description: util.NullStringFromValue("Specialized in cognitive psychology and user behavior analysis."),
		},
		{
			Title:       "UX Design Certification",
			Institution: "Design Institute",
			Year:        "2019",
			Description: util.NullStringFromValue("Focused on user-centered design methodologies and practices."),
		},
		{
			Title:       "Full-Stack Development Bootcamp",
			Institution: "Tech Academy",
			Year:        "2020",
			Description: util.NullStringFromValue("Intensive training in modern web development technologies and practices."),
		},
	}
	for i, arg := range quals {
		arg.ID = uuid.NewString()
		arg.OrderIndex = util.NullInt64FromValue(int64(i))
		arg.CreatedAt = now
		arg.UpdatedAt = now
		if err := queries.CreateQualification(ctx, arg); err != nil {
			return fmt.Errorf("seeding qualification: %w", err)
		}
	}

	work := []CreateWorkExperienceParams{
		{
			Title:       "Senior UX Engineer",
			Company:     "Studio North",
			Period:      "2022 - Present",
			Description: util.NullStringFromValue("Leading design-system and accessibility work across client projects."),
		},
		{
			Title:       "Product Designer",
			Company:     "Bright Labs",
			Period:      "2020 - 2022",
			Description: util.NullStringFromValue("Research-driven product design for early-stage startups."),
		},
	}
	for i, arg := range work {
		arg.ID = uuid.NewString()
		arg.OrderIndex = util.NullInt64FromValue(int64(i))
		arg.CreatedAt = now
		arg.UpdatedAt = now
		if err := queries.CreateWorkExperience(ctx, arg); err != nil {
			return fmt.Errorf("seeding work experience: %w", err)
		}
	}

	tagNames := []string{"UX Research", "Design Systems", "Go"}
	tagIDs := make(map[string]string, len(tagNames))
	for _, name := range tagNames {
		id := uuid.NewString()
		if err := queries.CreateTag(ctx, id, name, now); err != nil {
			return fmt.Errorf("seeding tag %q: %w", name, err)
		}
		tagIDs[name] = id
	}

	csID := uuid.NewString()
	err = queries.CreateCaseStudy(ctx, CreateCaseStudyParams{
		ID:          csID,
		Title:       "Rethinking Onboarding",
		Category:    "Product Design",
		Description: util.NullStringFromValue("A behavioral redesign of a SaaS onboarding flow."),
		Content:     util.NullStringFromValue("## The problem\n\nDrop-off at step two was above 60%.\n\n## The approach\n\nWe mapped the flow against cognitive-load principles and cut it to three steps."),
		Featured:    sql.NullBool{Bool: true, Valid: true},
		OrderIndex:  util.NullInt64FromValue(0),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("seeding case study: %w", err)
	}
	for _, name := range []string{"UX Research", "Design Systems"} {
		if err := queries.AddCaseStudyTag(ctx, csID, tagIDs[name]); err != nil {
			return fmt.Errorf("linking case study tag: %w", err)
		}
	}

	postID := uuid.NewString()
	err = queries.CreateBlogPost(ctx, CreateBlogPostParams{
		ID:          postID,
		Title:       "Why defaults matter",
		PublishDate: sql.NullTime{Time: now.AddDate(0, 0, -7), Valid: true},
		Summary:     util.NullStringFromValue("Small default choices shape user behavior more than features do."),
		Content:     util.NullStringFromValue("Defaults are the most powerful design decision you will ever ship.\n\nMost users never change them."),
		Featured:    sql.NullBool{Bool: true, Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("seeding blog post: %w", err)
	}
	if err := queries.AddBlogPostTag(ctx, postID, tagIDs["UX Research"]); err != nil {
		return fmt.Errorf("linking blog post tag: %w", err)
	}

	slog.Info("seeded demo content")
	return nil
}
