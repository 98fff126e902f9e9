// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"database/sql"
	"time"
)

// Qualification represents an education or certification entry.
type Qualification struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Institution string         `json:"institution"`
	Year        string         `json:"year"`
	Description sql.NullString `json:"description,omitempty"`
	OrderIndex  sql.NullInt64  `json:"order_index,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// WorkExperience represents a professional experience entry.
type WorkExperience struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Company     string         `json:"company"`
	Period      string         `json:"period"`
	Description sql.NullString `json:"description,omitempty"`
	OrderIndex  sql.NullInt64  `json:"order_index,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CaseStudy represents a portfolio work sample. Tags are resolved separately
// from the case_study_tags join table and attached by the content service.
type CaseStudy struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Description sql.NullString `json:"description,omitempty"`
	Content     sql.NullString `json:"content,omitempty"`
	ImageURL    sql.NullString `json:"image_url,omitempty"`
	Featured    sql.NullBool   `json:"featured,omitempty"`
	OrderIndex  sql.NullInt64  `json:"order_index,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tags        []Tag          `json:"tags"`
}

// BlogPost represents a blog entry. Tags are resolved separately from the
// blog_post_tags join table and attached by the content service.
type BlogPost struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	PublishDate sql.NullTime   `json:"publish_date,omitempty"`
	Summary     sql.NullString `json:"summary,omitempty"`
	Content     sql.NullString `json:"content,omitempty"`
	ImageURL    sql.NullString `json:"image_url,omitempty"`
	Featured    sql.NullBool   `json:"featured,omitempty"`
	OrderIndex  sql.NullInt64  `json:"order_index,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tags        []Tag          `json:"tags"`
}

// IsPublished reports whether the post's publish date has passed.
// A post without a publish date is treated as published.
func (p *BlogPost) IsPublished() bool {
	return !p.PublishDate.Valid || !p.PublishDate.Time.After(time.Now())
}

// Tag is a label attached to case studies and blog posts through join tables.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactSubmission represents one message sent through the public contact form.
// The public site only ever appends these; the read flag belongs to the admin side.
type ContactSubmission struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Subject   sql.NullString `json:"subject,omitempty"`
	Message   string         `json:"message"`
	Read      sql.NullBool   `json:"read,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// IsRead reports whether the submission has been marked as read.
func (c *ContactSubmission) IsRead() bool {
	return c.Read.Valid && c.Read.Bool
}
