// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// Sibling ordering follows order_index ascending with NULLs sorted last;
// blog posts order by publish_date descending, NULL dates last.

const listQualifications = `
SELECT id, title, institution, year, description, order_index, created_at, updated_at
FROM qualifications
ORDER BY order_index IS NULL, order_index ASC, created_at ASC`

// ListQualifications returns all qualifications in display order.
func (q *Queries) ListQualifications(ctx context.Context) ([]model.Qualification, error) {
	rows, err := q.db.QueryContext(ctx, listQualifications)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Qualification
	for rows.Next() {
		var i model.Qualification
		if err := rows.Scan(&i.ID, &i.Title, &i.Institution, &i.Year,
			&i.Description, &i.OrderIndex, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// CreateQualificationParams holds the fields for CreateQualification.
type CreateQualificationParams struct {
	ID          string
	Title       string
	Institution string
	Year        string
	Description sql.NullString
	OrderIndex  sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createQualification = `
INSERT INTO qualifications (id, title, institution, year, description, order_index, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// CreateQualification inserts a qualification row.
func (q *Queries) CreateQualification(ctx context.Context, arg CreateQualificationParams) error {
	_, err := q.db.ExecContext(ctx, createQualification,
		arg.ID, arg.Title, arg.Institution, arg.Year,
		arg.Description, arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const listWorkExperience = `
SELECT id, title, company, period, description, order_index, created_at, updated_at
FROM work_experience
ORDER BY order_index IS NULL, order_index ASC, created_at ASC`

// ListWorkExperience returns all work experience entries in display order.
func (q *Queries) ListWorkExperience(ctx context.Context) ([]model.WorkExperience, error) {
	rows, err := q.db.QueryContext(ctx, listWorkExperience)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.WorkExperience
	for rows.Next() {
		var i model.WorkExperience
		if err := rows.Scan(&i.ID, &i.Title, &i.Company, &i.Period,
			&i.Description, &i.OrderIndex, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// CreateWorkExperienceParams holds the fields for CreateWorkExperience.
type CreateWorkExperienceParams struct {
	ID          string
	Title       string
	Company     string
	Period      string
	Description sql.NullString
	OrderIndex  sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createWorkExperience = `
INSERT INTO work_experience (id, title, company, period, description, order_index, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// CreateWorkExperience inserts a work experience row.
func (q *Queries) CreateWorkExperience(ctx context.Context, arg CreateWorkExperienceParams) error {
	_, err := q.db.ExecContext(ctx, createWorkExperience,
		arg.ID, arg.Title, arg.Company, arg.Period,
		arg.Description, arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const listCaseStudies = `
SELECT id, title, category, description, content, image_url, featured, order_index, created_at, updated_at
FROM case_studies
ORDER BY order_index IS NULL, order_index ASC, created_at ASC`

// ListCaseStudies returns all case studies in display order, without tags.
func (q *Queries) ListCaseStudies(ctx context.Context) ([]model.CaseStudy, error) {
	rows, err := q.db.QueryContext(ctx, listCaseStudies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CaseStudy
	for rows.Next() {
		var i model.CaseStudy
		if err := rows.Scan(&i.ID, &i.Title, &i.Category, &i.Description, &i.Content,
			&i.ImageURL, &i.Featured, &i.OrderIndex, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getCaseStudyByID = `
SELECT id, title, category, description, content, image_url, featured, order_index, created_at, updated_at
FROM case_studies
WHERE id = ?`

// GetCaseStudyByID returns one case study, without tags.
// Returns sql.ErrNoRows when no such row exists.
func (q *Queries) GetCaseStudyByID(ctx context.Context, id string) (model.CaseStudy, error) {
	var i model.CaseStudy
	err := q.db.QueryRowContext(ctx, getCaseStudyByID, id).Scan(
		&i.ID, &i.Title, &i.Category, &i.Description, &i.Content,
		&i.ImageURL, &i.Featured, &i.OrderIndex, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// CreateCaseStudyParams holds the fields for CreateCaseStudy.
type CreateCaseStudyParams struct {
	ID          string
	Title       string
	Category    string
	Description sql.NullString
	Content     sql.NullString
	ImageURL    sql.NullString
	Featured    sql.NullBool
	OrderIndex  sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createCaseStudy = `
INSERT INTO case_studies (id, title, category, description, content, image_url, featured, order_index, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateCaseStudy inserts a case study row.
func (q *Queries) CreateCaseStudy(ctx context.Context, arg CreateCaseStudyParams) error {
	_, err := q.db.ExecContext(ctx, createCaseStudy,
		arg.ID, arg.Title, arg.Category, arg.Description, arg.Content,
		arg.ImageURL, arg.Featured, arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const listBlogPosts = `
SELECT id, title, publish_date, summary, content, image_url, featured, order_index, created_at, updated_at
FROM blog_posts
ORDER BY publish_date IS NULL, publish_date DESC, created_at DESC`

// ListBlogPosts returns all blog posts newest first, without tags.
// Posts with no publish date sort after dated posts.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listBlogPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.BlogPost
	for rows.Next() {
		var i model.BlogPost
		if err := rows.Scan(&i.ID, &i.Title, &i.PublishDate, &i.Summary, &i.Content,
			&i.ImageURL, &i.Featured, &i.OrderIndex, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getBlogPostByID = `
SELECT id, title, publish_date, summary, content, image_url, featured, order_index, created_at, updated_at
FROM blog_posts
WHERE id = ?`

// GetBlogPostByID returns one blog post, without tags.
// Returns sql.ErrNoRows when no such row exists.
func (q *Queries) GetBlogPostByID(ctx context.Context, id string) (model.BlogPost, error) {
	var i model.BlogPost
	err := q.db.QueryRowContext(ctx, getBlogPostByID, id).Scan(
		&i.ID, &i.Title, &i.PublishDate, &i.Summary, &i.Content,
		&i.ImageURL, &i.Featured, &i.OrderIndex, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// CreateBlogPostParams holds the fields for CreateBlogPost.
type CreateBlogPostParams struct {
	ID          string
	Title       string
	PublishDate sql.NullTime
	Summary     sql.NullString
	Content     sql.NullString
	ImageURL    sql.NullString
	Featured    sql.NullBool
	OrderIndex  sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createBlogPost = `
INSERT INTO blog_posts (id, title, publish_date, summary, content, image_url, featured, order_index, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateBlogPost inserts a blog post row.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) error {
	_, err := q.db.ExecContext(ctx, createBlogPost,
		arg.ID, arg.Title, arg.PublishDate, arg.Summary, arg.Content,
		arg.ImageURL, arg.Featured, arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const listTags = `
SELECT id, name, created_at
FROM tags
ORDER BY name ASC`

// ListTags returns all tags ordered by name.
func (q *Queries) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Tag
	for rows.Next() {
		var i model.Tag
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listTagsForCaseStudy = `
SELECT t.id, t.name, t.created_at
FROM tags t
JOIN case_study_tags cst ON cst.tag_id = t.id
WHERE cst.case_study_id = ?
ORDER BY t.name ASC`

// ListTagsForCaseStudy returns the tags joined to one case study.
func (q *Queries) ListTagsForCaseStudy(ctx context.Context, caseStudyID string) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTagsForCaseStudy, caseStudyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Tag
	for rows.Next() {
		var i model.Tag
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listTagsForBlogPost = `
SELECT t.id, t.name, t.created_at
FROM tags t
JOIN blog_post_tags bpt ON bpt.tag_id = t.id
WHERE bpt.blog_post_id = ?
ORDER BY t.name ASC`

// ListTagsForBlogPost returns the tags joined to one blog post.
func (q *Queries) ListTagsForBlogPost(ctx context.Context, blogPostID string) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTagsForBlogPost, blogPostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Tag
	for rows.Next() {
		var i model.Tag
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createTag = `
INSERT INTO tags (id, name, created_at)
VALUES (?, ?, ?)`

// CreateTag inserts a tag row.
func (q *Queries) CreateTag(ctx context.Context, id, name string, createdAt time.Time) error {
	_, err := q.db.ExecContext(ctx, createTag, id, name, createdAt)
	return err
}

const addCaseStudyTag = `
INSERT OR IGNORE INTO case_study_tags (case_study_id, tag_id)
VALUES (?, ?)`

// AddCaseStudyTag links a tag to a case study.
func (q *Queries) AddCaseStudyTag(ctx context.Context, caseStudyID, tagID string) error {
	_, err := q.db.ExecContext(ctx, addCaseStudyTag, caseStudyID, tagID)
	return err
}

const addBlogPostTag = `
INSERT OR IGNORE INTO blog_post_tags (blog_post_id, tag_id)
VALUES (?, ?)`

// AddBlogPostTag links a tag to a blog post.
func (q *Queries) AddBlogPostTag(ctx context.Context, blogPostID, tagID string) error {
	_, err := q.db.ExecContext(ctx, addBlogPostTag, blogPostID, tagID)
	return err
}

// CountQualifications returns the number of qualification rows.
func (q *Queries) CountQualifications(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM qualifications`).Scan(&n)
	return n, err
}

// CountWorkExperience returns the number of work experience rows.
func (q *Queries) CountWorkExperience(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_experience`).Scan(&n)
	return n, err
}

// CountCaseStudies returns the number of case study rows.
func (q *Queries) CountCaseStudies(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM case_studies`).Scan(&n)
	return n, err
}

// CountBlogPosts returns the number of blog post rows.
func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&n)
	return n, err
}
