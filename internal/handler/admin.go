// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/content"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/notify"
	"github.com/olegiv/folio-go/internal/render"
	"github.com/olegiv/folio-go/internal/settings"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

const submissionsPageSize = 50

// Dashboard tabs. Unknown tab values fall back to the overview.
var adminTabs = map[string]bool{
	"overview":    true,
	"content":     true,
	"submissions": true,
	"settings":    true,
}

// Sections editable through the dashboard, in display order.
var editableSections = []string{
	model.SectionNavbar,
	model.SectionHero,
	model.SectionAbout,
	model.SectionContent,
	model.SectionContact,
	model.SectionFooter,
}

// AdminHandler serves the management dashboard.
type AdminHandler struct {
	queries  *store.Queries
	svc      *content.Service
	settings *settings.Store
	bus      notify.Bus
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(queries *store.Queries, svc *content.Service, st *settings.Store, bus notify.Bus, renderer *render.Renderer, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		queries:  queries,
		svc:      svc,
		settings: st,
		bus:      bus,
		renderer: renderer,
		logger:   logger,
	}
}

// CollectionCounts summarizes the content collections for the overview tab.
type CollectionCounts struct {
	Qualifications int64
	WorkExperience int64
	CaseStudies    int64
	BlogPosts      int64
	Submissions    int64
	Unread         int64
}

// SettingRow pairs a section name with its stored row, if any.
type SettingRow struct {
	Section    string
	Configured bool
	Visible    sql.NullBool
	OrderIndex sql.NullInt64
	Settings   string
	UpdatedAt  time.Time
}

// DashboardPage is the render model for the admin dashboard.
type DashboardPage struct {
	Tab            string
	Counts         CollectionCounts
	RecentEvents   []model.Event
	Qualifications []model.Qualification
	WorkExperience []model.WorkExperience
	CaseStudies    []model.CaseStudy
	BlogPosts      []model.BlogPost
	Tags           []model.Tag
	Submissions    []model.ContactSubmission
	Settings       []SettingRow
	SettingsErr    error
}

// Dashboard renders the tabbed admin dashboard. Each tab loads only its own
// data.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := r.URL.Query().Get("tab")
	if !adminTabs[tab] {
		tab = "overview"
	}
	page := DashboardPage{Tab: tab}

	var err error
	switch tab {
	case "overview":
		err = h.loadOverview(r, &page)
	case "content":
		page.Qualifications = h.svc.Qualifications(ctx)
		page.WorkExperience = h.svc.WorkExperience(ctx)
		page.CaseStudies = h.svc.CaseStudies(ctx)
		page.BlogPosts = h.svc.BlogPosts(ctx)
		page.Tags = h.svc.Tags(ctx)
	case "submissions":
		page.Submissions, err = h.queries.ListContactSubmissions(ctx, submissionsPageSize)
	case "settings":
		h.loadSettings(&page)
	}
	if err != nil {
		h.logger.Error("loading dashboard data", "tab", tab, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  page,
	}); err != nil {
		h.logger.Error("rendering dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AdminHandler) loadOverview(r *http.Request, page *DashboardPage) error {
	ctx := r.Context()
	var err error
	if page.Counts.Qualifications, err = h.queries.CountQualifications(ctx); err != nil {
		return err
	}
	if page.Counts.WorkExperience, err = h.queries.CountWorkExperience(ctx); err != nil {
		return err
	}
	if page.Counts.CaseStudies, err = h.queries.CountCaseStudies(ctx); err != nil {
		return err
	}
	if page.Counts.BlogPosts, err = h.queries.CountBlogPosts(ctx); err != nil {
		return err
	}
	if page.Counts.Submissions, err = h.queries.CountContactSubmissions(ctx); err != nil {
		return err
	}
	if page.Counts.Unread, err = h.queries.CountUnreadContactSubmissions(ctx); err != nil {
		return err
	}
	page.RecentEvents, err = h.queries.ListRecentEvents(ctx, 20)
	return err
}

func (h *AdminHandler) loadSettings(page *DashboardPage) {
	snap := h.settings.Snapshot()
	page.SettingsErr = h.settings.Err()
	for _, section := range editableSections {
		row := SettingRow{Section: section}
		if ws, ok := snap.Section(section); ok {
			row.Configured = true
			row.Visible = ws.Visible
			row.OrderIndex = ws.OrderIndex
			row.Settings = string(ws.Settings)
			row.UpdatedAt = ws.UpdatedAt
		}
		page.Settings = append(page.Settings, row)
	}
}

// MarkSubmissionRead marks one contact submission as read.
func (h *AdminHandler) MarkSubmissionRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queries.MarkContactSubmissionRead(r.Context(), id); err != nil {
		h.logger.Error("marking submission read", "id", id, "error", err)
		h.renderer.SetFlash(r, "Failed to update submission.", "danger")
	} else {
		h.renderer.SetFlash(r, "Submission marked as read.", "success")
	}
	http.Redirect(w, r, "/admin?tab=submissions", http.StatusSeeOther)
}

// UpdateSetting upserts one section's settings row and publishes a change
// notification so the frontend snapshot reloads.
func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if !isEditableSection(section) {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form submission.", "danger")
		http.Redirect(w, r, "/admin?tab=settings", http.StatusSeeOther)
		return
	}

	payload := strings.TrimSpace(r.FormValue("settings"))
	if payload != "" && !json.Valid([]byte(payload)) {
		h.renderer.SetFlash(r, "Settings must be valid JSON.", "danger")
		http.Redirect(w, r, "/admin?tab=settings", http.StatusSeeOther)
		return
	}

	arg := store.UpsertWebsiteSettingParams{
		ID:         uuid.NewString(),
		Section:    section,
		Visible:    util.ParseNullBool(r.FormValue("visible")),
		OrderIndex: util.ParseNullInt64(r.FormValue("order_index")),
		UpdatedAt:  time.Now().UTC(),
	}
	if payload != "" {
		arg.Settings = util.NullStringFromValue(payload)
	}
	if existing, err := h.queries.GetWebsiteSettingBySection(r.Context(), section); err == nil {
		arg.ID = existing.ID
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.logger.Error("loading setting", "section", section, "error", err)
		h.renderer.SetFlash(r, "Failed to save settings.", "danger")
		http.Redirect(w, r, "/admin?tab=settings", http.StatusSeeOther)
		return
	}

	if err := h.queries.UpsertWebsiteSetting(r.Context(), arg); err != nil {
		h.logger.Error("saving setting", "section", section, "error", err)
		h.renderer.SetFlash(r, "Failed to save settings.", "danger")
		http.Redirect(w, r, "/admin?tab=settings", http.StatusSeeOther)
		return
	}

	if err := h.bus.Publish(r.Context(), notify.Message{
		Collection: settings.Collection,
		Op:         notify.OpUpdate,
		ID:         arg.ID,
		At:         time.Now().UTC(),
	}); err != nil {
		// The row is saved; the snapshot just goes stale until the next change.
		h.logger.Warn("publishing settings change", "section", section, "error", err)
	}

	h.logger.Info("website setting updated", "section", section)
	h.renderer.SetFlash(r, "Settings saved.", "success")
	http.Redirect(w, r, "/admin?tab=settings", http.StatusSeeOther)
}

func isEditableSection(section string) bool {
	for _, s := range editableSections {
		if s == section {
			return true
		}
	}
	return false
}
