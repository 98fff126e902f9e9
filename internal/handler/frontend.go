// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains HTTP handlers for the public site and the admin
// dashboard.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/folio-go/internal/content"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/render"
	"github.com/olegiv/folio-go/internal/settings"
)

// FrontendHandler serves the public portfolio pages.
type FrontendHandler struct {
	svc      *content.Service
	settings *settings.Store
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(svc *content.Service, st *settings.Store, renderer *render.Renderer, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		svc:      svc,
		settings: st,
		renderer: renderer,
		logger:   logger,
	}
}

// NavbarView is the navbar section's render model.
type NavbarView struct {
	Brand string
}

// HeroView is the hero section's render model.
type HeroView struct {
	Title    string
	Subtitle string
	CTALabel string
}

// AboutView is the about section's render model. Body is rendered markdown.
type AboutView struct {
	Title string
	Body  template.HTML
}

// ContentView is the content cards section's render model. It carries all four
// category panels; an empty category renders an empty-state message.
type ContentView struct {
	Title          string
	Qualifications []model.Qualification
	WorkExperience []model.WorkExperience
	CaseStudies    []model.CaseStudy
	BlogPosts      []model.BlogPost
}

// ContactView is the contact section's render model.
type ContactView struct {
	Title      string
	Subtitle   string
	ShowResume bool
}

// FooterView is the footer section's render model.
type FooterView struct {
	Text string
}

// HomePage aggregates every section of the single-page frontend. Each section
// pointer is nil when the section is switched off in the settings store.
type HomePage struct {
	Navbar  *NavbarView
	Hero    *HeroView
	About   *AboutView
	Content *ContentView
	Contact *ContactView
	Footer  *FooterView
}

// Home renders the portfolio landing page. Hidden sections are omitted
// entirely; the content section's four category fetches are only issued when
// the section will actually render.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	snap := h.settings.Snapshot()
	page := HomePage{
		Navbar:  navbarView(snap),
		Hero:    heroView(snap),
		Contact: contactView(snap),
		Footer:  footerView(snap),
	}

	if snap.Visible(model.SectionAbout) {
		page.About = h.aboutView(snap)
	}
	if snap.Visible(model.SectionContent) {
		cards := contentView(snap)
		page.Content = cards

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			cards.Qualifications = h.svc.Qualifications(ctx)
			return nil
		})
		g.Go(func() error {
			cards.WorkExperience = h.svc.WorkExperience(ctx)
			return nil
		})
		g.Go(func() error {
			cards.CaseStudies = h.svc.CaseStudies(ctx)
			return nil
		})
		g.Go(func() error {
			cards.BlogPosts = h.svc.BlogPosts(ctx)
			return nil
		})
		_ = g.Wait()
	}

	if err := h.renderer.Render(w, r, "frontend/home", render.TemplateData{
		Title: "Portfolio",
		Data:  page,
	}); err != nil {
		h.logger.Error("rendering home page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// CaseStudy renders a single case study page.
func (h *FrontendHandler) CaseStudy(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.renderError(w, r, http.StatusBadRequest, "Missing case study ID")
		return
	}

	cs, err := h.svc.CaseStudyByID(r.Context(), id)
	if err != nil {
		h.logger.Error("loading case study", "id", id, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if cs == nil {
		h.renderNotFound(w, r)
		return
	}

	data := struct {
		CaseStudy *model.CaseStudy
		Content   template.HTML
	}{
		CaseStudy: cs,
		Content:   h.renderer.Markdown(cs.Content.String),
	}

	if err := h.renderer.Render(w, r, "frontend/case_study", render.TemplateData{
		Title: cs.Title,
		Data:  data,
	}); err != nil {
		h.logger.Error("rendering case study", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// BlogPost renders a single blog post page.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.renderError(w, r, http.StatusBadRequest, "Missing blog post ID")
		return
	}

	post, err := h.svc.BlogPostByID(r.Context(), id)
	if err != nil {
		h.logger.Error("loading blog post", "id", id, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if post == nil {
		h.renderNotFound(w, r)
		return
	}

	data := struct {
		Post    *model.BlogPost
		Content template.HTML
	}{
		Post:    post,
		Content: h.renderer.Markdown(post.Content.String),
	}

	if err := h.renderer.Render(w, r, "frontend/blog_post", render.TemplateData{
		Title: post.Title,
		Data:  data,
	}); err != nil {
		h.logger.Error("rendering blog post", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NotFound is the router's catch-all handler.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r)
}

func (h *FrontendHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.RenderStatus(w, r, "frontend/notfound", http.StatusNotFound, render.TemplateData{
		Title: "Page Not Found",
	}); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (h *FrontendHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := h.renderer.RenderStatus(w, r, "frontend/error", status, render.TemplateData{
		Title: message,
		Data:  message,
	}); err != nil {
		http.Error(w, message, status)
	}
}

func navbarView(snap *settings.Snapshot) *NavbarView {
	if !snap.Visible(model.SectionNavbar) {
		return nil
	}
	v := &NavbarView{Brand: "Folio"}
	if ws, ok := snap.Section(model.SectionNavbar); ok {
		var s model.NavbarSettings
		if err := ws.DecodeSettings(&s); err == nil && s.Brand != "" {
			v.Brand = s.Brand
		}
	}
	return v
}

func heroView(snap *settings.Snapshot) *HeroView {
	if !snap.Visible(model.SectionHero) {
		return nil
	}
	v := &HeroView{
		Title:    "Psychology. Design. Code.",
		Subtitle: "Building digital experiences grounded in how people think.",
		CTALabel: "Discover More",
	}
	if ws, ok := snap.Section(model.SectionHero); ok {
		var s model.HeroSettings
		if err := ws.DecodeSettings(&s); err == nil {
			if s.Title != "" {
				v.Title = s.Title
			}
			if s.Subtitle != "" {
				v.Subtitle = s.Subtitle
			}
			if s.CTALabel != "" {
				v.CTALabel = s.CTALabel
			}
		}
	}
	return v
}

func (h *FrontendHandler) aboutView(snap *settings.Snapshot) *AboutView {
	v := &AboutView{Title: "About Me"}
	if ws, ok := snap.Section(model.SectionAbout); ok {
		var s model.AboutSettings
		if err := ws.DecodeSettings(&s); err == nil {
			if s.Title != "" {
				v.Title = s.Title
			}
			if s.Body != "" {
				v.Body = h.renderer.Markdown(s.Body)
			}
		}
	}
	return v
}

func contentView(snap *settings.Snapshot) *ContentView {
	v := &ContentView{Title: "Work & Writing"}
	if ws, ok := snap.Section(model.SectionContent); ok {
		var s model.ContentSettings
		if err := ws.DecodeSettings(&s); err == nil && s.Title != "" {
			v.Title = s.Title
		}
	}
	return v
}

func contactView(snap *settings.Snapshot) *ContactView {
	if !snap.Visible(model.SectionContact) {
		return nil
	}
	v := &ContactView{Title: "Get in Touch"}
	if ws, ok := snap.Section(model.SectionContact); ok {
		var s model.ContactSettings
		if err := ws.DecodeSettings(&s); err == nil {
			if s.Title != "" {
				v.Title = s.Title
			}
			v.Subtitle = s.Subtitle
			v.ShowResume = s.ShowResume
		}
	}
	return v
}

func footerView(snap *settings.Snapshot) *FooterView {
	if !snap.Visible(model.SectionFooter) {
		return nil
	}
	v := &FooterView{}
	if ws, ok := snap.Section(model.SectionFooter); ok {
		var s model.FooterSettings
		if err := ws.DecodeSettings(&s); err == nil {
			v.Text = s.Text
		}
	}
	return v
}
