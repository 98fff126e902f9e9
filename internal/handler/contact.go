// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/olegiv/folio-go/internal/content"
	"github.com/olegiv/folio-go/internal/render"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxSubjectLen = 300
	maxMessageLen = 10000
)

// ContactHandler accepts public contact form submissions and serves the
// resume download.
type ContactHandler struct {
	svc        *content.Service
	renderer   *render.Renderer
	logger     *slog.Logger
	resumePath string
}

// NewContactHandler creates a new ContactHandler. resumePath may be empty, in
// which case the resume download responds 404.
func NewContactHandler(svc *content.Service, renderer *render.Renderer, logger *slog.Logger, resumePath string) *ContactHandler {
	return &ContactHandler{
		svc:        svc,
		renderer:   renderer,
		logger:     logger,
		resumePath: resumePath,
	}
}

// Submit handles the contact form POST. Validation failures and storage
// failures both come back as a flash message on the landing page; the visitor
// never sees a bare error response.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form submission.", "danger")
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	message := strings.TrimSpace(r.FormValue("message"))

	if msg := validateContact(name, email, message); msg != "" {
		h.renderer.SetFlash(r, msg, "danger")
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}
	if len(subject) > maxSubjectLen {
		subject = subject[:maxSubjectLen]
	}

	if !h.svc.SubmitContact(r.Context(), name, email, subject, message) {
		h.renderer.SetFlash(r, "Something went wrong sending your message. Please try again later.", "danger")
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}

	h.logger.Info("contact submission received", "email", email)
	h.renderer.SetFlash(r, "Thank you for your message! I will get back to you soon.", "success")
	http.Redirect(w, r, "/#contact", http.StatusSeeOther)
}

// Resume serves the resume file configured at startup.
func (h *ContactHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if h.resumePath == "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	http.ServeFile(w, r, h.resumePath)
}

func validateContact(name, email, message string) string {
	switch {
	case name == "":
		return "Name is required."
	case len(name) > maxNameLen:
		return "Name is too long."
	case email == "":
		return "Email is required."
	case len(email) > maxEmailLen || !emailRe.MatchString(email):
		return "Please enter a valid email address."
	case message == "":
		return "Message is required."
	case len(message) > maxMessageLen:
		return "Message is too long."
	}
	return ""
}
