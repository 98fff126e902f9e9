package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHome_RendersVisibleSections(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	setSection(t, env, model.SectionHero, `{"title":"Custom Hero Title"}`, true)
	h := frontendRouter(env, "")

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Custom Hero Title") {
		t.Error("hero title missing from page")
	}
	if !strings.Contains(body, `id="contact"`) {
		t.Error("contact section missing from page")
	}
}

func TestHome_HiddenSectionOmitted(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	setSection(t, env, model.SectionHero, `{"title":"Should Not Appear"}`, false)
	setSection(t, env, model.SectionContact, `{}`, false)
	h := frontendRouter(env, "")

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "Should Not Appear") {
		t.Error("hidden hero section rendered")
	}
	if strings.Contains(body, `id="contact"`) {
		t.Error("hidden contact section rendered")
	}
}

func TestHome_HiddenContentSectionSkipsCards(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	err := env.queries.CreateCaseStudy(ctx, store.CreateCaseStudyParams{
		ID: "cs-1", Title: "Invisible Study", Category: "Design",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCaseStudy: %v", err)
	}
	err = env.queries.CreateQualification(ctx, store.CreateQualificationParams{
		ID: "q-1", Title: "Invisible Degree", Institution: "Uni", Year: "2020",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateQualification: %v", err)
	}
	setSection(t, env, model.SectionContent, `{}`, false)
	h := frontendRouter(env, "")

	w := get(t, h, "/")
	body := w.Body.String()
	if strings.Contains(body, "Invisible Study") {
		t.Error("content cards rendered for hidden section")
	}
	// Qualifications belong to the content section, so hiding it must
	// suppress them as well.
	if strings.Contains(body, "Invisible Degree") {
		t.Error("qualifications rendered for hidden content section")
	}
}

func TestHome_EmptyCategoriesShowEmptyState(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	h := frontendRouter(env, "")
	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, msg := range []string{
		"No qualifications yet.",
		"No work experience yet.",
		"No case studies yet.",
		"No blog posts yet.",
	} {
		if !strings.Contains(body, msg) {
			t.Errorf("empty-state message %q missing from page", msg)
		}
	}
}

func TestHome_PopulatedCategoryReplacesEmptyState(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	now := time.Now().UTC()
	err := env.queries.CreateQualification(context.Background(), store.CreateQualificationParams{
		ID: "q-1", Title: "BSc Psychology", Institution: "Uni", Year: "2018",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateQualification: %v", err)
	}

	h := frontendRouter(env, "")
	w := get(t, h, "/")
	body := w.Body.String()
	if !strings.Contains(body, "BSc Psychology") {
		t.Error("qualification missing from content section")
	}
	if strings.Contains(body, "No qualifications yet.") {
		t.Error("empty-state message shown alongside rows")
	}
	// The other categories are still empty and keep their messages.
	if !strings.Contains(body, "No case studies yet.") {
		t.Error("case studies empty-state missing")
	}
}

func TestCaseStudy_Found(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	err := env.queries.CreateCaseStudy(ctx, store.CreateCaseStudyParams{
		ID:       "cs-1",
		Title:    "Onboarding Study",
		Category: "UX Research",
		Content:  util.NullStringFromValue("## Findings\n\nShorter flows win."),
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCaseStudy: %v", err)
	}
	if err := env.queries.CreateTag(ctx, "t-ux", "UX", now); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := env.queries.AddCaseStudyTag(ctx, "cs-1", "t-ux"); err != nil {
		t.Fatalf("AddCaseStudyTag: %v", err)
	}

	h := frontendRouter(env, "")
	w := get(t, h, "/case-studies/cs-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Onboarding Study") {
		t.Error("title missing")
	}
	// Markdown content is rendered to HTML
	if !strings.Contains(body, "<h2") || !strings.Contains(body, "Findings") {
		t.Error("markdown content not rendered")
	}
	if !strings.Contains(body, "UX") {
		t.Error("tags missing")
	}
}

func TestCaseStudy_NotFound(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	h := frontendRouter(env, "")
	w := get(t, h, "/case-studies/no-such-id")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "404") {
		t.Error("not-found page missing")
	}
}

func TestBlogPost_FoundAndNotFound(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	err := env.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		ID:      "bp-1",
		Title:   "On Designing Forms",
		Content: util.NullStringFromValue("People abandon long forms."),
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	h := frontendRouter(env, "")

	w := get(t, h, "/blog/bp-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "On Designing Forms") {
		t.Error("title missing")
	}

	w = get(t, h, "/blog/missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", w.Code)
	}
}

func TestDetail_LookupFailureRendersError(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	h := frontendRouter(env, "")
	// Close the database so the lookup itself fails
	cleanup()

	w := get(t, h, "/case-studies/cs-1")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestNotFoundRoute(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	h := frontendRouter(env, "")
	w := get(t, h, "/nope/nothing/here")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
