package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/notify"
	"github.com/olegiv/folio-go/internal/settings"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

func TestDashboard_Overview(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	now := time.Now().UTC()
	err := env.queries.CreateQualification(context.Background(), store.CreateQualificationParams{
		ID: "q-1", Title: "MSc", Institution: "Uni", Year: "2019",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateQualification: %v", err)
	}

	h := frontendRouter(env, "")
	w := get(t, h, "/admin")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Qualifications") {
		t.Error("overview counts missing")
	}
}

func TestDashboard_UnknownTabFallsBack(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	h := frontendRouter(env, "")
	w := get(t, h, "/admin?tab=bogus")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Recent Events") {
		t.Error("expected overview tab content")
	}
}

func TestDashboard_SubmissionsTab(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	ctx := context.Background()
	err := env.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ID: "sub-1", Name: "Ada", Email: "ada@example.com",
		Subject: util.NullStringFromValue("Hi"), Message: "Hello there",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}

	h := frontendRouter(env, "")
	w := get(t, h, "/admin?tab=submissions")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ada@example.com") {
		t.Error("submission missing from list")
	}
}

func TestMarkSubmissionRead(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	ctx := context.Background()
	err := env.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		ID: "sub-1", Name: "Ada", Email: "ada@example.com", Message: "Hello",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}

	h := frontendRouter(env, "")
	w := postForm(t, h, "/admin/submissions/sub-1/read", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	unread, err := env.queries.CountUnreadContactSubmissions(ctx)
	if err != nil {
		t.Fatalf("CountUnreadContactSubmissions: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d, want 0", unread)
	}
}

func TestUpdateSetting_PersistsAndNotifies(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := env.bus.Subscribe(ctx, settings.Collection)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	h := frontendRouter(env, "")
	w := postForm(t, h, "/admin/settings/hero", url.Values{
		"visible":  {"false"},
		"settings": {`{"title":"New Hero"}`},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	ws, err := env.queries.GetWebsiteSettingBySection(context.Background(), model.SectionHero)
	if err != nil {
		t.Fatalf("GetWebsiteSettingBySection: %v", err)
	}
	if ws.IsVisible() {
		t.Error("section should be hidden")
	}
	var hs model.HeroSettings
	if err := ws.DecodeSettings(&hs); err != nil {
		t.Fatalf("DecodeSettings: %v", err)
	}
	if hs.Title != "New Hero" {
		t.Errorf("Title = %q, want New Hero", hs.Title)
	}

	select {
	case msg := <-ch:
		if msg.Collection != settings.Collection || msg.Op != notify.OpUpdate {
			t.Errorf("unexpected message: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification published")
	}
}

func TestUpdateSetting_KeepsExistingRowID(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	setSection(t, env, model.SectionFooter, `{"text":"old"}`, true)

	h := frontendRouter(env, "")
	w := postForm(t, h, "/admin/settings/footer", url.Values{
		"settings": {`{"text":"new"}`},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	ws, err := env.queries.GetWebsiteSettingBySection(context.Background(), model.SectionFooter)
	if err != nil {
		t.Fatalf("GetWebsiteSettingBySection: %v", err)
	}
	if ws.ID != "ws-footer" {
		t.Errorf("ID = %q, want original ws-footer", ws.ID)
	}
	if !strings.Contains(string(ws.Settings), "new") {
		t.Errorf("Settings = %s, want updated payload", ws.Settings)
	}
}

func TestUpdateSetting_RejectsInvalidJSON(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	h := frontendRouter(env, "")
	w := postForm(t, h, "/admin/settings/hero", url.Values{
		"settings": {`{not json`},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	if _, err := env.queries.GetWebsiteSettingBySection(context.Background(), model.SectionHero); err == nil {
		t.Error("invalid JSON payload was stored")
	}
}

func TestUpdateSetting_UnknownSection(t *testing.T) {
	env, cleanup := testHandlerSetup(t)
	defer cleanup()

	h := frontendRouter(env, "")
	w := postForm(t, h, "/admin/settings/mystery", url.Values{})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
