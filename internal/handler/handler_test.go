package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/content"
	"github.com/olegiv/folio-go/internal/notify"
	"github.com/olegiv/folio-go/internal/render"
	"github.com/olegiv/folio-go/internal/session"
	"github.com/olegiv/folio-go/internal/settings"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
	"github.com/olegiv/folio-go/internal/util"
	"github.com/olegiv/folio-go/web"
)

// handlerEnv bundles everything a handler test needs.
type handlerEnv struct {
	db       *sql.DB
	queries  *store.Queries
	svc      *content.Service
	settings *settings.Store
	bus      *notify.MemoryBus
	renderer *render.Renderer
	sessions *scs.SessionManager
}

// testHandlerSetup builds a full handler environment over a temp database.
func testHandlerSetup(t *testing.T) (*handlerEnv, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	queries := store.New(db)
	logger := testutil.TestLoggerSilent()

	bus := notify.NewMemoryBus(logger)
	st := settings.New(queries, bus, logger, settings.DefaultConfig())
	if err := st.Load(context.Background()); err != nil {
		cleanup()
		t.Fatalf("settings load: %v", err)
	}

	sm := session.New(db, true)
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		cleanup()
		t.Fatalf("templates sub fs: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		cleanup()
		t.Fatalf("render.New: %v", err)
	}

	env := &handlerEnv{
		db:       db,
		queries:  queries,
		svc:      content.New(queries, logger),
		settings: st,
		bus:      bus,
		renderer: renderer,
		sessions: sm,
	}
	return env, func() {
		_ = bus.Close()
		cleanup()
	}
}

// frontendRouter wires the public routes the way main does, minus CSRF.
func frontendRouter(env *handlerEnv, resumePath string) http.Handler {
	logger := testutil.TestLoggerSilent()
	fh := NewFrontendHandler(env.svc, env.settings, env.renderer, logger)
	ch := NewContactHandler(env.svc, env.renderer, logger, resumePath)
	ah := NewAdminHandler(env.queries, env.svc, env.settings, env.bus, env.renderer, logger)

	r := chi.NewRouter()
	r.Use(env.sessions.LoadAndSave)
	r.Get("/", fh.Home)
	r.Get("/case-studies/{id}", fh.CaseStudy)
	r.Get("/blog/{id}", fh.BlogPost)
	r.Get("/resume", ch.Resume)
	r.Post("/contact", ch.Submit)
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", ah.Dashboard)
		r.Post("/submissions/{id}/read", ah.MarkSubmissionRead)
		r.Post("/settings/{section}", ah.UpdateSetting)
	})
	r.NotFound(fh.NotFound)
	return r
}

func setSection(t *testing.T, env *handlerEnv, section, payload string, visible bool) {
	t.Helper()
	err := env.queries.UpsertWebsiteSetting(context.Background(), store.UpsertWebsiteSettingParams{
		ID:        "ws-" + section,
		Section:   section,
		Visible:   util.NullBoolFromValue(visible),
		Settings:  util.NullStringFromValue(payload),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpsertWebsiteSetting(%s): %v", section, err)
	}
	if err := env.settings.Load(context.Background()); err != nil {
		t.Fatalf("settings reload: %v", err)
	}
}
