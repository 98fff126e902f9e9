package content

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
	"github.com/olegiv/folio-go/internal/util"
)

func testService(t *testing.T) (*Service, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	q := store.New(db)
	return New(q, testutil.TestLoggerSilent()), q, cleanup
}

func TestListsReturnEmptyNotNil(t *testing.T) {
	svc, _, cleanup := testService(t)
	defer cleanup()

	ctx := context.Background()
	if got := svc.Qualifications(ctx); got == nil {
		t.Error("Qualifications returned nil")
	}
	if got := svc.WorkExperience(ctx); got == nil {
		t.Error("WorkExperience returned nil")
	}
	if got := svc.CaseStudies(ctx); got == nil {
		t.Error("CaseStudies returned nil")
	}
	if got := svc.BlogPosts(ctx); got == nil {
		t.Error("BlogPosts returned nil")
	}
	if got := svc.Tags(ctx); got == nil {
		t.Error("Tags returned nil")
	}
}

func TestListsSwallowStorageErrors(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	svc := New(store.New(db), testutil.TestLoggerSilent())
	// A closed database makes every query fail
	cleanup()

	ctx := context.Background()
	if got := svc.Qualifications(ctx); got == nil || len(got) != 0 {
		t.Errorf("Qualifications on failure = %v, want empty slice", got)
	}
	if got := svc.CaseStudies(ctx); got == nil || len(got) != 0 {
		t.Errorf("CaseStudies on failure = %v, want empty slice", got)
	}
	if got := svc.BlogPosts(ctx); got == nil || len(got) != 0 {
		t.Errorf("BlogPosts on failure = %v, want empty slice", got)
	}
}

func TestCaseStudiesAttachTags(t *testing.T) {
	svc, q, cleanup := testService(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	if err := q.CreateCaseStudy(ctx, store.CreateCaseStudyParams{
		ID: "cs-tagged", Title: "Tagged", Category: "Design",
		OrderIndex: util.NullInt64FromValue(1), CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateCaseStudy: %v", err)
	}
	if err := q.CreateCaseStudy(ctx, store.CreateCaseStudyParams{
		ID: "cs-bare", Title: "Bare", Category: "Design",
		OrderIndex: util.NullInt64FromValue(2), CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateCaseStudy: %v", err)
	}
	if err := q.CreateTag(ctx, "t-1", "Research", now); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := q.AddCaseStudyTag(ctx, "cs-tagged", "t-1"); err != nil {
		t.Fatalf("AddCaseStudyTag: %v", err)
	}

	items := svc.CaseStudies(ctx)
	if len(items) != 2 {
		t.Fatalf("got %d case studies, want 2", len(items))
	}
	if len(items[0].Tags) != 1 || items[0].Tags[0].Name != "Research" {
		t.Errorf("tagged item tags = %+v, want [Research]", items[0].Tags)
	}
	// Untagged parents still get an empty slice, never nil
	if items[1].Tags == nil {
		t.Error("bare item tags are nil")
	}
	if len(items[1].Tags) != 0 {
		t.Errorf("bare item tags = %+v, want empty", items[1].Tags)
	}
}

func TestByIDDistinguishesNotFoundFromFailure(t *testing.T) {
	svc, q, cleanup := testService(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	if err := q.CreateBlogPost(ctx, store.CreateBlogPostParams{
		ID: "bp-1", Title: "Hello", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	post, err := svc.BlogPostByID(ctx, "bp-1")
	if err != nil {
		t.Fatalf("BlogPostByID: %v", err)
	}
	if post == nil || post.Title != "Hello" {
		t.Fatalf("post = %+v, want Hello", post)
	}
	if post.Tags == nil {
		t.Error("post tags are nil")
	}

	// Absent id: no error, nil result
	post, err = svc.BlogPostByID(ctx, "missing")
	if err != nil {
		t.Errorf("missing id: err = %v, want nil", err)
	}
	if post != nil {
		t.Errorf("missing id: post = %+v, want nil", post)
	}

	cs, err := svc.CaseStudyByID(ctx, "missing")
	if err != nil {
		t.Errorf("missing id: err = %v, want nil", err)
	}
	if cs != nil {
		t.Errorf("missing id: case study = %+v, want nil", cs)
	}
}

func TestByIDReportsLookupFailure(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	svc := New(store.New(db), testutil.TestLoggerSilent())
	cleanup()

	if _, err := svc.CaseStudyByID(context.Background(), "any"); err == nil {
		t.Error("expected an error from a failed lookup")
	}
	if _, err := svc.BlogPostByID(context.Background(), "any"); err == nil {
		t.Error("expected an error from a failed lookup")
	}
}

func TestSubmitContact(t *testing.T) {
	svc, q, cleanup := testService(t)
	defer cleanup()

	ctx := context.Background()
	if !svc.SubmitContact(ctx, "Ada", "ada@example.com", "Hi", "Great site.") {
		t.Fatal("SubmitContact returned false")
	}

	count, err := q.CountContactSubmissions(ctx)
	if err != nil {
		t.Fatalf("CountContactSubmissions: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSubmitContactResolvesFailureToFalse(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	svc := New(store.New(db), testutil.TestLoggerSilent())
	cleanup()

	if svc.SubmitContact(context.Background(), "Ada", "ada@example.com", "", "msg") {
		t.Error("SubmitContact on closed database returned true")
	}
}

func TestResolveTags(t *testing.T) {
	svc := New(nil, testutil.TestLoggerSilent())
	ctx := context.Background()

	lookup := func(_ context.Context, parentID string) ([]model.Tag, error) {
		switch parentID {
		case "boom":
			return nil, errors.New("lookup failed")
		case "empty":
			return nil, nil
		default:
			return []model.Tag{{ID: "t-" + parentID, Name: parentID}}, nil
		}
	}

	got := svc.resolveTags(ctx, []string{"a", "boom", "empty", "b"}, lookup)
	if len(got) != 4 {
		t.Fatalf("got %d results, want 4", len(got))
	}

	// Results are positional
	if len(got[0]) != 1 || got[0][0].Name != "a" {
		t.Errorf("got[0] = %+v, want [a]", got[0])
	}
	if len(got[3]) != 1 || got[3][0].Name != "b" {
		t.Errorf("got[3] = %+v, want [b]", got[3])
	}

	// A failed or empty lookup yields an empty slice, never nil, and does not
	// disturb its neighbors
	for _, i := range []int{1, 2} {
		if got[i] == nil {
			t.Errorf("got[%d] is nil", i)
		}
		if len(got[i]) != 0 {
			t.Errorf("got[%d] = %+v, want empty", i, got[i])
		}
	}

	// Empty input
	if got := svc.resolveTags(ctx, nil, lookup); len(got) != 0 {
		t.Errorf("resolveTags(nil) = %+v, want empty", got)
	}
}

func TestResolveTagsManyParents(t *testing.T) {
	svc := New(nil, testutil.TestLoggerSilent())

	const n = 50
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p-%03d", i)
	}
	lookup := func(_ context.Context, parentID string) ([]model.Tag, error) {
		return []model.Tag{{ID: parentID, Name: parentID}}, nil
	}

	got := svc.resolveTags(context.Background(), ids, lookup)
	for i, id := range ids {
		if len(got[i]) != 1 || got[i][0].ID != id {
			t.Fatalf("position %d: got %+v, want %s", i, got[i], id)
		}
	}
}
