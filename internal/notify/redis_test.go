package notify

import (
	"context"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("FOLIO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: FOLIO_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisBusPublishSubscribe(t *testing.T) {
	url := skipIfNoRedis(t)

	bus, err := NewRedisBusFromURL(url, testLogger())
	if err != nil {
		t.Fatalf("NewRedisBusFromURL: %v", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, "website_settings")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// Redis pub/sub has no replay; give the subscription a moment to settle
	time.Sleep(100 * time.Millisecond)

	want := Message{Collection: "website_settings", Op: OpUpdate, ID: "ws-1", At: time.Now().UTC()}
	if err := bus.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := recvTimeout(t, ch)
	if got.Collection != want.Collection || got.Op != want.Op || got.ID != want.ID {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRedisBusCancelClosesChannel(t *testing.T) {
	url := skipIfNoRedis(t)

	bus, err := NewRedisBusFromURL(url, testLogger())
	if err != nil {
		t.Fatalf("NewRedisBusFromURL: %v", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, "website_settings")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel never closed after cancel")
	}
}
