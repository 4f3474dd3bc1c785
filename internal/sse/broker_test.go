package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishScanResult(7)

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: scan.completed") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"broken_links":7`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishFixResult(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishFixResult(4, 1, true)

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: fix.completed") {
			t.Errorf("missing event type in %q", s)
		}
		for _, frag := range []string{`"total_fixes":4`, `"remaining_issues":1`, `"dry_run":true`} {
			if !strings.Contains(s, frag) {
				t.Errorf("missing %s in %q", frag, s)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishScanResult(2)
	time.Sleep(50 * time.Millisecond)

	// Cancel context to disconnect.
	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: scan.completed") {
		t.Errorf("handler body missing event: %q", body)
	}
	if w.Header().Get("Content-Type") != "text/event-stream" {
		t.Errorf("content type = %q", w.Header().Get("Content-Type"))
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := NewBroker()
	b.Close()

	// Must not panic or block.
	b.PublishScanResult(1)
	if n := b.ClientCount(); n != 0 {
		t.Errorf("client count after close = %d", n)
	}
	if ch := b.Subscribe(); ch != nil {
		if _, ok := <-ch; ok {
			t.Error("subscribe after close returned open channel")
		}
	}
}
