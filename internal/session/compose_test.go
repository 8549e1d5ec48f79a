// ABOUTME: Tests for the compose path
// ABOUTME: Verifies the reply contract, policy enforcement, and the outbox

package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/db"
	"github.com/perlover/cldrforum/internal/filter"
	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/policy"
)

func loadedSession(t *testing.T, f *fakeFetcher) *Session {
	t.Helper()
	root := post(10, models.NoParent, "fr")
	root.Xpath = "//ldml/numbers/decimal"
	root.ForumStatus = models.StatusQuestion
	root.PosterInfo = &models.PosterInfo{ID: 5, Name: "opener"}
	reply := post(11, 10, "fr_CA")

	f.feeds = map[string][]*models.Post{"fr": {root, reply}}
	s := New(Options{
		Fetcher: f,
		Filter:  filter.NewCriterionFilter(filter.CriterionAll, 0),
		User:    policy.User{ID: 5, Name: "opener"},
	})
	if _, err := s.LoadAndRender(context.Background(), "fr"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return s
}

func TestComposeReplyInheritsRootLocaleAndXpath(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedSession(t, f)

	// Reply to the drifted fr_CA post; the draft must inherit the root's
	// locale and xpath, not the immediate parent's.
	replyTo, _ := s.Post(11)
	_, err := s.Compose(context.Background(), &client.Draft{
		Subject: "re", Text: "body", Locale: "fr_CA",
	}, replyTo)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	sent := f.submitted[0]
	if sent.Locale != "fr" {
		t.Errorf("expected root locale fr, got %q", sent.Locale)
	}
	if sent.Xpath != "//ldml/numbers/decimal" {
		t.Errorf("expected root xpath, got %q", sent.Xpath)
	}
	if sent.Parent != 11 {
		t.Errorf("expected parent 11, got %d", sent.Parent)
	}
}

func TestComposeNewThread(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedSession(t, f)

	_, err := s.Compose(context.Background(), &client.Draft{
		Locale: "fr", Subject: "new", Text: "body", Status: models.StatusRequest,
	}, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if f.submitted[0].Parent != models.NoParent {
		t.Errorf("expected sentinel parent, got %d", f.submitted[0].Parent)
	}
}

func TestComposeRejectsDisallowedStatus(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedSession(t, f)

	// Closed is not on the new-thread menu.
	_, err := s.Compose(context.Background(), &client.Draft{
		Locale: "fr", Subject: "new", Text: "body", Status: models.StatusClosed,
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "not permitted") {
		t.Errorf("expected policy rejection, got %v", err)
	}
	if len(f.submitted) != 0 {
		t.Error("rejected draft must not be submitted")
	}
}

func TestComposeOptions(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedSession(t, f)

	opts, err := s.ComposeOptions(nil)
	if err != nil {
		t.Fatalf("ComposeOptions failed: %v", err)
	}
	if len(opts) == 0 || opts[0] != models.StatusRequest {
		t.Errorf("unexpected new-thread options: %v", opts)
	}

	replyTo, _ := s.Post(11)
	opts, err = s.ComposeOptions(replyTo)
	if err != nil {
		t.Fatalf("ComposeOptions failed: %v", err)
	}
	// The session user opened the thread, so Closed is offered.
	found := false
	for _, o := range opts {
		if o == models.StatusClosed {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Closed in opener's reply options, got %v", opts)
	}
}

func TestComposeQueuesOnTransportFailure(t *testing.T) {
	cache, err := db.InitDB(filepath.Join(t.TempDir(), "forum.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer cache.Close()

	f := &fakeFetcher{
		feeds:     map[string][]*models.Post{"fr": {post(1, models.NoParent, "fr")}},
		submitErr: errors.New("connection refused"),
	}
	s := New(Options{Fetcher: f, Filter: filter.NewCriterionFilter(filter.CriterionAll, 0), Cache: cache})
	s.LoadAndRender(context.Background(), "fr")

	_, err = s.Compose(context.Background(), &client.Draft{
		Locale: "fr", Subject: "offline", Text: "body",
	}, nil)
	if !errors.Is(err, ErrQueued) {
		t.Fatalf("expected ErrQueued, got %v", err)
	}

	drafts, _ := db.PendingDrafts(cache)
	if len(drafts) != 1 || drafts[0].Draft.Subject != "offline" {
		t.Fatalf("expected queued draft, got %+v", drafts)
	}

	// Server back: flush sends and clears the outbox.
	f.submitErr = nil
	sent, err := s.FlushOutbox(context.Background())
	if err != nil {
		t.Fatalf("FlushOutbox failed: %v", err)
	}
	if sent != 1 {
		t.Errorf("expected 1 draft sent, got %d", sent)
	}
	drafts, _ = db.PendingDrafts(cache)
	if len(drafts) != 0 {
		t.Errorf("expected empty outbox, got %d", len(drafts))
	}
}

func TestComposeRejectionIsNotQueued(t *testing.T) {
	// A server rejection whose text mentions queueing must not read as the
	// parked-in-outbox outcome; only the sentinel means that.
	f := &fakeFetcher{
		feeds:     map[string][]*models.Post{"fr": {post(1, models.NoParent, "fr")}},
		submitErr: errors.New("server rejected post: duplicate queued elsewhere"),
	}
	s := New(Options{Fetcher: f, Filter: filter.NewCriterionFilter(filter.CriterionAll, 0)})
	s.LoadAndRender(context.Background(), "fr")

	_, err := s.Compose(context.Background(), &client.Draft{
		Locale: "fr", Subject: "s", Text: "t",
	}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrQueued) {
		t.Errorf("rejection must not match ErrQueued: %v", err)
	}
}

func TestComposeAuthFailureNotQueued(t *testing.T) {
	cache, err := db.InitDB(filepath.Join(t.TempDir(), "forum.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer cache.Close()

	f := &fakeFetcher{
		feeds:     map[string][]*models.Post{"fr": {post(1, models.NoParent, "fr")}},
		submitErr: &client.HTTPStatusError{Status: 403, URL: "x"},
	}
	s := New(Options{Fetcher: f, Filter: filter.NewCriterionFilter(filter.CriterionAll, 0), Cache: cache})
	s.LoadAndRender(context.Background(), "fr")

	_, err = s.Compose(context.Background(), &client.Draft{Locale: "fr", Subject: "s", Text: "t"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	drafts, _ := db.PendingDrafts(cache)
	if len(drafts) != 0 {
		t.Error("auth failures must not queue drafts")
	}
}
