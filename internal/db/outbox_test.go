// ABOUTME: Tests for the outbox draft queue
// ABOUTME: Verifies queue order, round trip, and deletion

package db

import (
	"testing"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/models"
)

func TestQueueAndListDrafts(t *testing.T) {
	db := testDB(t)

	first := &client.Draft{Locale: "fr", Parent: 10, Subject: "re: one", Text: "a", Status: models.StatusAgreed}
	second := &client.Draft{Locale: "fr", Parent: models.NoParent, Subject: "two", Text: "b"}

	if _, err := QueueDraft(db, first); err != nil {
		t.Fatalf("QueueDraft failed: %v", err)
	}
	if _, err := QueueDraft(db, second); err != nil {
		t.Fatalf("QueueDraft failed: %v", err)
	}

	drafts, err := PendingDrafts(db)
	if err != nil {
		t.Fatalf("PendingDrafts failed: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	// Oldest first.
	if drafts[0].Draft.Subject != "re: one" || drafts[1].Draft.Subject != "two" {
		t.Errorf("unexpected order: %q, %q", drafts[0].Draft.Subject, drafts[1].Draft.Subject)
	}
	if drafts[0].Draft.Status != models.StatusAgreed {
		t.Errorf("status lost: %q", drafts[0].Draft.Status)
	}
	if drafts[0].QueuedAt.IsZero() {
		t.Error("expected queued_at stamp")
	}
}

func TestDeleteDraft(t *testing.T) {
	db := testDB(t)

	id, err := QueueDraft(db, &client.Draft{Locale: "de", Parent: models.NoParent, Subject: "s", Text: "t"})
	if err != nil {
		t.Fatalf("QueueDraft failed: %v", err)
	}
	if err := DeleteDraft(db, id); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}

	drafts, _ := PendingDrafts(db)
	if len(drafts) != 0 {
		t.Errorf("expected empty outbox, got %d", len(drafts))
	}

	if err := DeleteDraft(db, 999); err == nil {
		t.Error("expected error for unknown draft")
	}
}

func TestInitDBSchema(t *testing.T) {
	db := testDB(t)

	for _, table := range []string{"feed", "outbox"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}
