// ABOUTME: Tests for forum post models
// ABOUTME: Verifies validation, thread id formatting, and wire decoding

package models

import (
	"encoding/json"
	"testing"
)

func TestValidate(t *testing.T) {
	p := &Post{ID: 42, Parent: NoParent, Locale: "fr"}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid post, got %v", err)
	}

	bad := &Post{ID: 0, Locale: "fr"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing id")
	}

	noLocale := &Post{ID: 7}
	if err := noLocale.Validate(); err == nil {
		t.Error("expected error for missing locale")
	}
}

func TestThreadIDRoundTrip(t *testing.T) {
	id := NewThreadID("fr_CA", 1234)
	if id != "fr_CA|1234" {
		t.Errorf("expected 'fr_CA|1234', got %q", id)
	}

	locale, postID, err := id.Parts()
	if err != nil {
		t.Fatalf("Parts failed: %v", err)
	}
	if locale != "fr_CA" || postID != 1234 {
		t.Errorf("expected (fr_CA, 1234), got (%s, %d)", locale, postID)
	}

	if _, _, err := ThreadID("nodelimiter").Parts(); err == nil {
		t.Error("expected error for malformed thread id")
	}
}

func TestDecodeWirePost(t *testing.T) {
	raw := `{
		"id": 3310,
		"parent": -1,
		"locale": "de",
		"xpath": "//ldml/units/x",
		"subject": "Plural form",
		"text": "Which form applies?",
		"date_long": 1456000000000,
		"forumStatus": "Question",
		"posterInfo": {"id": 9, "name": "reviewer", "org": "guest"}
	}`

	var p Post
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !p.IsTopLevel() {
		t.Error("expected top-level post")
	}
	if !p.HasItem() {
		t.Error("expected item-linked post")
	}
	if p.ForumStatus != StatusQuestion {
		t.Errorf("expected Question status, got %q", p.ForumStatus)
	}
	if p.PosterName() != "reviewer" {
		t.Errorf("expected poster 'reviewer', got %q", p.PosterName())
	}
	if got := p.Time().UnixMilli(); got != 1456000000000 {
		t.Errorf("expected millis preserved, got %d", got)
	}
}

func TestDecodeToleratesMissingOptionals(t *testing.T) {
	var p Post
	if err := json.Unmarshal([]byte(`{"id":5,"parent":-1,"locale":"en"}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.PosterInfo != nil {
		t.Error("expected nil posterInfo")
	}
	if p.PosterName() != "(inactive user)" {
		t.Errorf("unexpected placeholder: %q", p.PosterName())
	}
	if p.ForumStatus != "" {
		t.Errorf("expected empty status, got %q", p.ForumStatus)
	}
}
