// ABOUTME: Tests for per-thread forest construction
// ABOUTME: Verifies attachment, reparenting of orphans, and encounter order

package thread

import (
	"testing"

	"github.com/perlover/cldrforum/internal/models"
)

func TestBuildForestSublocaleChild(t *testing.T) {
	a := post(10, models.NoParent, "fr")
	b := post(11, 10, "fr_CA")
	s := newStore(t, a, b)
	r := NewResolver(s, nil)

	forests, order := BuildForest(s.Feed(), r)

	if len(order) != 1 || order[0] != "fr|10" {
		t.Fatalf("expected one thread 'fr|10', got %v", order)
	}
	f := forests["fr|10"]
	if f.Root.Post.ID != 10 {
		t.Errorf("expected root 10, got %d", f.Root.Post.ID)
	}
	if len(f.Root.Children) != 1 || f.Root.Children[0].Post.ID != 11 {
		t.Errorf("expected child 11 under root, got %+v", f.Root.Children)
	}
	if f.PostCount() != 2 {
		t.Errorf("expected 2 posts, got %d", f.PostCount())
	}
}

func TestBuildForestChildBeforeParent(t *testing.T) {
	parent := post(1, models.NoParent, "en")
	child := post(2, 1, "en")
	// Child first in the feed; two-pass build must still attach it.
	s := newStore(t, child, parent)
	r := NewResolver(s, nil)

	forests, _ := BuildForest(s.Feed(), r)
	f := forests["en|1"]
	if f == nil {
		t.Fatal("expected thread 'en|1'")
	}
	if f.Root.Post.ID != 1 {
		t.Errorf("expected root 1, got %d", f.Root.Post.ID)
	}
	if len(f.Root.Children) != 1 || f.Root.Children[0].Post.ID != 2 {
		t.Errorf("expected child 2 attached to parent, got %+v", f.Root.Children)
	}
}

func TestBuildForestMissingParent(t *testing.T) {
	a := post(1, models.NoParent, "en")
	orphan := post(2, 99, "en")
	s := newStore(t, a, orphan)
	r := NewResolver(s, nil)

	forests, order := BuildForest(s.Feed(), r)

	if len(order) != 2 {
		t.Fatalf("expected two threads, got %v", order)
	}
	f := forests["en|2"]
	if f == nil || f.Root.Post.ID != 2 {
		t.Fatal("expected orphan rooted at itself under thread 'en|2'")
	}
	if len(f.Root.Children) != 0 {
		t.Errorf("expected no children on orphan root, got %d", len(f.Root.Children))
	}
}

func TestBuildForestDeepOrphanReparents(t *testing.T) {
	root := post(1, models.NoParent, "en")
	// Declared parent 50 never arrived; the child hangs off the thread
	// root it resolves to (itself, as the chain ends at the missing hop).
	stray := post(3, 50, "en")
	s := newStore(t, root, stray)
	r := NewResolver(s, nil)

	forests, _ := BuildForest(s.Feed(), r)
	if forests["en|3"] == nil {
		t.Fatal("expected stray post to form its own thread")
	}
}

func TestBuildForestOrphanWithinThread(t *testing.T) {
	a := post(1, models.NoParent, "en")
	b := post(2, 1, "en")
	c := post(3, 2, "en")
	s := newStore(t, a, b, c)
	r := NewResolver(s, nil)

	// Resolve ids against the full store, then build from a feed that
	// lacks the middle post: c's declared parent is known to the store
	// but absent from the batch being rendered, so c reparents to root.
	feed := []*models.Post{a, c}
	forests, _ := BuildForest(feed, r)

	f := forests["en|1"]
	if f == nil {
		t.Fatal("expected thread 'en|1'")
	}
	if len(f.Root.Children) != 1 || f.Root.Children[0].Post.ID != 3 {
		t.Errorf("expected post 3 reparented under root, got %+v", f.Root.Children)
	}
}

func TestBuildForestEncounterOrder(t *testing.T) {
	s := newStore(t,
		post(7, models.NoParent, "en"),
		post(5, models.NoParent, "en"),
		post(8, 7, "en"),
	)
	r := NewResolver(s, nil)

	_, order := BuildForest(s.Feed(), r)
	if len(order) != 2 || order[0] != "en|7" || order[1] != "en|5" {
		t.Errorf("expected first-encounter order [en|7 en|5], got %v", order)
	}
}

func TestBuildForestCyclicPostsAreSingletons(t *testing.T) {
	a := post(1, 2, "en")
	b := post(2, 1, "en")
	s := newStore(t, a, b)
	r := NewResolver(s, nil)

	forests, order := BuildForest(s.Feed(), r)
	if len(order) != 2 {
		t.Fatalf("expected two singleton threads, got %v", order)
	}
	for _, tid := range order {
		f := forests[tid]
		if f.PostCount() != 1 || len(f.Root.Children) != 0 {
			t.Errorf("thread %s: expected bare singleton, got %d posts", tid, f.PostCount())
		}
	}
}
