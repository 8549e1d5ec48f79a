// ABOUTME: Thread identity resolution via iterative parent walks
// ABOUTME: Memoized per store generation, with a hop budget against cycles

package thread

import (
	"errors"
	"log/slog"

	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/store"
)

// ErrCyclicThread reports a parent chain that never reached a root within
// the hop budget. It marks corrupt data, not a user-visible failure: the
// affected post is rendered as its own singleton thread.
var ErrCyclicThread = errors.New("cyclic parent chain")

// Resolver computes thread identities over one store's contents. Results are
// memoized by post id; the memo must be discarded (new Resolver) whenever the
// store's contents change.
type Resolver struct {
	store  *store.PostStore
	logger *slog.Logger
	memo   map[int64]models.ThreadID
}

// NewResolver creates a resolver over the given store.
func NewResolver(st *store.PostStore, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:  st,
		logger: logger,
		memo:   make(map[int64]models.ThreadID),
	}
}

// ResolveThreadID walks parent pointers until it finds the thread root: a
// post with the sentinel parent, or whose declared parent is absent from the
// store. The walk is bounded by the store size; exceeding the budget means a
// cycle, in which case the post resolves to a singleton thread rooted at
// itself and the corruption is logged.
func (r *Resolver) ResolveThreadID(p *models.Post) models.ThreadID {
	if id, ok := r.memo[p.ID]; ok {
		return id
	}
	root, err := r.walkToRoot(p)
	if err != nil {
		r.logger.Warn("cyclic parent chain, treating post as singleton thread",
			"post", p.ID, "locale", p.Locale)
		id := models.ThreadIDFor(p)
		r.memo[p.ID] = id
		return id
	}
	return r.memoizePath(p, models.ThreadIDFor(root))
}

// FirstPostInThread returns the thread's root post record. The compose path
// uses it to force a reply's locale and xpath to match the root even when the
// immediate parent has drifted to another locale.
func (r *Resolver) FirstPostInThread(p *models.Post) (*models.Post, error) {
	return r.walkToRoot(p)
}

func (r *Resolver) walkToRoot(p *models.Post) (*models.Post, error) {
	// Budget of store-size hops: any longer chain must revisit a post.
	budget := r.store.Len()
	cur := p
	for hops := 0; ; hops++ {
		if cur.IsTopLevel() {
			return cur, nil
		}
		parent, ok := r.store.Get(cur.Parent)
		if !ok {
			// MissingAncestor: the chain ends here, not an error.
			return cur, nil
		}
		if hops >= budget {
			return nil, ErrCyclicThread
		}
		cur = parent
	}
}

// memoizePath records the resolved id for every post on the walk from p to
// the root, so resolving a deep batch costs O(n) total regardless of input
// order.
func (r *Resolver) memoizePath(p *models.Post, id models.ThreadID) models.ThreadID {
	cur := p
	for {
		if cached, ok := r.memo[cur.ID]; ok {
			return cached
		}
		r.memo[cur.ID] = id
		if cur.IsTopLevel() {
			return id
		}
		parent, ok := r.store.Get(cur.Parent)
		if !ok {
			return id
		}
		cur = parent
	}
}
