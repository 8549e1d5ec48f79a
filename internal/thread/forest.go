// ABOUTME: Per-thread forest construction from the flat post list
// ABOUTME: Two-pass build so children may precede parents in the feed

package thread

import (
	"github.com/perlover/cldrforum/internal/models"
)

// Node is one post's position inside a thread's tree. Children appear in
// feed order.
type Node struct {
	Post     *models.Post
	Children []*Node
}

// Forest is the reconstructed tree for one thread: the root post's node plus
// every descendant, with orphans (declared parent absent from the batch)
// reparented directly under the root.
type Forest struct {
	ID   models.ThreadID
	Root *Node

	// byID indexes every node in this thread, used during attachment.
	byID map[int64]*Node
}

// PostCount returns the number of posts in the thread.
func (f *Forest) PostCount() int {
	return len(f.byID)
}

// BuildForest groups posts into one Forest per distinct thread id. Thread
// order in the returned map is not meaningful; Threads preserves first-
// encounter order for callers that need it.
//
// The build is two passes. Pass 1 creates a node per post and decides each
// thread's root, so attachment never depends on feed order. Pass 2 attaches
// each non-root node to its declared parent when that parent is part of the
// same thread in this batch, and otherwise directly under the thread root.
func BuildForest(posts []*models.Post, r *Resolver) (map[models.ThreadID]*Forest, []models.ThreadID) {
	forests := make(map[models.ThreadID]*Forest)
	var order []models.ThreadID

	// Pass 1: a node per post, a forest per distinct thread id.
	nodes := make(map[int64]*Node, len(posts))
	for _, p := range posts {
		n := &Node{Post: p}
		nodes[p.ID] = n

		tid := r.ResolveThreadID(p)
		f, ok := forests[tid]
		if !ok {
			f = &Forest{ID: tid, byID: make(map[int64]*Node)}
			forests[tid] = f
			order = append(order, tid)
		}
		f.byID[p.ID] = n

		// The thread's root is the post whose own identity is the
		// thread id; for a corrupt singleton that is the post itself.
		if models.ThreadIDFor(p) == tid {
			f.Root = n
		}
	}

	// A thread whose root post is not part of this batch still renders:
	// promote its first-seen post to root.
	for _, tid := range order {
		f := forests[tid]
		if f.Root != nil {
			continue
		}
		for _, p := range posts {
			if n, ok := f.byID[p.ID]; ok {
				f.Root = n
				break
			}
		}
	}

	// Pass 2: attachment.
	for _, p := range posts {
		tid := r.ResolveThreadID(p)
		f := forests[tid]
		n := f.byID[p.ID]
		if n == f.Root {
			continue
		}
		if parent, ok := f.byID[p.Parent]; ok && parent != n {
			parent.Children = append(parent.Children, n)
			continue
		}
		// MissingAncestor: attach under the thread root.
		f.Root.Children = append(f.Root.Children, n)
	}

	return forests, order
}
