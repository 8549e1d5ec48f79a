// ABOUTME: Final thread selection and ordering for display
// ABOUTME: Emits filtered threads newest-activity-first with a distinct count

package thread

import (
	"github.com/perlover/cldrforum/internal/models"
)

// Assembly is the neutral display-ready result: thread ids in final order
// plus the forests they name. Presentation-node construction happens in the
// render layer, never here.
type Assembly struct {
	Ordered []models.ThreadID
	Forests map[models.ThreadID]*Forest

	// ThreadCount is the number of distinct threads actually emitted. It
	// can be lower than the size of the filtered set, which may name ids
	// with no posts in the current batch.
	ThreadCount int
}

// Assemble walks the feed in server order (newest activity first overall,
// though not necessarily newest-first within a thread) and emits each
// included thread at the position of its first-encountered post. An emitted
// id is removed from the remaining set, so a thread is never emitted twice
// no matter how often later posts reference it. Dedup applies identically
// whether or not a filter was requested upstream.
func Assemble(feed []*models.Post, forests map[models.ThreadID]*Forest, included map[models.ThreadID]bool, r *Resolver) *Assembly {
	remaining := make(map[models.ThreadID]bool, len(included))
	for id, ok := range included {
		if ok {
			remaining[id] = true
		}
	}

	a := &Assembly{Forests: make(map[models.ThreadID]*Forest)}
	for _, p := range feed {
		tid := r.ResolveThreadID(p)
		if !remaining[tid] {
			continue
		}
		delete(remaining, tid)

		f, ok := forests[tid]
		if !ok {
			continue
		}
		a.Ordered = append(a.Ordered, tid)
		a.Forests[tid] = f
	}
	a.ThreadCount = len(a.Ordered)
	return a
}
