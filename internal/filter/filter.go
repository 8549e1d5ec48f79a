// ABOUTME: Thread filter contract and the criterion-based implementation
// ABOUTME: Selects thread ids to display and tallies per-category counts

package filter

import (
	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/thread"
)

// Criterion names a user-selectable filter over threads.
type Criterion string

const (
	// CriterionAll includes every thread.
	CriterionAll Criterion = "all"
	// CriterionOpen includes threads whose root is not settled
	// (not Closed and not Agreed).
	CriterionOpen Criterion = "open"
	// CriterionMine includes threads containing a post by the current user.
	CriterionMine Criterion = "mine"
	// CriterionItem includes threads whose root is linked to a review item.
	CriterionItem Criterion = "item"
)

// Criteria lists the selectable criteria in menu order.
func Criteria() []Criterion {
	return []Criterion{CriterionAll, CriterionOpen, CriterionMine, CriterionItem}
}

// Filter is the selection contract the assembly pipeline consumes. It must
// be side-effect-free with respect to the posts it is given.
type Filter interface {
	// FilteredThreadIDs returns the thread ids to include. With
	// applyFilter false every thread id present in posts is returned.
	FilteredThreadIDs(posts []*models.Post, r *thread.Resolver, applyFilter bool) map[models.ThreadID]bool

	// FilteredThreadCounts returns per-category counts from the most
	// recent FilteredThreadIDs call, for the summary line.
	FilteredThreadCounts() map[string]int
}

// CriterionFilter applies one active Criterion. The current user id feeds
// the "mine" criterion; zero means no user is signed in.
type CriterionFilter struct {
	Active Criterion
	UserID int64

	counts map[string]int
}

// NewCriterionFilter creates a filter with the given active criterion.
func NewCriterionFilter(active Criterion, userID int64) *CriterionFilter {
	return &CriterionFilter{Active: active, UserID: userID}
}

// FilteredThreadIDs implements Filter. Counts for every category are
// recomputed on each call regardless of the active criterion, so the
// summary stays consistent with the batch just examined.
func (f *CriterionFilter) FilteredThreadIDs(posts []*models.Post, r *thread.Resolver, applyFilter bool) map[models.ThreadID]bool {
	type threadFacts struct {
		root *models.Post
		mine bool
	}
	facts := make(map[models.ThreadID]*threadFacts)
	var order []models.ThreadID

	for _, p := range posts {
		tid := r.ResolveThreadID(p)
		tf, ok := facts[tid]
		if !ok {
			tf = &threadFacts{}
			facts[tid] = tf
			order = append(order, tid)
		}
		if models.ThreadIDFor(p) == tid {
			tf.root = p
		}
		if p.PosterInfo != nil && f.UserID != 0 && p.PosterInfo.ID == f.UserID {
			tf.mine = true
		}
	}

	f.counts = map[string]int{
		string(CriterionAll):  0,
		string(CriterionOpen): 0,
		string(CriterionMine): 0,
		string(CriterionItem): 0,
	}

	included := make(map[models.ThreadID]bool, len(order))
	for _, tid := range order {
		tf := facts[tid]
		open := tf.root == nil || (tf.root.ForumStatus != models.StatusClosed && tf.root.ForumStatus != models.StatusAgreed)
		item := tf.root != nil && tf.root.HasItem()

		f.counts[string(CriterionAll)]++
		if open {
			f.counts[string(CriterionOpen)]++
		}
		if tf.mine {
			f.counts[string(CriterionMine)]++
		}
		if item {
			f.counts[string(CriterionItem)]++
		}

		if !applyFilter {
			included[tid] = true
			continue
		}
		switch f.Active {
		case CriterionOpen:
			included[tid] = open
		case CriterionMine:
			included[tid] = tf.mine
		case CriterionItem:
			included[tid] = item
		default:
			included[tid] = true
		}
	}
	return included
}

// FilteredThreadCounts implements Filter.
func (f *CriterionFilter) FilteredThreadCounts() map[string]int {
	if f.counts == nil {
		return map[string]int{}
	}
	return f.counts
}
