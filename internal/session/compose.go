// ABOUTME: Compose path for new threads and replies
// ABOUTME: Enforces the reply contract and the posting policy, with outbox fallback

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/db"
	"github.com/perlover/cldrforum/internal/models"
)

// ErrQueued reports a submission that could not reach the server and was
// parked in the outbox instead. Callers match it with errors.Is.
var ErrQueued = errors.New("post queued for later submission")

// ComposeOptions returns the status labels offered for a new post. For a
// reply, firstPost decisions are made against the thread root, not the post
// being replied to.
func (s *Session) ComposeOptions(replyTo *models.Post) ([]models.ForumStatus, error) {
	if replyTo == nil {
		return s.policy.AllowedStatusOptions(false, nil, s.user), nil
	}
	root, err := s.ThreadRootFor(replyTo)
	if err != nil {
		return nil, err
	}
	return s.policy.AllowedStatusOptions(true, root, s.user), nil
}

// Compose submits a post. A reply inherits the thread root's locale and
// xpath regardless of what the draft carried, and its status must be one
// the policy offers. When the server is unreachable and a cache db is
// configured, the draft lands in the outbox instead of failing outright.
func (s *Session) Compose(ctx context.Context, draft *client.Draft, replyTo *models.Post) (*models.Post, error) {
	isReply := replyTo != nil
	var root *models.Post
	if isReply {
		var err error
		root, err = s.ThreadRootFor(replyTo)
		if err != nil {
			return nil, fmt.Errorf("resolve thread root: %w", err)
		}
		draft.Parent = replyTo.ID
		draft.Locale = root.Locale
		draft.Xpath = root.Xpath
	} else {
		draft.Parent = models.NoParent
	}

	if draft.Status != "" && !s.statusAllowed(isReply, root, draft.Status) {
		return nil, fmt.Errorf("status %q not permitted here", draft.Status)
	}

	posted, err := s.fetcher.SubmitPost(ctx, draft)
	if err != nil {
		if s.cache != nil && !client.IsAuthError(err) {
			if id, qerr := db.QueueDraft(s.cache, draft); qerr == nil {
				s.logger.Warn("submission failed, draft queued", "outbox_id", id, "error", err)
				return nil, fmt.Errorf("%w: %v", ErrQueued, err)
			}
		}
		return nil, err
	}
	return posted, nil
}

// FlushOutbox submits every queued draft, stopping at the first failure so
// order is preserved. Returns the number of drafts sent.
func (s *Session) FlushOutbox(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	drafts, err := db.PendingDrafts(s.cache)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, q := range drafts {
		if _, err := s.fetcher.SubmitPost(ctx, &q.Draft); err != nil {
			return sent, fmt.Errorf("flush outbox draft %d: %w", q.ID, err)
		}
		if err := db.DeleteDraft(s.cache, q.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (s *Session) statusAllowed(isReply bool, root *models.Post, status models.ForumStatus) bool {
	for _, opt := range s.policy.AllowedStatusOptions(isReply, root, s.user) {
		if opt == status {
			return true
		}
	}
	return false
}
