// ABOUTME: Posting-policy collaborator for the compose path
// ABOUTME: Decides offered status labels and who may close a thread

package policy

import (
	"github.com/perlover/cldrforum/internal/models"
)

// User is the signed-in reviewer as the policy sees them.
type User struct {
	ID    int64
	Name  string
	Level string
}

// TC-level reviewers can settle any thread.
const levelTC = "tc"

// StatusMenu is the default posting policy, mirroring the review server's
// status menu rules.
type StatusMenu struct{}

// AllowedStatusOptions returns the ordered status labels offered when
// composing. New threads open with a request-style status; replies may move
// the discussion along, and a reply to a closed thread can only acknowledge
// the closure.
func (StatusMenu) AllowedStatusOptions(isReply bool, firstPost *models.Post, u User) []models.ForumStatus {
	if !isReply {
		return []models.ForumStatus{
			models.StatusRequest,
			models.StatusQuestion,
			models.StatusInformation,
		}
	}

	if firstPost != nil && firstPost.ForumStatus == models.StatusClosed {
		return []models.ForumStatus{models.StatusClosed}
	}

	opts := []models.ForumStatus{
		models.StatusInformation,
		models.StatusQuestion,
		models.StatusAgreed,
		models.StatusDisputed,
	}
	if CanCloseThread(isReply, firstPost, u) {
		opts = append(opts, models.StatusClosed)
	}
	return opts
}

// CanClose reports whether the user may close the thread from this post.
func (StatusMenu) CanClose(isReply bool, firstPost *models.Post, u User) bool {
	return CanCloseThread(isReply, firstPost, u)
}

// CanCloseThread is the shared rule: only a reply can close, and only by the
// thread opener or a TC-level reviewer.
func CanCloseThread(isReply bool, firstPost *models.Post, u User) bool {
	if !isReply || firstPost == nil {
		return false
	}
	if u.Level == levelTC {
		return true
	}
	return firstPost.PosterInfo != nil && firstPost.PosterInfo.ID == u.ID
}
