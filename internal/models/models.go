// ABOUTME: Core data models for forum posts and thread identities
// ABOUTME: Defines the server wire shape plus validation at the ingest boundary

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NoParent is the sentinel parent id for a top-level post.
const NoParent int64 = -1

// ForumStatus is the workflow state a post carries. The set is open: the
// posting policy owns which values are offered, and unknown values coming
// off the wire are preserved as-is.
type ForumStatus string

const (
	StatusRequest     ForumStatus = "Request"
	StatusQuestion    ForumStatus = "Question"
	StatusInformation ForumStatus = "Information"
	StatusAgreed      ForumStatus = "Agreed"
	StatusDisputed    ForumStatus = "Disputed"
	StatusClosed      ForumStatus = "Closed"
)

// PosterInfo identifies the author of a post. A nil PosterInfo on a Post
// means the poster's account is no longer active.
type PosterInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Org           string `json:"org"`
	Email         string `json:"email,omitempty"`
	UserlevelName string `json:"userlevelName,omitempty"`
}

// Post is one server-supplied forum record. Posts arrive as a flat list;
// threading is derived client-side from the Parent pointers.
type Post struct {
	ID     int64 `json:"id"`
	Parent int64 `json:"parent"`

	// Locale is the review-content space the post belongs to. A reply's
	// locale may differ from its ancestors' (sublocales share threads).
	Locale string `json:"locale"`

	// Xpath is the opaque item-path the post discusses; empty means a
	// general (non-item) post.
	Xpath string `json:"xpath,omitempty"`

	Subject string `json:"subject"`
	Text    string `json:"text"`

	// DateMillis is the post time in epoch milliseconds. The server field
	// is named date_long; its unit is milliseconds everywhere in this
	// codebase.
	DateMillis int64 `json:"date_long"`

	PosterInfo  *PosterInfo `json:"posterInfo,omitempty"`
	ForumStatus ForumStatus `json:"forumStatus,omitempty"`
	Version     string      `json:"version,omitempty"`
}

// Time returns the post time as a time.Time.
func (p *Post) Time() time.Time {
	return time.UnixMilli(p.DateMillis)
}

// IsTopLevel reports whether the post declares no parent.
func (p *Post) IsTopLevel() bool {
	return p.Parent == NoParent
}

// HasItem reports whether the post is attached to a review item.
func (p *Post) HasItem() bool {
	return p.Xpath != ""
}

// PosterName returns the author name, or a placeholder when the poster's
// account is gone.
func (p *Post) PosterName() string {
	if p.PosterInfo == nil {
		return "(inactive user)"
	}
	return p.PosterInfo.Name
}

// Validate checks the fields the reconstruction engine depends on. Posts
// that fail validation must not enter the store.
func (p *Post) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("post has invalid id %d", p.ID)
	}
	if p.Locale == "" {
		return fmt.Errorf("post %d has empty locale", p.ID)
	}
	return nil
}

// ThreadID is the derived identity of a thread: the locale and id of the
// thread's root post, joined as "locale|id". It never appears on the wire.
type ThreadID string

// NewThreadID builds the thread id for a root post.
func NewThreadID(locale string, id int64) ThreadID {
	return ThreadID(locale + "|" + strconv.FormatInt(id, 10))
}

// ThreadIDFor returns the thread id a post would have as a thread root.
func ThreadIDFor(p *Post) ThreadID {
	return NewThreadID(p.Locale, p.ID)
}

// Parts splits a thread id back into locale and root post id.
func (t ThreadID) Parts() (locale string, id int64, err error) {
	i := strings.LastIndex(string(t), "|")
	if i < 0 {
		return "", 0, fmt.Errorf("malformed thread id %q", t)
	}
	id, err = strconv.ParseInt(string(t)[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed thread id %q: %w", t, err)
	}
	return string(t)[:i], id, nil
}
