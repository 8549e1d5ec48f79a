// ABOUTME: In-memory post store for the active locale's fetched batch
// ABOUTME: Id-keyed lookups plus the feed-order slice consumers iterate

package store

import (
	"fmt"
	"time"

	"github.com/perlover/cldrforum/internal/models"
)

// PostStore holds the most recently loaded flat set of posts for one active
// locale, keyed by post id. Exactly one locale's posts live in a store at a
// time; the session resets it on locale switch. Sublocale posts (a "fr" post
// inside an "fr_CA" batch) are fine: identity is purely by post id.
type PostStore struct {
	byID        map[int64]*models.Post
	feed        []*models.Post
	lastUpdated time.Time
}

// New creates an empty store.
func New() *PostStore {
	return &PostStore{byID: make(map[int64]*models.Post)}
}

// Reset clears all posts and the last-update stamp. Called when the active
// locale changes.
func (s *PostStore) Reset() {
	s.byID = make(map[int64]*models.Post)
	s.feed = nil
	s.lastUpdated = time.Time{}
}

// Update merges a batch into the store, overwriting on id collision (the
// server is authoritative), validates each post, and stamps the update time.
// Feed order is preserved exactly as supplied; a post re-sent with an id the
// store already holds keeps its original feed position.
func (s *PostStore) Update(posts []*models.Post) error {
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("reject post batch: %w", err)
		}
	}
	for _, p := range posts {
		if _, seen := s.byID[p.ID]; !seen {
			s.feed = append(s.feed, p)
		} else {
			for i, q := range s.feed {
				if q.ID == p.ID {
					s.feed[i] = p
					break
				}
			}
		}
		s.byID[p.ID] = p
	}
	s.lastUpdated = time.Now()
	return nil
}

// Get returns the post with the given id, or ok=false.
func (s *PostStore) Get(id int64) (*models.Post, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Feed returns the posts in the order they were supplied by the server.
// Callers must not mutate the returned slice.
func (s *PostStore) Feed() []*models.Post {
	return s.feed
}

// Len returns the number of distinct posts held.
func (s *PostStore) Len() int {
	return len(s.byID)
}

// LastUpdated returns when Update last succeeded; zero after Reset.
func (s *PostStore) LastUpdated() time.Time {
	return s.lastUpdated
}
