// ABOUTME: ForumSession owning one locale's reconstruction pipeline
// ABOUTME: Fetch, rebuild, compose, and stale-response supersession

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/db"
	"github.com/perlover/cldrforum/internal/filter"
	"github.com/perlover/cldrforum/internal/models"
	"github.com/perlover/cldrforum/internal/policy"
	"github.com/perlover/cldrforum/internal/render"
	"github.com/perlover/cldrforum/internal/store"
	"github.com/perlover/cldrforum/internal/thread"
)

// ErrStaleFetch reports a fetch response that arrived after a newer fetch
// was issued. It is a supersession outcome, not a failure to surface to the
// end user.
var ErrStaleFetch = errors.New("stale fetch superseded")

// ErrNoPosts reports a rebuild attempted before any batch was loaded.
var ErrNoPosts = errors.New("no posts loaded")

// Policy is the posting-policy contract consumed when composing.
type Policy interface {
	AllowedStatusOptions(isReply bool, firstPost *models.Post, u policy.User) []models.ForumStatus
	CanClose(isReply bool, firstPost *models.Post, u policy.User) bool
}

// Result is the display-ready outcome of a load or rebuild: thread ids in
// final order, their forests, one opaque rendered fragment per thread, and
// the summary counts.
type Result struct {
	Locale      string
	Ordered     []models.ThreadID
	Forests     map[models.ThreadID]*thread.Forest
	Fragments   []string
	ThreadCount int
	Counts      map[string]int
}

// Session owns the reconstruction pipeline for one active locale. All
// collaborators are constructor-injected; there is no ambient state, so
// multiple sessions coexist freely (tests rely on that).
type Session struct {
	mu sync.Mutex

	locale     string
	generation uint64

	store    *store.PostStore
	resolver *thread.Resolver

	fetcher  client.Fetcher
	filter   filter.Filter
	renderer render.Renderer
	policy   Policy
	user     policy.User

	// cache is the optional sqlite feed cache; nil disables persistence.
	cache  *sql.DB
	logger *slog.Logger

	lastCounts map[string]int
}

// Options carries the collaborators a session needs.
type Options struct {
	Fetcher  client.Fetcher
	Filter   filter.Filter
	Renderer render.Renderer
	Policy   Policy
	User     policy.User
	Cache    *sql.DB
	Logger   *slog.Logger
}

// New creates a session with no active locale.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewTextRenderer()
	}
	if opts.Policy == nil {
		opts.Policy = policy.StatusMenu{}
	}
	s := &Session{
		store:    store.New(),
		fetcher:  opts.Fetcher,
		filter:   opts.Filter,
		renderer: opts.Renderer,
		policy:   opts.Policy,
		user:     opts.User,
		cache:    opts.Cache,
		logger:   opts.Logger,
	}
	s.resolver = thread.NewResolver(s.store, s.logger)
	return s
}

// Locale returns the active locale, empty before the first load.
func (s *Session) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// ActiveFilter returns the filter collaborator. Callers that change its
// criterion should follow with RebuildFromCache.
func (s *Session) ActiveFilter() filter.Filter {
	return s.filter
}

// AdoptLocale sets the active locale without fetching, for offline use of
// RebuildFromCache against a previously cached feed. Adopting a different
// locale clears in-memory state exactly like a load would.
func (s *Session) AdoptLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locale == s.locale {
		return
	}
	s.generation++
	s.store.Reset()
	s.resolver = thread.NewResolver(s.store, s.logger)
	s.lastCounts = nil
	s.locale = locale
}

// LoadAndRender fetches the locale's feed, reconstructs and filters its
// threads, and returns the assembled result. Switching locale clears all
// prior state first. If a newer load was issued while this one's response
// was in flight, the stale response is discarded and ErrStaleFetch returned.
func (s *Session) LoadAndRender(ctx context.Context, locale string) (*Result, error) {
	gen := s.beginLoad(locale)

	posts, err := s.fetcher.FetchPosts(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", locale, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || locale != s.locale {
		s.logger.Debug("discarding stale fetch response", "locale", locale, "generation", gen)
		return nil, ErrStaleFetch
	}

	if err := s.store.Update(posts); err != nil {
		return nil, err
	}
	// A fresh batch invalidates every memoized walk.
	s.resolver = thread.NewResolver(s.store, s.logger)

	if s.cache != nil {
		if err := db.SaveFeed(s.cache, locale, s.store.Feed()); err != nil {
			s.logger.Warn("feed cache write failed", "locale", locale, "error", err)
		}
	}

	return s.assembleLocked(render.ModeFull, true)
}

// RebuildFromCache reruns reconstruction, filtering, and assembly against
// the already-loaded post set, without network. The preview context skips
// the user filter so a thread being composed is always visible.
func (s *Session) RebuildFromCache(mode render.Mode) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Len() == 0 {
		if err := s.restoreFromDiskLocked(); err != nil {
			return nil, err
		}
	}
	return s.assembleLocked(mode, mode != render.ModePreview)
}

// ThreadRootFor returns the first post of the thread containing p. Replies
// must inherit the root's locale and xpath, never the immediate parent's.
func (s *Session) ThreadRootFor(p *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.FirstPostInThread(p)
}

// Post looks up a post by id in the active batch.
func (s *Session) Post(id int64) (*models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// SummaryCounts returns the per-category thread counts from the most recent
// assembly.
func (s *Session) SummaryCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastCounts == nil {
		return map[string]int{}
	}
	return s.lastCounts
}

// beginLoad bumps the generation and, on locale change, resets all derived
// state so stale cross-locale posts can never mix into the new view.
func (s *Session) beginLoad(locale string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if locale != s.locale {
		if s.locale != "" {
			s.logger.Info("switching locale", "from", s.locale, "to", locale)
			if s.cache != nil {
				if err := db.ClearFeed(s.cache, s.locale); err != nil {
					s.logger.Warn("feed cache clear failed", "locale", s.locale, "error", err)
				}
			}
		}
		s.store.Reset()
		s.resolver = thread.NewResolver(s.store, s.logger)
		s.lastCounts = nil
		s.locale = locale
	}
	return s.generation
}

func (s *Session) restoreFromDiskLocked() error {
	if s.cache == nil || s.locale == "" {
		return ErrNoPosts
	}
	posts, err := db.LoadFeed(s.cache, s.locale)
	if err != nil {
		return fmt.Errorf("restore cached feed: %w", err)
	}
	if len(posts) == 0 {
		return ErrNoPosts
	}
	if err := s.store.Update(posts); err != nil {
		return err
	}
	s.resolver = thread.NewResolver(s.store, s.logger)
	return nil
}

func (s *Session) assembleLocked(mode render.Mode, applyFilter bool) (*Result, error) {
	feed := s.store.Feed()
	forests, _ := thread.BuildForest(feed, s.resolver)
	included := s.filter.FilteredThreadIDs(feed, s.resolver, applyFilter)
	s.lastCounts = s.filter.FilteredThreadCounts()

	assembly := thread.Assemble(feed, forests, included, s.resolver)

	fragments := make([]string, 0, len(assembly.Ordered))
	for _, tid := range assembly.Ordered {
		f := assembly.Forests[tid]
		if f == nil || f.Root == nil {
			fragments = append(fragments, s.renderer.RenderPlaceholder(tid))
			continue
		}
		fragments = append(fragments, s.renderer.RenderThread(f, mode))
	}

	return &Result{
		Locale:      s.locale,
		Ordered:     assembly.Ordered,
		Forests:     assembly.Forests,
		Fragments:   fragments,
		ThreadCount: assembly.ThreadCount,
		Counts:      s.lastCounts,
	}, nil
}
