package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/shopvoice/backend/internal/domain"
	"github.com/shopvoice/backend/internal/infrastructure/feed"
)

// CatalogStoreConfig holds configuration for the catalog store.
type CatalogStoreConfig struct {
	SiteOrigin         string
	AssetPrefix        string
	HeaderMode         feed.HeaderMode
	EnableDebugLogging bool
}

// CatalogStore owns the memoized catalog as an explicit state machine
// {Unloaded, Loading, Ready, Error}. The first Load fetches, parses, and
// normalizes the feed; concurrent callers share the in-flight load instead
// of issuing duplicate fetches. Reload bypasses caching and replaces the
// whole catalog atomically.
type CatalogStore struct {
	fetcher            domain.FeedFetcher
	normalizeOpts      feed.NormalizeOptions
	headerMode         feed.HeaderMode
	enableDebugLogging bool

	mu       sync.Mutex
	state    domain.CatalogState
	items    []domain.CatalogItem
	loadErr  error
	inflight chan struct{} // closed when the active load settles
}

// NewCatalogStore creates a catalog store backed by the given fetcher.
func NewCatalogStore(fetcher domain.FeedFetcher, config CatalogStoreConfig) *CatalogStore {
	return &CatalogStore{
		fetcher: fetcher,
		normalizeOpts: feed.NormalizeOptions{
			SiteOrigin:  config.SiteOrigin,
			AssetPrefix: config.AssetPrefix,
		},
		headerMode:         config.HeaderMode,
		enableDebugLogging: config.EnableDebugLogging,
		state:              domain.CatalogUnloaded,
	}
}

// Load returns the memoized catalog, fetching it on first use. A failed
// load leaves the store in the Error state and the next Load re-attempts.
func (s *CatalogStore) Load(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.load(ctx, false)
}

// Reload forces a cache-busting re-fetch and atomically replaces the
// catalog. There is no partial update: until the new load settles, readers
// that were already fanned in keep the previous snapshot.
func (s *CatalogStore) Reload(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.load(ctx, true)
}

// Invalidate drops the memoized catalog so the next Load fetches afresh.
// A load already in flight is left alone.
func (s *CatalogStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.CatalogLoading {
		return
	}
	s.state = domain.CatalogUnloaded
	s.items = nil
	s.loadErr = nil
}

// State reports the current lifecycle state.
func (s *CatalogStore) State() domain.CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CatalogStore) load(ctx context.Context, force bool) ([]domain.CatalogItem, error) {
	s.mu.Lock()

	if !force && s.state == domain.CatalogReady {
		items := s.items
		s.mu.Unlock()
		return items, nil
	}

	if s.state == domain.CatalogLoading {
		done := s.inflight
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
		}

		if !force {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.state == domain.CatalogReady {
				return s.items, nil
			}
			return nil, s.loadErr
		}

		// Forced reload still wants a fresh fetch after the shared one.
		s.mu.Lock()
	}

	s.state = domain.CatalogLoading
	done := make(chan struct{})
	s.inflight = done
	s.mu.Unlock()

	items, err := s.fetchAndBuild(ctx, force)

	s.mu.Lock()
	if err != nil {
		s.state = domain.CatalogError
		s.loadErr = err
		s.items = nil
	} else {
		s.state = domain.CatalogReady
		s.items = items
		s.loadErr = nil
	}
	close(done)
	s.mu.Unlock()

	return items, err
}

// fetchAndBuild runs the fetch -> parse -> normalize pipeline.
func (s *CatalogStore) fetchAndBuild(ctx context.Context, bustCache bool) ([]domain.CatalogItem, error) {
	text, err := s.fetcher.FetchCatalog(ctx, bustCache)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: feed returned no data", domain.ErrCatalogEmpty)
	}

	rows := feed.Parse(text, s.headerMode)
	items := feed.Normalize(rows, s.normalizeOpts)

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in feed", domain.ErrCatalogEmpty)
	}

	if s.enableDebugLogging {
		log.Printf("[CATALOG] Loaded %d items from %d rows", len(items), len(rows))
	}

	return items, nil
}
