package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/shopvoice/backend/internal/domain"
)

// SearchSession is the ranked-and-paged result state for one user query.
// A new search replaces the whole session (last-write-wins); "more results"
// only advances the offset over the same ranking snapshot.
type SearchSession struct {
	Query         string
	CleanedQuery  string
	RankedResults []domain.CatalogItem
	PageOffset    int
	CatalogSize   int
	Substituted   bool
}

// SearchServiceConfig holds configuration for the search service.
type SearchServiceConfig struct {
	PageSize int
	// FallbackQuery, when non-empty, is ranked in place of a query that
	// matched nothing. Off by default: substituting unrequested results
	// must be an explicit product decision, and responses carry a flag
	// when it happens.
	FallbackQuery      string
	EnableDebugLogging bool
}

// SearchService funnels every query - typed or transcribed - through the
// interpret -> rank -> page pipeline over the memoized catalog.
type SearchService struct {
	catalog     domain.CatalogProvider
	interpreter *QueryInterpreter

	pageSize           int
	fallbackQuery      string
	enableDebugLogging bool

	mu      sync.Mutex
	session *SearchSession
}

// NewSearchService creates a search service with dependencies.
func NewSearchService(catalog domain.CatalogProvider, interpreter *QueryInterpreter, config SearchServiceConfig) *SearchService {
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &SearchService{
		catalog:            catalog,
		interpreter:        interpreter,
		pageSize:           pageSize,
		fallbackQuery:      config.FallbackQuery,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search runs a fresh query and returns the first result page. The catalog
// is loaded lazily; a search arriving before the first load completes
// awaits the shared in-flight load.
func (s *SearchService) Search(ctx context.Context, rawQuery string) (*domain.ResultPage, error) {
	items, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	cleaned := s.interpreter.Clean(rawQuery)
	ranked := Rank(items, cleaned)

	substituted := false
	if len(ranked) == 0 && cleaned != "" && s.fallbackQuery != "" {
		fallback := s.interpreter.Clean(s.fallbackQuery)
		ranked = Rank(items, fallback)
		substituted = len(ranked) > 0
		if s.enableDebugLogging && substituted {
			log.Printf("[SEARCH] %q matched nothing; substituted fallback %q", cleaned, fallback)
		}
	}

	session := &SearchSession{
		Query:         rawQuery,
		CleanedQuery:  cleaned,
		RankedResults: ranked,
		PageOffset:    0,
		CatalogSize:   len(items),
		Substituted:   substituted,
	}

	s.mu.Lock()
	s.session = session
	page := s.pageLocked(session)
	s.mu.Unlock()

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %q -> %q: %d matches of %d items", rawQuery, cleaned, len(ranked), len(items))
	}

	return page, nil
}

// More advances the current session by one page. It never re-ranks, so the
// continuation stays consistent with the original snapshot even if the
// catalog was reloaded in between. Past the end it returns an empty page
// with the exhausted flag set.
func (s *SearchService) More() (*domain.ResultPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, domain.ErrNoActiveSession
	}

	s.session.PageOffset += s.pageSize
	return s.pageLocked(s.session), nil
}

// ReloadCatalog forces a fresh feed fetch and reports the new item count.
// The active session keeps its ranking snapshot.
func (s *SearchService) ReloadCatalog(ctx context.Context) (int, error) {
	items, err := s.catalog.Reload(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// CatalogState exposes the store lifecycle for status reporting.
func (s *SearchService) CatalogState() domain.CatalogState {
	return s.catalog.State()
}

// pageLocked builds the result page for the session's current offset.
// Caller holds s.mu.
func (s *SearchService) pageLocked(session *SearchSession) *domain.ResultPage {
	items, exhausted := Page(session.RankedResults, session.PageOffset, s.pageSize)

	return &domain.ResultPage{
		Items:        items,
		Query:        session.Query,
		CleanedQuery: session.CleanedQuery,
		Offset:       session.PageOffset,
		PageSize:     s.pageSize,
		TotalMatches: len(session.RankedResults),
		CatalogSize:  session.CatalogSize,
		Exhausted:    exhausted,
		Substituted:  session.Substituted,
	}
}
