package usecase

import "github.com/shopvoice/backend/internal/domain"

// DefaultPageSize is the fixed result page size when config leaves it unset.
const DefaultPageSize = 6

// Page slices the ranked result snapshot at the given offset. Requesting a
// page beyond the end yields an empty slice and exhausted=true; that is the
// normal terminal state of paging, not an error. Page never re-ranks.
func Page(ranked []domain.CatalogItem, offset, pageSize int) ([]domain.CatalogItem, bool) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if offset >= len(ranked) {
		return []domain.CatalogItem{}, true
	}

	end := offset + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}

	page := make([]domain.CatalogItem, end-offset)
	copy(page, ranked[offset:end])
	return page, false
}
