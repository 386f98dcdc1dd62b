package usecase

import (
	"sort"
	"strings"

	"github.com/shopvoice/backend/internal/domain"
)

// Scoring weights. The model is deliberately a substring/bag-of-tokens one:
// catalogs are tens of items and queries are short transcribed phrases, so
// stemmed or indexed search would be overkill.
const (
	phraseMatchScore = 120 // entire cleaned query appears in the search blob
	tokenMatchScore  = 22  // each query token found in the search blob
)

// Rank scores every catalog item against the cleaned query and returns the
// matches in descending score order. Ties keep original catalog order (the
// sort is stable), so output is deterministic. Zero-score items are
// excluded. An empty query returns the full catalog in original order as an
// explicit browse-all mode.
func Rank(items []domain.CatalogItem, cleanedQuery string) []domain.CatalogItem {
	query := strings.ToLower(strings.TrimSpace(cleanedQuery))
	if query == "" {
		out := make([]domain.CatalogItem, len(items))
		copy(out, items)
		return out
	}

	tokens := strings.Fields(query)

	type scoredItem struct {
		item  domain.CatalogItem
		score int
	}

	scored := make([]scoredItem, 0, len(items))
	for _, item := range items {
		score := scoreItem(item.SearchBlob, query, tokens)
		if score > 0 {
			scored = append(scored, scoredItem{item: item, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]domain.CatalogItem, len(scored))
	for i, s := range scored {
		ranked[i] = s.item
	}
	return ranked
}

// scoreItem computes the additive relevance score of one item.
func scoreItem(blob, query string, tokens []string) int {
	score := 0
	if strings.Contains(blob, query) {
		score += phraseMatchScore
	}
	for _, token := range tokens {
		if strings.Contains(blob, token) {
			score += tokenMatchScore
		}
	}
	return score
}
