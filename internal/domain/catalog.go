package domain

// CatalogItem is the canonical searchable unit produced by feed normalization.
// Every item has a non-empty SKU; SearchBlob is derived from the other fields
// at construction time and never mutated independently.
type CatalogItem struct {
	Title      string `json:"title"`
	ProductURL string `json:"productUrl"`
	ImageURL   string `json:"imageUrl"`
	Price      string `json:"price"`
	SKU        string `json:"sku"`
	Descriptor string `json:"descriptor,omitempty"`
	SearchBlob string `json:"-"`
}

// FallbackSKU is the identifier of last resort for rows with no sku column,
// no resolvable product URL, and no title.
const FallbackSKU = "unknown-item"

// CatalogState tracks the lifecycle of the memoized catalog.
type CatalogState int

const (
	CatalogUnloaded CatalogState = iota
	CatalogLoading
	CatalogReady
	CatalogError
)

// String returns a human-readable state name for logs and API responses.
func (s CatalogState) String() string {
	switch s {
	case CatalogUnloaded:
		return "unloaded"
	case CatalogLoading:
		return "loading"
	case CatalogReady:
		return "ready"
	case CatalogError:
		return "error"
	default:
		return "unknown"
	}
}

// SearchRequest represents a free-text search submission from the widget,
// typed or transcribed from voice.
type SearchRequest struct {
	Query string `json:"query"`
}

// ResultPage is one page of a ranked result set plus the metadata the
// rendering layer needs (count, offset, exhaustion).
type ResultPage struct {
	Items        []CatalogItem `json:"items"`
	Query        string        `json:"query"`
	CleanedQuery string        `json:"cleanedQuery"`
	Offset       int           `json:"offset"`
	PageSize     int           `json:"pageSize"`
	TotalMatches int           `json:"totalMatches"`
	CatalogSize  int           `json:"catalogSize"`
	Exhausted    bool          `json:"exhausted"`
	Substituted  bool          `json:"substituted,omitempty"`
}
