package domain

import "context"

// FeedFetcher defines the interface for retrieving the raw catalog CSV text.
// bustCache forces a fresh fetch, bypassing any intermediary caching.
type FeedFetcher interface {
	FetchCatalog(ctx context.Context, bustCache bool) (string, error)
}

// CatalogProvider defines the interface for the memoized catalog store.
type CatalogProvider interface {
	Load(ctx context.Context) ([]CatalogItem, error)
	Reload(ctx context.Context) ([]CatalogItem, error)
	State() CatalogState
}

// TokenIssuer defines the interface for minting short-lived realtime
// client secrets handed to the browser widget.
type TokenIssuer interface {
	MintClientSecret(ctx context.Context) (string, error)
}
