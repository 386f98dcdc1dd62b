package domain

import "errors"

var (
	// ErrFeedUnavailable is returned when the catalog source cannot be fetched
	ErrFeedUnavailable = errors.New("catalog feed unavailable")

	// ErrCatalogEmpty is returned when the feed loads but yields no usable items
	ErrCatalogEmpty = errors.New("catalog is empty")

	// ErrCatalogNotReady is returned when search is attempted before a successful load
	ErrCatalogNotReady = errors.New("catalog not loaded")

	// ErrNoActiveSession is returned when "more results" is requested with no prior search
	ErrNoActiveSession = errors.New("no active search session")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRealtimeAPIFailure is returned when minting an ephemeral client secret fails
	ErrRealtimeAPIFailure = errors.New("realtime client secret request failed")
)
