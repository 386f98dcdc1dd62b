package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopvoice/backend/internal/domain"
	"github.com/shopvoice/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
	tokenIssuer   domain.TokenIssuer
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService, tokenIssuer domain.TokenIssuer) *Handler {
	return &Handler{
		searchService: searchService,
		tokenIssuer:   tokenIssuer,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":  "healthy",
		"service": "shopvoice-backend",
		"version": "1.0.0",
	}
	if h.searchService != nil {
		status["catalog"] = h.searchService.CatalogState().String()
	}
	c.JSON(http.StatusOK, status)
}

// IssueToken mints an ephemeral realtime client secret for the widget
func (h *Handler) IssueToken(c *gin.Context) {
	if h.tokenIssuer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "realtime credentials not configured"})
		return
	}

	value, err := h.tokenIssuer.MintClientSecret(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create client secret"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": value})
}

// Search handles a fresh free-text search and returns the first result page
func (h *Handler) Search(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "search not configured"})
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a query field"})
		return
	}

	page, err := h.searchService.Search(c.Request.Context(), req.Query)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// MoreResults advances the current search session by one page
func (h *Handler) MoreResults(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "search not configured"})
		return
	}

	page, err := h.searchService.More()
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no active search session"})
			return
		}
		h.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ReloadCatalog forces a cache-busting re-fetch of the catalog feed
func (h *Handler) ReloadCatalog(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "search not configured"})
		return
	}

	count, err := h.searchService.ReloadCatalog(c.Request.Context())
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "reloaded",
		"catalogSize": count,
	})
}

// respondSearchError maps the catalog error taxonomy to explicit states so
// the rendering layer can tell "load failed" from "catalog empty" from
// plain bad input. Nothing here panics across the boundary.
func (h *Handler) respondSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "state": "invalid"})
	case errors.Is(err, domain.ErrCatalogEmpty):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog is empty", "state": "empty"})
	case errors.Is(err, domain.ErrFeedUnavailable), errors.Is(err, domain.ErrCatalogNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog could not be loaded", "state": "error"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out", "state": "error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "state": "error"})
	}
}
