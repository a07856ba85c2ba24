package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/amityadav/searchclone/internal/core"
	"github.com/amityadav/searchclone/internal/serpapi"
)

// Services groups all service dependencies for REST handlers
type Services struct {
	SearchCore *core.SearchCore
}

// CreateRESTHandler creates REST API endpoints
func CreateRESTHandler(services Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/search":
			handleSearch(w, r, services.SearchCore)
		case "/health":
			writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		case "/":
			writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Google Search Clone API"})
		default:
			writeError(w, http.StatusNotFound, "not found")
		}
	}
}

func handleSearch(w http.ResponseWriter, r *http.Request, searchCore *core.SearchCore) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !r.URL.Query().Has("query") {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	query := r.URL.Query().Get("query")
	log.Printf("[REST] Search request received for query: %s", query)

	result, err := searchCore.Search(r.Context(), query)
	if err != nil {
		writeSearchError(w, query, err)
		return
	}

	log.Printf("[REST] Search successful for query: %s", query)
	writeJSON(w, http.StatusOK, result)
}

// writeSearchError maps provider failures onto user-facing status codes:
// credential rejections and unexpected errors are internal errors, rate
// limits and network failures tell the caller to try again later.
func writeSearchError(w http.ResponseWriter, query string, err error) {
	log.Printf("[REST] Search failed for query %q: %v", query, err)

	var statusErr *serpapi.StatusError
	var netErr *url.Error
	switch {
	case serpapi.IsAuthError(err):
		writeError(w, http.StatusInternalServerError, "API key authentication error. Please check your SerpAPI key.")
	case serpapi.IsRateLimitError(err):
		writeError(w, http.StatusServiceUnavailable, "Rate limit exceeded. Please try again later.")
	case errors.As(err, &statusErr):
		writeError(w, http.StatusInternalServerError, "External API error: "+statusErr.Error())
	case errors.As(err, &netErr):
		writeError(w, http.StatusServiceUnavailable, "Connection error when reaching search provider. Please try again later.")
	default:
		writeError(w, http.StatusInternalServerError, "Search failed: "+err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[REST] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
