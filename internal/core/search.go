package core

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Provider issues raw requests against the search provider. Implemented by
// *serpapi.Client.
type Provider interface {
	Request(ctx context.Context, params map[string]string) (map[string]any, error)
}

// SearchCore aggregates web, local and image search results into a single
// response document and synthesizes a textual answer from them.
type SearchCore struct {
	provider Provider
}

// NewSearchCore creates the search orchestration logic.
func NewSearchCore(p Provider) *SearchCore {
	return &SearchCore{provider: p}
}

const (
	localResultLimit = 3
	kgImageLimit     = 10
	resultPageSize   = "10"

	emptyQueryPrompt = "Please provide a search query."
)

// Search fans out web, local and image searches for the query, merges the
// results per the response schema and attaches the synthesized ai_response.
// A blank query short-circuits to a fixed empty response with no network
// activity. Any error from the three primary calls fails the whole request.
func (c *SearchCore) Search(ctx context.Context, query string) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		log.Printf("[Core] Empty query provided")
		return &SearchResponse{
			OrganicResults:   []OrganicResult{},
			RelatedQuestions: []any{},
			RelatedSearches:  []any{},
			LocalResults:     []LocalResult{},
			AIResponse:       emptyQueryPrompt,
		}, nil
	}

	log.Printf("[Core] Processing search for query: %s", query)

	webParams := map[string]string{
		"q":             query,
		"engine":        "google",
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
		"num":           resultPageSize,
	}
	localParams := map[string]string{
		"q":             query,
		"engine":        "google_local",
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
		"location":      "United States",
	}
	imageParams := map[string]string{
		"q":             query,
		"engine":        "google_images",
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
		"num":           resultPageSize,
	}

	// All three settle before Wait returns; the first error cancels the
	// shared context so in-flight siblings abort, and is what propagates.
	var searchData, localData, imagesData map[string]any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		searchData, err = c.provider.Request(gctx, webParams)
		return err
	})
	g.Go(func() error {
		var err error
		localData, err = c.provider.Request(gctx, localParams)
		return err
	})
	g.Go(func() error {
		var err error
		imagesData, err = c.provider.Request(gctx, imageParams)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		OrganicResults:   projectOrganicResults(searchData["organic_results"]),
		KnowledgeGraph:   projectKnowledgeGraph(searchData["knowledge_graph"], imagesData["images_results"]),
		RelatedQuestions: asList(searchData["related_questions"]),
		RelatedSearches:  asList(searchData["related_searches"]),
		LocalResults:     projectLocalResults(localData["local_results"]),
	}

	token := resolveAIOverviewToken(searchData["ai_overview"])
	resp.AIResponse = c.generateAIResponse(ctx, query, resp.OrganicResults, resp.KnowledgeGraph, token)
	return resp, nil
}

func projectOrganicResults(raw any) []OrganicResult {
	results := []OrganicResult{}
	for _, item := range asList(raw) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		results = append(results, OrganicResult{
			Title:   asString(entry["title"]),
			Link:    asString(entry["link"]),
			Snippet: asString(entry["snippet"]),
		})
	}
	return results
}

func projectKnowledgeGraph(raw, rawImages any) *KnowledgeGraph {
	entry, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	images := asList(rawImages)
	if len(images) > kgImageLimit {
		images = images[:kgImageLimit]
	}
	return &KnowledgeGraph{
		Title:       asString(entry["title"]),
		Description: asString(entry["description"]),
		Image:       asString(entry["image"]),
		Images:      images,
	}
}

// projectLocalResults keeps at most the first 3 entries, discarding any that
// is not a structured record and defaulting missing numeric fields to 0.
func projectLocalResults(raw any) []LocalResult {
	list := asList(raw)
	if len(list) > localResultLimit {
		list = list[:localResultLimit]
	}
	results := []LocalResult{}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		coords, _ := entry["gps_coordinates"].(map[string]any)
		results = append(results, LocalResult{
			Title:   asString(entry["title"]),
			Address: asString(entry["address"]),
			Rating:  asNumber(entry["rating"]),
			Reviews: int(asNumber(entry["reviews"])),
			GPSCoordinates: GPSCoordinates{
				Latitude:  asNumber(coords["latitude"]),
				Longitude: asNumber(coords["longitude"]),
			},
		})
	}
	return results
}

// resolveAIOverviewToken prefers the explicit page_token and falls back to
// the page_token query parameter of the serpapi_link.
func resolveAIOverviewToken(raw any) string {
	overview, ok := raw.(map[string]any)
	if !ok {
		return ""
	}
	if token := asString(overview["page_token"]); token != "" {
		return token
	}
	link := asString(overview["serpapi_link"])
	if link == "" {
		return ""
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	token := parsed.Query().Get("page_token")
	if token != "" {
		log.Printf("[Core] Extracted AI overview token from serpapi_link")
	}
	return token
}

func asList(raw any) []any {
	if list, ok := raw.([]any); ok {
		return list
	}
	return []any{}
}

func asString(raw any) string {
	s, _ := raw.(string)
	return s
}

func asNumber(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}
