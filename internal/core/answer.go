package core

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

var (
	whitespaceRE     = regexp.MustCompile(`\s+`)
	citationMarkerRE = regexp.MustCompile(`\s*\[\d+\]\s*`)
)

// generateAIResponse produces the ai_response field. Priority order:
//  1. knowledge graph (when it has both title and description)
//  2. AI overview fetched with the page token
//  3. snippets of the first organic results
//  4. a fixed apology naming the query
//
// It never fails; every branch yields a usable string.
func (c *SearchCore) generateAIResponse(ctx context.Context, query string, organic []OrganicResult, kg *KnowledgeGraph, overviewToken string) string {
	if kg != nil && kg.Title != "" && kg.Description != "" {
		return fmt.Sprintf("**%s** is %s [[1]](https://www.google.com/search?q=%s)\n\n",
			kg.Title, kg.Description, strings.ReplaceAll(query, " ", "+"))
	}

	if overviewToken != "" {
		if answer := c.fetchAIOverview(ctx, overviewToken); answer != "" {
			return answer
		}
	}

	if len(organic) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Here's what I found about **%s**:\n\n", query)
		for i, result := range organic {
			if i == 3 {
				break
			}
			if result.Snippet == "" {
				continue
			}
			fmt.Fprintf(&b, "* %s [[%d]](%s)\n\n", cleanSnippet(result.Snippet), i+1, result.Link)
		}
		return b.String()
	}

	return fmt.Sprintf("I couldn't find any relevant information for **%s**. Please try rephrasing your query.", query)
}

// fetchAIOverview pages into the AI overview endpoint with the token from
// the web search. Failures here are logged and swallowed; the synthesizer
// falls through to the next answer source.
func (c *SearchCore) fetchAIOverview(ctx context.Context, pageToken string) string {
	data, err := c.provider.Request(ctx, map[string]string{
		"engine":     "google_ai_overview",
		"page_token": pageToken,
	})
	if err != nil {
		log.Printf("[Core] Error fetching AI overview by token: %v", err)
		return ""
	}

	overview, ok := data["ai_overview"].(map[string]any)
	if !ok {
		return ""
	}
	var parts []string
	for _, block := range asList(overview["text_blocks"]) {
		entry, ok := block.(map[string]any)
		if !ok {
			continue
		}
		if snippet := asString(entry["snippet"]); snippet != "" {
			parts = append(parts, snippet)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	log.Printf("[Core] AI overview generated using page token")
	return strings.Join(parts, "\n\n")
}

// cleanSnippet collapses whitespace and splits inline citation markers like
// "[1]" into separate bullet points, each ending with terminal punctuation.
func cleanSnippet(snippet string) string {
	clean := strings.TrimSpace(whitespaceRE.ReplaceAllString(snippet, " "))
	var bullets []string
	for _, source := range citationMarkerRE.Split(clean, -1) {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}
		if !strings.HasSuffix(source, ".") && !strings.HasSuffix(source, "!") && !strings.HasSuffix(source, "?") {
			source += "."
		}
		bullets = append(bullets, "• "+source)
	}
	return strings.Join(bullets, "\n")
}
