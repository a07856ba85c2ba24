package core

// OrganicResult is a standard unpaid web search hit.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// KnowledgeGraph is the structured summary panel returned for well-known
// entities. Images holds raw image descriptors attached from the image
// search, capped at 10 and passed through in source order.
type KnowledgeGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Images      []any  `json:"images"`
}

// GPSCoordinates locates a local result on the map.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocalResult is a place/business listing. Missing rating, review and
// coordinate fields default to zero.
type LocalResult struct {
	Title          string         `json:"title"`
	Address        string         `json:"address"`
	Rating         float64        `json:"rating"`
	Reviews        int            `json:"reviews"`
	GPSCoordinates GPSCoordinates `json:"gps_coordinates"`
}

// SearchResponse is the aggregated document returned to the caller. It is
// built fresh per request; AIResponse is always non-empty.
type SearchResponse struct {
	OrganicResults   []OrganicResult `json:"organic_results"`
	KnowledgeGraph   *KnowledgeGraph `json:"knowledge_graph"`
	RelatedQuestions []any           `json:"related_questions"`
	RelatedSearches  []any           `json:"related_searches"`
	LocalResults     []LocalResult   `json:"local_results"`
	AIResponse       string          `json:"ai_response"`
}
