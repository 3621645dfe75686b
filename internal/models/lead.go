package models

// Lead is a candidate piece of user text with an estimated buying-intent
// score. Leads live only for the duration of one search request.
type Lead struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Score     int    `json:"score"`
	SourceURL string `json:"source_url,omitempty"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// SearchQuery carries the product description for one pipeline run.
// Immutable once constructed.
type SearchQuery struct {
	ProductDescription string
}

// SearchRequest is the POST /api/search request body.
type SearchRequest struct {
	Product string `json:"product"`
}
