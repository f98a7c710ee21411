package dto

// ======================
// Request DTOs
// ======================

type ChatRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// ======================
// Response DTOs
// ======================

// ChatResponse carries the assistant answer together with the route the
// question was classified into (property, agency, submit, contact,
// price-range).
type ChatResponse struct {
	Answer string `json:"answer"`
	Intent string `json:"intent,omitempty"`

	// Matches is set only by the price-range route.
	Matches []PropertyCardResponse `json:"matches,omitempty"`
}
