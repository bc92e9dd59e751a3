package domain

// Outcome classifies a single request for metrics labelling
type Outcome string

// Redirect lookup outcomes
const (
	OutcomeHit   Outcome = "hit"
	OutcomeMiss  Outcome = "miss"
	OutcomeError Outcome = "error"
)

// Shorten request outcomes
const (
	OutcomeOK         Outcome = "ok"
	OutcomeBadRequest Outcome = "bad_request"
)

// ShortenRequest is the POST /shorten payload
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse is returned after a code has been allocated.
// ShortURL is only set when a redirect base URL is configured.
type ShortenResponse struct {
	Code     string `json:"code"`
	ShortURL string `json:"short_url,omitempty"`
}

// ErrorResponse is the JSON error body used by the shortener
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON health body used by the shortener
type HealthResponse struct {
	Status string `json:"status"`
}
