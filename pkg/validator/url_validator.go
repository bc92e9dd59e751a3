package validator

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxURLLength is the longest URL accepted by ValidateURL
const MaxURLLength = 2048

var (
	urlRegex = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)

	allowedSchemes = map[string]bool{
		"http":  true,
		"https": true,
		"ftp":   true,
	}

	dangerousSchemes = map[string]bool{
		"javascript": true,
		"data":       true,
		"vbscript":   true,
	}
)

// ValidateURL checks if a string is a well-formed absolute URL that is safe to
// hand out as a redirect target.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL cannot be empty"}
	}

	if len(rawURL) > MaxURLLength {
		return &ValidationError{Field: "url", Message: "URL too long (max 2048 characters)"}
	}

	if !IsSafeURL(rawURL) {
		return &ValidationError{Field: "url", Message: "URL uses a dangerous scheme"}
	}

	if !urlRegex.MatchString(rawURL) {
		return &ValidationError{Field: "url", Message: "Invalid URL format"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "Invalid URL structure"}
	}

	if !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return &ValidationError{Field: "url", Message: "Unsupported URL scheme"}
	}

	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must contain a host"}
	}

	return nil
}

// IsSafeURL reports false for script-bearing schemes
func IsSafeURL(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}

	return !dangerousSchemes[strings.ToLower(parsed.Scheme)]
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
