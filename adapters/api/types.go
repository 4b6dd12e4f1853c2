package api

import (
	"fmt"
	"time"
)

// Payload is one raw upstream response
type Payload struct {
	URL          string        `json:"url"` // api-key redacted
	StatusCode   int           `json:"status_code"`
	ContentType  string        `json:"content_type"`
	Format       string        `json:"format"`
	Body         []byte        `json:"-"`
	ResponseTime time.Duration `json:"response_time"`
	FetchedAt    time.Time     `json:"fetched_at"`
}

// StatusError is returned for any non-2xx upstream response
type StatusError struct {
	StatusCode int
	Status     string
	Body       string // first 512 bytes
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

const maxErrorBody = 512
