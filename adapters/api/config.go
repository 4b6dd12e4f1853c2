package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mandiprices/domain/record"
)

// Supported response formats
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

// DataSource holds the connection settings for one data.gov.in resource
type DataSource struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	APIKey  string `json:"-"`
	Format  string `json:"format"` // "xml" or "json"

	// Zero means no client-side deadline; the transport defaults apply.
	Timeout time.Duration `json:"timeout"`
}

// Validate checks if the data source is usable
func (s *DataSource) Validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return &ValidationError{Field: "BaseURL", Message: "is required"}
	}
	if _, err := url.Parse(s.BaseURL); err != nil {
		return &ValidationError{Field: "BaseURL", Message: err.Error()}
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return &ValidationError{Field: "APIKey", Message: "is required"}
	}
	switch s.Format {
	case FormatXML, FormatJSON:
	default:
		return &ValidationError{Field: "Format", Message: fmt.Sprintf("unsupported format %q", s.Format)}
	}
	if s.Timeout < 0 {
		return &ValidationError{Field: "Timeout", Message: "cannot be negative"}
	}
	return nil
}

// validateQuery checks the per-request values
func validateQuery(q record.Query) error {
	if q.Limit < 0 {
		return &ValidationError{Field: "Limit", Message: "cannot be negative"}
	}
	return nil
}

// Params builds the URL query for a request: the credential, the format and
// whatever filters are set.
func (s *DataSource) Params(q record.Query) url.Values {
	params := url.Values{}
	params.Add("api-key", s.APIKey)
	params.Add("format", s.Format)

	if q.Filters.State != "" {
		params.Add("filters[State]", q.Filters.State)
	}
	if q.Filters.District != "" {
		params.Add("filters[District]", q.Filters.District)
	}
	if q.Filters.Commodity != "" {
		params.Add("filters[Commodity]", q.Filters.Commodity)
	}
	if q.Filters.ArrivalDate != "" {
		params.Add("filters[Arrival_Date]", q.Filters.ArrivalDate)
	}
	if q.Limit > 0 {
		params.Add("limit", strconv.Itoa(q.Limit))
	}
	return params
}

// RequestURL returns the full URL for a query
func (s *DataSource) RequestURL(q record.Query) string {
	return s.BaseURL + "?" + s.Params(q).Encode()
}

// RedactURL hides the api-key query value so URLs can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	params := u.Query()
	if params.Has("api-key") {
		params.Set("api-key", "REDACTED")
		u.RawQuery = params.Encode()
	}
	return u.String()
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}
