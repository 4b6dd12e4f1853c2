package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"mandiprices/domain/record"
	"mandiprices/internal/errors"

	"go.uber.org/zap"
)

// Reader fetches mandi price records from a data.gov.in resource
type Reader struct {
	source     *DataSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewReader creates a reader for a data source
func NewReader(source *DataSource, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		source: source,
		httpClient: &http.Client{
			Timeout: source.Timeout,
		},
		logger: logger,
	}
}

// Fetch performs a single GET and returns the raw body. Any non-2xx status is
// returned as *StatusError; nothing is retried.
func (r *Reader) Fetch(ctx context.Context, q record.Query) (*Payload, error) {
	if err := validateQuery(q); err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "invalid query")
	}

	fullURL := r.source.RequestURL(q)
	redacted := RedactURL(fullURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	r.logger.Debug("fetching records", zap.String("url", redacted), zap.String("format", r.source.Format))

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		// The transport error text embeds the full URL, key included.
		return nil, errors.ExternalServiceError("data.gov.in", fmt.Errorf("GET %s: %w", redacted, unwrapURLError(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
		r.logger.Warn("upstream returned non-success status",
			zap.String("url", redacted),
			zap.Int("status", resp.StatusCode))
		return nil, errors.ExternalServiceError("data.gov.in", statusErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError("data.gov.in", fmt.Errorf("failed to read response: %w", err))
	}

	payload := &Payload{
		URL:          redacted,
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		Format:       r.source.Format,
		Body:         body,
		ResponseTime: time.Since(start),
		FetchedAt:    start,
	}

	r.logger.Debug("fetched records payload",
		zap.Int("status", payload.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("response_time", payload.ResponseTime))

	return payload, nil
}

// FetchRecords fetches and decodes one response into records
func (r *Reader) FetchRecords(ctx context.Context, q record.Query) ([]record.Record, record.Metadata, error) {
	payload, err := r.Fetch(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	records, meta, err := Decode(payload.Format, payload.Body)
	if err != nil {
		return nil, nil, err
	}

	r.logger.Debug("decoded records", zap.Int("records", len(records)), zap.Any("metadata", meta))
	return records, meta, nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the URL.
func unwrapURLError(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return inner
		}
	}
	return err
}
