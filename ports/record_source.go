package ports

import (
	"context"

	"mandiprices/domain/record"
)

// RecordSourcePort fetches one page of mandi price records from upstream.
// Implementations perform exactly one request and never retry.
type RecordSourcePort interface {
	FetchRecords(ctx context.Context, q record.Query) ([]record.Record, record.Metadata, error)
}
