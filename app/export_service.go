package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"mandiprices/domain/core"
	"mandiprices/domain/record"
	"mandiprices/internal/errors"
	"mandiprices/ports"

	"go.uber.org/zap"
)

// ExportRequest carries the per-run inputs of the exporter
type ExportRequest struct {
	Query      record.Query
	OutputPath string
}

// ExportResult describes a completed export
type ExportResult struct {
	RunID       core.RunID      `json:"run_id"`
	Path        string          `json:"path"`
	Rows        int             `json:"rows"`
	Columns     []string        `json:"columns"`
	Fingerprint core.Hash       `json:"fingerprint"`
	Metadata    record.Metadata `json:"metadata,omitempty"`
	StartedAt   core.Timestamp  `json:"started_at"`
	Duration    time.Duration   `json:"duration"`
}

// ExportService runs the fetch, parse, flatten and write pipeline
type ExportService struct {
	source ports.RecordSourcePort
	writer ports.TableWriterPort
	out    io.Writer
	logger *zap.Logger
}

// NewExportService wires the pipeline. Progress lines go to out.
func NewExportService(source ports.RecordSourcePort, writer ports.TableWriterPort, out io.Writer, logger *zap.Logger) *ExportService {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		source: source,
		writer: writer,
		out:    out,
		logger: logger,
	}
}

// Run performs one export. Every failure is fatal. The writer is only
// reached once the upstream data has been fetched and fully decoded.
func (s *ExportService) Run(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if req.OutputPath == "" {
		return nil, errors.InvalidInput("output path is required")
	}

	runID := core.NewRunID()
	started := core.Now()
	logger := s.logger.With(zap.String("run_id", runID.String()))

	fmt.Fprintln(s.out, "📡 Fetching data...")
	logger.Info("export started",
		zap.String("output", req.OutputPath),
		zap.Any("filters", req.Query.Filters),
		zap.Int("limit", req.Query.Limit))

	table, meta, err := s.BuildTable(ctx, req.Query)
	if err != nil {
		logger.Error("export failed", zap.Error(err), zap.String("code", errors.GetCode(err)))
		return nil, err
	}

	if err := s.writer.WriteTable(table, req.OutputPath); err != nil {
		logger.Error("export failed", zap.Error(err))
		return nil, errors.WriteFailed(req.OutputPath, err)
	}

	result := &ExportResult{
		RunID:       runID,
		Path:        req.OutputPath,
		Rows:        table.Len(),
		Columns:     table.Columns,
		Fingerprint: table.Fingerprint(),
		Metadata:    meta,
		StartedAt:   started,
		Duration:    started.Since(),
	}

	logger.Info("export finished",
		zap.String("path", result.Path),
		zap.Int("rows", result.Rows),
		zap.Int("columns", len(result.Columns)),
		zap.String("fingerprint", result.Fingerprint.String()),
		zap.Duration("duration", result.Duration))
	fmt.Fprintf(s.out, "✅ Excel saved: %s\n", req.OutputPath)

	return result, nil
}

// BuildTable fetches and flattens records without writing anything
func (s *ExportService) BuildTable(ctx context.Context, q record.Query) (*record.Table, record.Metadata, error) {
	records, meta, err := s.source.FetchRecords(ctx, q)
	if err != nil {
		return nil, nil, classifyFetchError(err)
	}
	return record.FromRecords(records), meta, nil
}

func classifyFetchError(err error) error {
	switch {
	case core.IsShapeError(err):
		return errors.UnexpectedShape(err)
	case core.IsPayloadError(err):
		return errors.Wrap(errors.WithCode(errors.CodeExternalService, err), "failed to decode response")
	default:
		return errors.Wrap(err, "failed to fetch records")
	}
}
