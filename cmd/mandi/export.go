package main

import (
	"context"
	"io"
	"time"

	"mandiprices/adapters/api"
	"mandiprices/adapters/excel"
	"mandiprices/app"
	"mandiprices/domain/record"
	"mandiprices/internal/config"

	"github.com/spf13/cobra"
)

// exportOptions are flag overrides on top of the environment configuration
type exportOptions struct {
	output    string
	format    string
	state     string
	district  string
	commodity string
	date      string
	limit     int
	timeout   time.Duration
}

func (o *exportOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.output, "output", "o", "", "Output xlsx path (default MANDI_OUTPUT or "+config.DefaultOutputFile+")")
	flags.StringVar(&o.format, "format", "", "Upstream response format: xml or json (default MANDI_FORMAT or xml)")
	flags.StringVar(&o.state, "state", "", "Only records for this state")
	flags.StringVar(&o.district, "district", "", "Only records for this district")
	flags.StringVar(&o.commodity, "commodity", "", "Only records for this commodity")
	flags.StringVar(&o.date, "date", "", "Only records with this arrival date (dd/mm/yyyy)")
	flags.IntVar(&o.limit, "limit", -1, "Maximum records to request (default MANDI_LIMIT, 0 = server default)")
	flags.DurationVar(&o.timeout, "timeout", -1, "HTTP timeout (default HTTP_TIMEOUT, 0 = none)")
}

// apply merges flag values over the loaded configuration
func (o *exportOptions) apply(cfg *config.Config) {
	if o.output != "" {
		cfg.Export.OutputFile = o.output
	}
	if o.format != "" {
		cfg.Source.Format = o.format
	}
	if o.limit >= 0 {
		cfg.Source.Limit = o.limit
	}
	if o.timeout >= 0 {
		cfg.Source.Timeout = o.timeout
	}
}

func (o *exportOptions) filters() record.Filters {
	return record.Filters{
		State:       o.state,
		District:    o.district,
		Commodity:   o.commodity,
		ArrivalDate: o.date,
	}
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch mandi prices once and write them to an xlsx file",
		Long: `Fetch one page of mandi price records and write them to a spreadsheet.

Example: mandi export --state Punjab --commodity Wheat --output punjab_wheat.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	opts.bind(cmd)

	return cmd
}

func runExport(ctx context.Context, out io.Writer, opts *exportOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts.apply(cfg)

	source := sourceFromConfig(cfg)
	if err := source.Validate(); err != nil {
		return err
	}

	reader := api.NewReader(source, logger)
	writer := excel.NewWriter(excel.DefaultExcelConfig(), logger)
	exporter := app.NewExportService(reader, writer, out, logger)

	_, err = exporter.Run(ctx, app.ExportRequest{
		Query: record.Query{
			Filters: opts.filters(),
			Limit:   cfg.Source.Limit,
		},
		OutputPath: cfg.Export.OutputFile,
	})
	return err
}

func sourceFromConfig(cfg *config.Config) *api.DataSource {
	return &api.DataSource{
		Name:    "data.gov.in mandi prices",
		BaseURL: cfg.Source.BaseURL,
		APIKey:  cfg.Source.APIKey,
		Format:  cfg.Source.Format,
		Timeout: cfg.Source.Timeout,
	}
}
