package main

import (
	"net"

	"mandiprices/adapters/api"
	"mandiprices/adapters/excel"
	"mandiprices/app"
	"mandiprices/internal/config"
	"mandiprices/ui"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mandi prices as JSON and xlsx over HTTP",
		Long: `Start an HTTP server that proxies the data.gov.in mandi price resource.

Endpoints:
  GET /healthz
  GET /api/v1/mandi?state=&district=&commodity=&date=&limit=
  GET /api/v1/mandi/export?state=&district=&commodity=&date=&limit=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			source := sourceFromConfig(cfg)
			if err := source.Validate(); err != nil {
				return err
			}

			gin.SetMode(cfg.Server.GinMode)

			reader := api.NewReader(source, logger)
			writer := excel.NewWriter(excel.DefaultExcelConfig(), logger)
			exporter := app.NewExportService(reader, writer, nil, logger)
			server := ui.NewServer(exporter, writer, cfg.Source.Limit, logger)

			return server.Start(cmd.Context(), net.JoinHostPort("", cfg.Server.Port))
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default PORT or 8080)")

	return cmd
}
