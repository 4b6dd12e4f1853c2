package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mandiprices/internal/config"
	"mandiprices/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.Logger

	// dotenvErr is reported once the logger exists.
	dotenvErr error
)

func main() {
	dotenvErr = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	exportOpts := &exportOptions{}

	rootCmd := &cobra.Command{
		Use:   "mandi",
		Short: "Export data.gov.in mandi commodity prices to a spreadsheet",
		Long: `mandi fetches daily commodity market (mandi) prices from the data.gov.in
open data API and writes them to mandi_prices_data_gov_in.xlsx.

The API key is read from DATA_GOV_API_KEY (a .env file in the working
directory is loaded first). Running without a subcommand performs an export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := config.LoadLogging().Level
			if verbose {
				level = "DEBUG"
			}
			var err error
			logger, err = logging.New(level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if dotenvErr != nil {
				logger.Debug("no .env file loaded, using process environment", zap.Error(dotenvErr))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd.OutOrStdout(), exportOpts)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	exportOpts.bind(rootCmd)

	rootCmd.AddCommand(
		newExportCmd(),
		newServeCmd(),
		newInspectCmd(),
	)

	return rootCmd
}
