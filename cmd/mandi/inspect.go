package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"mandiprices/adapters/excel"
	"mandiprices/app"
	"mandiprices/ports"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "inspect [file.xlsx]",
		Short: "Summarise an exported spreadsheet",
		Long: `Read an exported spreadsheet back and print its columns, row count and
per-column statistics (min, max, mean, median for numeric columns).

Example: mandi inspect mandi_prices_data_gov_in.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], sheet)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", excel.DefaultSheet, "Sheet to read")

	return cmd
}

func runInspect(out io.Writer, path, sheet string) error {
	var reader ports.TableReaderPort = excel.NewDataReader(path, excel.ExcelConfig{SheetName: sheet}, logger)
	table, err := reader.ReadTable()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File:    %s\n", path)
	fmt.Fprintf(out, "Rows:    %d\n", table.Len())
	fmt.Fprintf(out, "Columns: %d\n\n", len(table.Columns))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tFILLED\tDISTINCT\tMIN\tMAX\tMEAN\tMEDIAN")
	for _, s := range app.NewSummaryService().Summarize(table) {
		if !s.Numeric {
			fmt.Fprintf(tw, "%s\t%d\t%d\t-\t-\t-\t-\n", s.Name, s.Filled, s.Distinct)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			s.Name, s.Filled, s.Distinct, s.Min, s.Max, s.Mean, s.Median)
	}
	return tw.Flush()
}
