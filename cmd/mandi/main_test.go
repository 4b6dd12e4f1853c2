package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mandiprices/adapters/excel"
	"mandiprices/domain/record"
	"mandiprices/internal/config"
	"mandiprices/internal/logging"
	"mandiprices/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger = logging.Nop()
}

func TestExportOptions_Apply(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.OutputFile = config.DefaultOutputFile
	cfg.Source.Format = "xml"
	cfg.Source.Limit = 10
	cfg.Source.Timeout = 5 * time.Second

	opts := &exportOptions{limit: -1, timeout: -1}
	opts.apply(cfg)
	assert.Equal(t, config.DefaultOutputFile, cfg.Export.OutputFile)
	assert.Equal(t, 10, cfg.Source.Limit)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)

	opts = &exportOptions{output: "out.xlsx", format: "json", limit: 0, timeout: 0}
	opts.apply(cfg)
	assert.Equal(t, "out.xlsx", cfg.Export.OutputFile)
	assert.Equal(t, "json", cfg.Source.Format)
	assert.Equal(t, 0, cfg.Source.Limit)
	assert.Equal(t, time.Duration(0), cfg.Source.Timeout)
}

func TestExportOptions_Filters(t *testing.T) {
	opts := &exportOptions{state: "Punjab", commodity: "Wheat", date: "18/10/2026"}

	assert.Equal(t, record.Filters{
		State:       "Punjab",
		Commodity:   "Wheat",
		ArrivalDate: "18/10/2026",
	}, opts.filters())
}

func TestRootCommand_DefaultsToExport(t *testing.T) {
	upstream := testkit.NewUpstream(t)
	upstream.RespondRecords(
		record.NewRecord("state", "Maharashtra", "price", "2500"),
		record.NewRecord("state", "Punjab", "price", "1800"),
	)

	out := filepath.Join(t.TempDir(), "prices.xlsx")
	t.Setenv("DATA_GOV_API_KEY", "test-key")
	t.Setenv("MANDI_BASE_URL", upstream.URL)

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--output", out, "--state", "Punjab"})

	require.NoError(t, cmd.Execute())

	query := upstream.LastQuery()
	require.NotNil(t, query)
	assert.Equal(t, "test-key", query.Get("api-key"))
	assert.Equal(t, "Punjab", query.Get("filters[State]"))
	assert.Contains(t, stdout.String(), "Fetching data...")
	assert.Contains(t, stdout.String(), "Excel saved: "+out)

	table, err := excel.NewDataReader(out, excel.DefaultExcelConfig(), nil).ReadTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"state", "price"}, table.Columns)
	assert.Equal(t, 2, table.Len())
}

func TestExportCommand_UpstreamFailureLeavesNoFile(t *testing.T) {
	upstream := testkit.NewUpstream(t)
	upstream.Respond(http.StatusForbidden, "text/plain", []byte("forbidden"))

	out := filepath.Join(t.TempDir(), "prices.xlsx")
	t.Setenv("DATA_GOV_API_KEY", "test-key")
	t.Setenv("MANDI_BASE_URL", upstream.URL)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", "--output", out})

	require.Error(t, cmd.Execute())
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommand_MissingAPIKey(t *testing.T) {
	t.Setenv("DATA_GOV_API_KEY", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", "--output", filepath.Join(t.TempDir(), "x.xlsx")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_GOV_API_KEY")
}

func TestRunInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	table := record.FromRecords([]record.Record{
		record.NewRecord("state", "Maharashtra", "price", "2500"),
		record.NewRecord("state", "Punjab", "price", "1800"),
	})
	require.NoError(t, excel.NewWriter(excel.DefaultExcelConfig(), nil).WriteTable(table, path))

	var out bytes.Buffer
	require.NoError(t, runInspect(&out, path, excel.DefaultSheet))

	text := out.String()
	assert.Contains(t, text, "Rows:    2")
	assert.Contains(t, text, "Columns: 2")
	assert.Contains(t, text, "1800.00")
	assert.Contains(t, text, "2500.00")
	assert.Contains(t, text, "2150.00")
}

func TestRunInspect_MissingFile(t *testing.T) {
	err := runInspect(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.xlsx"), excel.DefaultSheet)
	assert.Error(t, err)
}
