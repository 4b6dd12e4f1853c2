package app

import (
	"testing"

	"mandiprices/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_Summarize(t *testing.T) {
	table := record.FromRecords([]record.Record{
		record.NewRecord("state", "Punjab", "modal_price", "1800", "grade", ""),
		record.NewRecord("state", "Punjab", "modal_price", "2500", "grade", "FAQ"),
		record.NewRecord("state", "Goa", "modal_price", "2000", "grade", "FAQ"),
	})

	summaries := NewSummaryService().Summarize(table)
	require.Len(t, summaries, 3)

	state := summaries[0]
	assert.Equal(t, "state", state.Name)
	assert.False(t, state.Numeric)
	assert.Equal(t, 3, state.Filled)
	assert.Equal(t, 2, state.Distinct)

	price := summaries[1]
	assert.True(t, price.Numeric)
	assert.Equal(t, 1800.0, price.Min)
	assert.Equal(t, 2500.0, price.Max)
	assert.InDelta(t, 2100.0, price.Mean, 1e-9)
	assert.Equal(t, 2000.0, price.Median)

	grade := summaries[2]
	assert.False(t, grade.Numeric)
	assert.Equal(t, 2, grade.Filled)
	assert.Equal(t, 1, grade.Distinct)
}

func TestSummaryService_MixedColumnIsNotNumeric(t *testing.T) {
	table := record.FromRecords([]record.Record{
		record.NewRecord("price", "100"),
		record.NewRecord("price", "n/a"),
	})

	summaries := NewSummaryService().Summarize(table)
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].Numeric)
	assert.Zero(t, summaries[0].Mean)
}
