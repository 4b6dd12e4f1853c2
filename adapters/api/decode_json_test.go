package api

import (
	"testing"

	"mandiprices/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_Fixture(t *testing.T) {
	records, meta, err := DecodeJSON(readFixture(t, "mandi_prices.json"))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"state", "district", "commodity", "modal_price"}, records[0].Names())
	assert.Equal(t, []string{"state", "district", "commodity", "modal_price", "grade"}, records[1].Names())

	price, _ := records[1].Get("modal_price")
	assert.Equal(t, "2275", price)
	grade, ok := records[1].Get("grade")
	assert.True(t, ok)
	assert.Equal(t, "", grade)

	assert.Equal(t, "2", meta["total"])
	assert.Equal(t, "10", meta["limit"])
	_, hasField := meta["field"]
	assert.False(t, hasField)
}

func TestDecodeJSON_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array root", `[{"state":"Goa"}]`},
		{"missing records", `{"total": 0}`},
		{"records not array", `{"records": {"state":"Goa"}}`},
		{"empty records", `{"records": []}`},
		{"record not object", `{"records": ["Goa"]}`},
		{"nested field", `{"records": [{"state": {"name": "Goa"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeJSON([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrUnexpectedShape)
		})
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, _, err := DecodeJSON([]byte(`{"records": [`))
	assert.ErrorIs(t, err, core.ErrMalformedPayload)
}
