package api

import (
	"os"
	"path/filepath"
	"testing"

	"mandiprices/domain/core"
	"mandiprices/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestDecodeXML_ExampleScenario(t *testing.T) {
	body := []byte(`<result><records><item><state>Maharashtra</state><price>2500</price></item><item><state>Punjab</state><price>1800</price></item></records></result>`)

	records, _, err := DecodeXML(body)
	require.NoError(t, err)

	assert.Equal(t, []record.Record{
		record.NewRecord("state", "Maharashtra", "price", "2500"),
		record.NewRecord("state", "Punjab", "price", "1800"),
	}, records)
}

func TestDecodeXML_Fixture(t *testing.T) {
	records, meta, err := DecodeXML(readFixture(t, "mandi_prices.xml"))
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"state", "district", "market", "commodity", "variety", "grade",
		"arrival_date", "min_price", "max_price", "modal_price",
	}, records[0].Names())

	grade, ok := records[2].Get("grade")
	assert.True(t, ok)
	assert.Equal(t, "", grade)

	variety, _ := records[2].Get("variety")
	assert.Equal(t, "Nendra Bale", variety)

	assert.Equal(t, "3", meta["total"])
	assert.Equal(t, "Variety-wise Daily Market Prices Data of Commodity", meta["title"])
	_, hasField := meta["field"]
	assert.False(t, hasField, "non-scalar envelope members are not metadata")
}

func TestDecodeXML_SingleItem(t *testing.T) {
	body := []byte(`<result><records><item><state>Goa</state></item></records></result>`)

	records, _, err := DecodeXML(body)
	require.NoError(t, err)
	assert.Equal(t, []record.Record{record.NewRecord("state", "Goa")}, records)
}

func TestDecodeXML_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong root", `<response><records><item><a>1</a></item></records></response>`},
		{"missing records", `<result><title>x</title></result>`},
		{"empty records", `<result><records type="list"></records></result>`},
		{"records without items", `<result><records><row><a>1</a></row></records></result>`},
		{"nested field", `<result><records><item><a><b>1</b></a></item></records></result>`},
		{"repeated field", `<result><records><item><a>1</a><a>2</a></item></records></result>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeXML([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrUnexpectedShape)
		})
	}
}

func TestDecodeXML_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"not xml", `{"records": []}`},
		{"unclosed", `<result><records><item><a>1</a></item>`},
		{"mismatched", `<result><records><item><a>1</b></item></records></result>`},
		{"trailing junk", `<result><records><item><a>1</a></item></records></result><oops`},
		{"second root", `<result><records><item><a>1</a></item></records></result><result/>`},
		{"trailing text", `<result><records><item><a>1</a></item></records></result>tail`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeXML([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrMalformedPayload)
			assert.NotErrorIs(t, err, core.ErrUnexpectedShape)
		})
	}
}

func TestDecodeXML_TrailingWhitespaceAndComments(t *testing.T) {
	body := "<result><records><item><a>1</a></item></records></result>\n  <!-- served by cache -->\n"

	records, _, err := DecodeXML([]byte(body))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, _, err := Decode("csv", []byte("a,b"))
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}
