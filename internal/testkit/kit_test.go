package testkit

import (
	"io"
	"net/http"
	"testing"

	"mandiprices/adapters/api"
	"mandiprices/domain/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMandiXML_DecodesBack(t *testing.T) {
	in := []record.Record{
		record.NewRecord("state", "Maharashtra", "market", "Pune & Co <APMC>"),
		record.NewRecord("state", "Punjab", "market", "Khanna"),
	}

	records, meta, err := api.DecodeXML(MandiXML(in...))
	require.NoError(t, err)
	assert.Equal(t, in, records)
	assert.Equal(t, "2", meta["total"])
}

func TestUpstream_RecordsQueries(t *testing.T) {
	u := NewUpstream(t)
	assert.Nil(t, u.LastQuery())

	u.RespondRecords(record.NewRecord("state", "Punjab"))

	resp, err := http.Get(u.URL + "?api-key=k&format=xml")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<state>Punjab</state>")
	require.Len(t, u.Queries(), 1)
	assert.Equal(t, "k", u.LastQuery().Get("api-key"))
}

func TestUpstream_Respond(t *testing.T) {
	u := NewUpstream(t)
	u.Respond(http.StatusForbidden, "text/plain", []byte("invalid key"))

	resp, err := http.Get(u.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
