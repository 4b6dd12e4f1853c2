package testkit

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"mandiprices/domain/record"
)

// Upstream is a fake data.gov.in resource endpoint. It records every query it
// receives and answers with whatever was last configured.
type Upstream struct {
	*httptest.Server

	mu          sync.Mutex
	queries     []url.Values
	status      int
	contentType string
	body        []byte
}

// NewUpstream starts a fake endpoint that answers 200 with an empty result
// until told otherwise. It is closed when the test ends.
func NewUpstream(t testing.TB) *Upstream {
	t.Helper()

	u := &Upstream{
		status:      http.StatusOK,
		contentType: "application/xml",
		body:        []byte(`<?xml version="1.0" encoding="UTF-8"?><result></result>`),
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.queries = append(u.queries, r.URL.Query())
	status, contentType, body := u.status, u.contentType, u.body
	u.mu.Unlock()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Respond sets the raw response for subsequent requests
func (u *Upstream) Respond(status int, contentType string, body []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	u.contentType = contentType
	u.body = body
}

// RespondRecords answers 200 with an XML payload holding the records
func (u *Upstream) RespondRecords(records ...record.Record) {
	u.Respond(http.StatusOK, "application/xml", MandiXML(records...))
}

// Queries returns the query strings received so far
func (u *Upstream) Queries() []url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]url.Values, len(u.queries))
	copy(out, u.queries)
	return out
}

// LastQuery returns the most recent query, or nil before the first request
func (u *Upstream) LastQuery() url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.queries) == 0 {
		return nil
	}
	return u.queries[len(u.queries)-1]
}

// MandiXML renders records in the shape the resource API uses:
// result > records > item > field elements.
func MandiXML(records ...record.Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<result>\n")
	buf.WriteString("  <title>Variety-wise Daily Market Prices Data of Commodity</title>\n")
	writeElement(&buf, "  ", "total", strconv.Itoa(len(records)))
	writeElement(&buf, "  ", "count", strconv.Itoa(len(records)))
	buf.WriteString("  <records type=\"list\">\n")
	for _, rec := range records {
		buf.WriteString("    <item>\n")
		for _, f := range rec.Fields {
			writeElement(&buf, "      ", f.Name, f.Value)
		}
		buf.WriteString("    </item>\n")
	}
	buf.WriteString("  </records>\n</result>\n")
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, indent, name, value string) {
	buf.WriteString(indent + "<" + name + ">")
	_ = xml.EscapeText(buf, []byte(value))
	buf.WriteString("</" + name + ">\n")
}
