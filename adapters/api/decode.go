package api

import (
	"fmt"

	"mandiprices/domain/core"
	"mandiprices/domain/record"
)

// Decode extracts the record sequence from an upstream body in the given format
func Decode(format string, body []byte) ([]record.Record, record.Metadata, error) {
	switch format {
	case FormatXML:
		return DecodeXML(body)
	case FormatJSON:
		return DecodeJSON(body)
	default:
		return nil, nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
	}
}
