package api

import (
	"errors"
	"strconv"

	"mandiprices/domain/core"
	"mandiprices/domain/record"

	"github.com/tidwall/gjson"
)

const jsonRecords = "records"

// DecodeJSON reads the JSON flavour of the same resource: a top-level object
// whose "records" member is an array of flat objects. Values are kept as
// their string form, in document order.
func DecodeJSON(body []byte) ([]record.Record, record.Metadata, error) {
	if !gjson.ValidBytes(body) {
		return nil, nil, core.NewMalformedError(FormatJSON, errors.New("invalid JSON document"))
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, nil, core.NewShapeError("$", "document is not an object")
	}

	recordsResult := root.Get(jsonRecords)
	if !recordsResult.Exists() {
		return nil, nil, core.NewShapeError(jsonRecords, "member missing")
	}
	if !recordsResult.IsArray() {
		return nil, nil, core.NewShapeError(jsonRecords, "member is not an array")
	}

	items := recordsResult.Array()
	if len(items) == 0 {
		return nil, nil, core.NewShapeError(jsonRecords, "array is empty")
	}

	records := make([]record.Record, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, nil, core.NewShapeError(jsonItemPath(i), "record is not an object")
		}
		var rec record.Record
		var shapeErr error
		item.ForEach(func(key, value gjson.Result) bool {
			if value.IsObject() || value.IsArray() {
				shapeErr = core.NewShapeError(jsonItemPath(i)+"."+key.String(), "field is not a scalar value")
				return false
			}
			rec.Set(key.String(), value.String())
			return true
		})
		if shapeErr != nil {
			return nil, nil, shapeErr
		}
		records = append(records, rec)
	}

	meta := record.Metadata{}
	root.ForEach(func(key, value gjson.Result) bool {
		if key.String() != jsonRecords && !value.IsObject() && !value.IsArray() {
			meta[key.String()] = value.String()
		}
		return true
	})

	return records, meta, nil
}

func jsonItemPath(index int) string {
	return jsonRecords + "[" + strconv.Itoa(index) + "]"
}
