package api

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mandiprices/domain/core"
	"mandiprices/domain/record"
)

const (
	xmlRoot    = "result"
	xmlRecords = "records"
	xmlItem    = "item"
)

// DecodeXML walks a data.gov.in XML document and returns the records found
// at result/records/item. Every child element of an item is one field; its
// trimmed text is the value and its attributes are ignored. Scalar siblings
// of records (title, total, count, ...) are returned as metadata.
func DecodeXML(body []byte) ([]record.Record, record.Metadata, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	root, err := nextStart(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, core.NewMalformedError(FormatXML, errors.New("empty document"))
		}
		return nil, nil, core.NewMalformedError(FormatXML, err)
	}
	if root.Name.Local != xmlRoot {
		return nil, nil, core.NewShapeError(xmlRoot, "root element is <"+root.Name.Local+">")
	}

	meta := record.Metadata{}
	var records []record.Record
	foundRecords := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, core.NewMalformedError(FormatXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == xmlRecords && !foundRecords {
				foundRecords = true
				records, err = decodeItems(dec)
				if err != nil {
					return nil, nil, err
				}
				continue
			}
			text, scalar, err := readElement(dec)
			if err != nil {
				return nil, nil, err
			}
			if scalar {
				meta[t.Name.Local] = text
			}
		case xml.EndElement:
			if !foundRecords {
				return nil, nil, core.NewShapeError(xmlRoot+"."+xmlRecords, "element missing")
			}
			if len(records) == 0 {
				return nil, nil, core.NewShapeError(xmlRoot+"."+xmlRecords+"."+xmlItem, "element missing")
			}
			if err := expectEOF(dec); err != nil {
				return nil, nil, err
			}
			return records, meta, nil
		}
	}
}

// expectEOF rejects anything but whitespace, comments and processing
// instructions after the root element.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return core.NewMalformedError(FormatXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return core.NewMalformedError(FormatXML, fmt.Errorf("junk after document element: <%s>", t.Name.Local))
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return core.NewMalformedError(FormatXML, errors.New("junk after document element"))
			}
		}
	}
}

// decodeItems consumes the body of <records> up to its end tag.
func decodeItems(dec *xml.Decoder) ([]record.Record, error) {
	var records []record.Record
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, core.NewMalformedError(FormatXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != xmlItem {
				if err := dec.Skip(); err != nil {
					return nil, core.NewMalformedError(FormatXML, err)
				}
				continue
			}
			rec, err := decodeItem(dec, len(records))
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		case xml.EndElement:
			return records, nil
		}
	}
}

// decodeItem consumes one <item> and returns its fields in document order.
func decodeItem(dec *xml.Decoder, index int) (record.Record, error) {
	var rec record.Record
	seen := make(map[string]bool)
	for {
		tok, err := dec.Token()
		if err != nil {
			return rec, core.NewMalformedError(FormatXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			text, scalar, err := readElement(dec)
			if err != nil {
				return rec, err
			}
			path := itemPath(index) + "." + name
			if !scalar {
				return rec, core.NewShapeError(path, "field is not a scalar value")
			}
			if seen[name] {
				return rec, core.NewShapeError(path, "field repeated within one item")
			}
			seen[name] = true
			rec.Fields = append(rec.Fields, record.Field{Name: name, Value: text})
		case xml.EndElement:
			return rec, nil
		}
	}
}

// readElement consumes the rest of the current element. It returns the
// trimmed direct text and whether the element had no child elements.
func readElement(dec *xml.Decoder) (string, bool, error) {
	var sb strings.Builder
	scalar := true
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false, core.NewMalformedError(FormatXML, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			scalar = false
			if err := dec.Skip(); err != nil {
				return "", false, core.NewMalformedError(FormatXML, err)
			}
		case xml.EndElement:
			return strings.TrimSpace(sb.String()), scalar, nil
		}
	}
}

// nextStart skips the prolog (declaration, comments, whitespace) up to the
// first element.
func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func itemPath(index int) string {
	return xmlRoot + "." + xmlRecords + "." + xmlItem + "[" + strconv.Itoa(index) + "]"
}
