package ports

import (
	"io"

	"mandiprices/domain/record"
)

// TableWriterPort persists a table as a spreadsheet file, overwriting any
// existing file at path
type TableWriterPort interface {
	WriteTable(table *record.Table, path string) error
}

// TableStreamWriterPort writes a spreadsheet to a stream
type TableStreamWriterPort interface {
	WriteTo(table *record.Table, dst io.Writer) error
}
