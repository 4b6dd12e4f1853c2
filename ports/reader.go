package ports

import "mandiprices/domain/record"

// TableReaderPort loads a previously exported table back into memory.
// Used by inspection tooling; it never talks to the upstream API.
type TableReaderPort interface {
	ReadTable() (*record.Table, error)
}
