package record

// Field is one named scalar value inside a record.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is a single commodity price observation. Field order follows the
// upstream document.
type Record struct {
	Fields []Field `json:"fields"`
}

// NewRecord builds a record from alternating name/value pairs.
func NewRecord(pairs ...string) Record {
	r := Record{Fields: make([]Field, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Fields = append(r.Fields, Field{Name: pairs[i], Value: pairs[i+1]})
	}
	return r
}

// Get returns the value of the named field and whether it is present.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing field or appends a new one.
func (r *Record) Set(name, value string) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Map returns the record as a plain map, losing field order.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// Metadata holds scalar envelope values that sit next to the records in an
// upstream response (title, total, count, offset, ...).
type Metadata map[string]string

// Filters narrows the upstream query. Empty fields are not sent.
type Filters struct {
	State       string `json:"state,omitempty"`
	District    string `json:"district,omitempty"`
	Commodity   string `json:"commodity,omitempty"`
	ArrivalDate string `json:"arrival_date,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Query narrows a single upstream request. Limit of zero lets the server pick.
type Query struct {
	Filters Filters `json:"filters"`
	Limit   int     `json:"limit,omitempty"`
}
