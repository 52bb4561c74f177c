package csvparse

import "strings"

// Row maps header names to field values, keeping column order.
type Row struct {
	keys   []string
	values map[string]string
}

func newRow(size int) Row {
	return Row{keys: make([]string, 0, size), values: make(map[string]string, size)}
}

func (r *Row) set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the header names in column order.
func (r Row) Keys() []string {
	return r.keys
}

// Get returns the value for key, or "" when the column does not exist.
func (r Row) Get(key string) string {
	return r.values[key]
}

func (r Row) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Row) Len() int {
	return len(r.keys)
}

// Parse reads text as a header line followed by data rows.
// Blank input yields no rows.
func Parse(text string) []Row {
	records := Records(text)
	if len(records) == 0 {
		return []Row{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := newRow(len(headers))
		for i, h := range headers {
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			row.set(h, strings.TrimSpace(v))
		}
		rows = append(rows, row)
	}
	return rows
}

// Records tokenizes text into raw records. Quoted fields may contain commas,
// line breaks and doubled quotes. Values are not trimmed.
func Records(text string) [][]string {
	var (
		out    [][]string
		row    []string
		field  strings.Builder
		quoted bool
	)

	flush := func() {
		if field.Len() > 0 || len(row) > 0 {
			row = append(row, field.String())
			out = append(out, row)
		}
		row = nil
		field.Reset()
	}

	for i := 0; i < len(text); {
		c := text[i]

		if quoted {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i += 2
					continue
				}
				quoted = false
				i++
				continue
			}
			field.WriteByte(c)
			i++
			continue
		}

		switch c {
		case '"':
			quoted = true
			i++
		case ',':
			row = append(row, field.String())
			field.Reset()
			i++
		case '\n', '\r':
			flush()
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
		default:
			field.WriteByte(c)
			i++
		}
	}
	flush()

	return out
}
