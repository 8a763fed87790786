package model

// Record is one parsed source row, keyed by column name.
type Record map[string]string

// Frame is the parsed content of a single source: its columns in file order
// and its rows in file order.
type Frame struct {
	Source  string
	Columns []string
	Records []Record
}

// HasColumn reports whether the frame's header contains the given column.
func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.Columns {
		if c == name {
			return true
		}
	}
	return false
}
