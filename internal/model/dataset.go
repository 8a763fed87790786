package model

// Entry is one canonical usage event after merge: normalized identity and
// path plus the application category assigned from the path.
type Entry struct {
	Identity  string
	Path      string
	Timestamp string // raw source value; empty when the source had none
	Category  string
}

// Dataset is the merged canonical row set plus its provenance counters.
// TotalRows and DuplicateRows travel with the data through to reporting;
// they describe the merge, not any individual row.
type Dataset struct {
	Entries      []Entry
	Columns      []string // union of source columns, first-seen order
	Raw          []Record // rows in merge order, annotated with the category column
	HasTimestamp bool

	TotalRows     int
	DuplicateRows int
}
