package domain

// Section is the block of a report a line belongs to.
type Section int

const (
	SectionNone Section = iota
	SectionStation
	SectionEvent
	SectionRecording
)

func (s Section) String() string {
	switch s {
	case SectionStation:
		return "station"
	case SectionEvent:
		return "event"
	case SectionRecording:
		return "recording"
	default:
		return "none"
	}
}

// RawReport is an unparsed report file as read from the input tree.
type RawReport struct {
	Path    string // source file path
	Dir     string // output directory key, relative to the output root
	Name    string // base name without extension
	Content []byte
}

// Sample is one Z/N/E acceleration triplet, kept as written in the source.
type Sample struct {
	Z string `json:"z"`
	N string `json:"n"`
	E string `json:"e"`
}

// Record is one output row: the report metadata plus a single sample.
// Records produced from the same report share their Metadata; treat it as
// read-only.
type Record struct {
	Metadata Metadata
	Sample   Sample
}

// Value returns the record's value for a CSV column name.
func (r Record) Value(column string) (string, bool) {
	switch column {
	case ColumnAccelZ:
		return r.Sample.Z, true
	case ColumnAccelN:
		return r.Sample.N, true
	case ColumnAccelE:
		return r.Sample.E, true
	}
	f, ok := FieldByColumn(column)
	if !ok {
		return "", false
	}
	return r.Metadata.Get(f)
}

// Columns returns the record's column names, metadata first.
func (r Record) Columns() []string {
	cols := make([]string, 0, r.Metadata.Len()+3)
	for _, f := range r.Metadata.Fields() {
		cols = append(cols, f.Column())
	}
	return append(cols, ColumnAccelZ, ColumnAccelN, ColumnAccelE)
}

// Row returns the record's values for header; missing columns are empty.
func (r Record) Row(header []string) []string {
	row := make([]string, len(header))
	for i, col := range header {
		row[i], _ = r.Value(col)
	}
	return row
}

// Map returns the record keyed by column name.
func (r Record) Map() map[string]string {
	m := r.Metadata.Map()
	m[ColumnAccelZ] = r.Sample.Z
	m[ColumnAccelN] = r.Sample.N
	m[ColumnAccelE] = r.Sample.E
	return m
}

// Header returns the union of the records' columns in first-seen order.
func Header(records []Record) []string {
	var header []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, col := range r.Columns() {
			if !seen[col] {
				seen[col] = true
				header = append(header, col)
			}
		}
	}
	return header
}

// Report is the parsed content of one report file.
type Report struct {
	Station   Metadata
	Event     Metadata
	Recording Metadata
	Samples   []Sample
}

// Metadata merges the station, event and recording blocks.
func (r Report) Metadata() Metadata {
	return r.Station.Merge(r.Event, r.Recording)
}

// Records pairs every sample with the merged metadata, in source order.
func (r Report) Records() []Record {
	if len(r.Samples) == 0 {
		return nil
	}
	md := r.Metadata()
	records := make([]Record, len(r.Samples))
	for i, s := range r.Samples {
		records[i] = Record{Metadata: md, Sample: s}
	}
	return records
}

// ReportSummary counts what the parser recognized in one report.
type ReportSummary struct {
	Sections        []Section
	StationFields   int
	EventFields     int
	RecordingFields int
	Samples         int
}

// Summary reports which sections yielded fields and how many samples were read.
func (r Report) Summary() ReportSummary {
	s := ReportSummary{
		StationFields:   r.Station.Len(),
		EventFields:     r.Event.Len(),
		RecordingFields: r.Recording.Len(),
		Samples:         len(r.Samples),
	}
	if s.StationFields > 0 {
		s.Sections = append(s.Sections, SectionStation)
	}
	if s.EventFields > 0 {
		s.Sections = append(s.Sections, SectionEvent)
	}
	if s.RecordingFields > 0 || s.Samples > 0 {
		s.Sections = append(s.Sections, SectionRecording)
	}
	return s
}

// Batch is the set of records converted from one report file.
type Batch struct {
	Source  string
	Dir     string
	Name    string
	Records []Record
}
