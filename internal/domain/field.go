package domain

// Field identifies one metadata column of an output record.
type Field int

const (
	StationName Field = iota
	StationCode
	StationLatitude
	StationLongitude
	EventLocalDate
	EventLocalTime
	EventLatitude
	EventLongitude
	EventDepth
	EventMagnitude
	EventEpicentralDistance
	RecordingStartTime
	RecordingSampleCount
	RecordingSamplingRate
	RecordingUnits
	RecordingPGAZ
	RecordingPGAN
	RecordingPGAE

	fieldCount
)

// Column names match the CSV headers produced by the legacy converter so
// downstream notebooks keep working.
var fieldColumns = [fieldCount]string{
	StationName:             "nombre",
	StationCode:             "codigo",
	StationLatitude:         "latitud_estacion",
	StationLongitude:        "longitud_estacion",
	EventLocalDate:          "fecha_local",
	EventLocalTime:          "hora_local",
	EventLatitude:           "latitud_sismo",
	EventLongitude:          "longitud_sismo",
	EventDepth:              "profundidad",
	EventMagnitude:          "magnitud",
	EventEpicentralDistance: "dist_epicentral",
	RecordingStartTime:      "tiempo_inicio",
	RecordingSampleCount:    "num_muestras",
	RecordingSamplingRate:   "muestreo",
	RecordingUnits:          "unidades",
	RecordingPGAZ:           "pga_z",
	RecordingPGAN:           "pga_n",
	RecordingPGAE:           "pga_e",
}

// Sample columns are appended after the metadata columns.
const (
	ColumnAccelZ = "acel_z"
	ColumnAccelN = "acel_n"
	ColumnAccelE = "acel_e"
)

// Column returns the CSV column name of the field, or "" for an unknown field.
func (f Field) Column() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldColumns[f]
}

func (f Field) String() string {
	if c := f.Column(); c != "" {
		return c
	}
	return "unknown"
}

// FieldByColumn looks up a field by its CSV column name.
func FieldByColumn(column string) (Field, bool) {
	for f := Field(0); f < fieldCount; f++ {
		if fieldColumns[f] == column {
			return f, true
		}
	}
	return 0, false
}

// Metadata is a sparse, insertion-ordered mapping from Field to value.
// The zero value is empty and ready to use.
type Metadata struct {
	entries []metadataEntry
}

type metadataEntry struct {
	field Field
	value string
}

// Set stores value for f. Overwriting keeps the field's first position.
func (m *Metadata) Set(f Field, value string) {
	for i := range m.entries {
		if m.entries[i].field == f {
			m.entries[i].value = value
			return
		}
	}
	m.entries = append(m.entries, metadataEntry{field: f, value: value})
}

// Get returns the value of f and whether it is present.
func (m Metadata) Get(f Field) (string, bool) {
	for _, e := range m.entries {
		if e.field == f {
			return e.value, true
		}
	}
	return "", false
}

// Has reports whether f is present.
func (m Metadata) Has(f Field) bool {
	_, ok := m.Get(f)
	return ok
}

// Len returns the number of present fields.
func (m Metadata) Len() int { return len(m.entries) }

// Fields returns the present fields in insertion order.
func (m Metadata) Fields() []Field {
	out := make([]Field, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.field
	}
	return out
}

// Merge returns a new Metadata holding m followed by each of others.
// Later values win on conflicts.
func (m Metadata) Merge(others ...Metadata) Metadata {
	n := len(m.entries)
	for _, o := range others {
		n += len(o.entries)
	}
	merged := Metadata{entries: make([]metadataEntry, 0, n)}
	merged.entries = append(merged.entries, m.entries...)
	for _, o := range others {
		for _, e := range o.entries {
			merged.Set(e.field, e.value)
		}
	}
	return merged
}

// Equal reports whether both mappings hold the same fields, values and order.
func (m Metadata) Equal(o Metadata) bool {
	if len(m.entries) != len(o.entries) {
		return false
	}
	for i := range m.entries {
		if m.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

// Map returns the metadata keyed by column name.
func (m Metadata) Map() map[string]string {
	out := make(map[string]string, len(m.entries))
	for _, e := range m.entries {
		out[e.field.Column()] = e.value
	}
	return out
}
