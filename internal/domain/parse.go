package domain

import (
	"regexp"
	"strings"
)

var (
	// tripletRe matches a bare sample line: exactly three numeric tokens,
	// e.g. "  0.012  -0.034  0.005".
	tripletRe = regexp.MustCompile(`^\s*[-\d.]+\s+[-\d.]+\s+[-\d.]+\s*$`)

	// accentFolder strips the Spanish accents that some networks put in
	// headings and labels ("ESTACIÓN SÍSMICA", "CÓDIGO").
	accentFolder = strings.NewReplacer("Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U")
)

// fold upper-cases a line and removes accents so keyword checks are
// insensitive to both.
func fold(line string) string {
	return accentFolder.Replace(strings.ToUpper(line))
}

// lineKind says what the scanner does with a line.
type lineKind int

const (
	lineDrop lineKind = iota
	lineSection
	lineColumnHeader
	lineSample
)

// scanState is the classifier state carried from one line to the next.
type scanState struct {
	section   Section
	capturing bool
}

// next classifies line and returns the state for the following line.
// Section headings reset nothing once the sample table has started.
func (s scanState) next(line string) (scanState, lineKind) {
	upper := fold(line)

	if s.capturing {
		if isColumnHeader(upper) || strings.TrimSpace(line) == "" {
			return s, lineDrop
		}
		return s, lineSample
	}

	switch {
	case isStationHeading(upper):
		s.section = SectionStation
	case strings.Contains(upper, "SISMO") && !strings.Contains(upper, "ESTACION"):
		s.section = SectionEvent
	case strings.Contains(upper, "REGISTRO"):
		s.section = SectionRecording
	case isColumnHeader(upper):
		s.capturing = true
		return s, lineColumnHeader
	case s.section == SectionRecording && tripletRe.MatchString(line):
		s.capturing = true
		return s, lineSample
	}

	if s.section == SectionNone {
		return s, lineDrop
	}
	return s, lineSection
}

func isStationHeading(upper string) bool {
	return strings.Contains(upper, "ESTACION SISMICA")
}

// isColumnHeader reports whether a folded line is the "Z N E" heading of the
// sample table. Labeled lines such as "PGA (Z N E) : ..." are not headings.
func isColumnHeader(upper string) bool {
	if strings.Contains(upper, ":") {
		return false
	}
	tokens := strings.Fields(upper)
	for i := 0; i+2 < len(tokens); i++ {
		if tokens[i] == "Z" && tokens[i+1] == "N" && tokens[i+2] == "E" {
			return true
		}
	}
	return false
}

// sections holds the lines collected for each block of one report.
type sections struct {
	station   []string
	event     []string
	recording []string
	samples   []string
}

func splitSections(text string) sections {
	var (
		out   sections
		state scanState
		kind  lineKind
	)
	for _, line := range strings.Split(text, "\n") {
		state, kind = state.next(line)
		switch kind {
		case lineSample:
			out.samples = append(out.samples, strings.TrimSpace(line))
		case lineSection:
			switch state.section {
			case SectionStation:
				out.station = append(out.station, line)
			case SectionEvent:
				out.event = append(out.event, line)
			case SectionRecording:
				out.recording = append(out.recording, line)
			}
		}
	}
	return out
}

// ParseReport parses the decoded text of one report. It never fails:
// unrecognized content simply yields absent fields and no samples.
func ParseReport(text string) Report {
	s := splitSections(text)
	return Report{
		Station:   extractFields(s.station, stationRules),
		Event:     extractFields(s.event, eventRules),
		Recording: extractFields(s.recording, recordingRules),
		Samples:   parseSamples(s.samples),
	}
}

// parseSamples keeps lines with at least three tokens and maps the first
// three to Z, N and E.
func parseSamples(lines []string) []Sample {
	samples := make([]Sample, 0, len(lines))
	for _, line := range lines {
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		samples = append(samples, Sample{Z: parts[0], N: parts[1], E: parts[2]})
	}
	return samples
}
