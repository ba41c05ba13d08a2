package domain

import (
	"regexp"
	"strings"
)

// fieldRule extracts one labeled value (or the PGA triplet) from a line.
type fieldRule struct {
	// labels select the rule when any of them occurs in the folded line.
	labels []string
	// anchor, when set, must occur in the block's first line. It tells the
	// station and earthquake coordinates apart.
	anchor  string
	pattern *regexp.Regexp
	fields  []Field
}

func labeled(label string) string {
	return `(?i)` + label + `[^:]*:\s*`
}

var (
	anyValue     = `(.+)`
	signedNumber = `([-\d.]+)`
	number       = `([\d.]+)`
	integer      = `(\d+)`
)

var stationRules = []fieldRule{
	{labels: []string{"NOMBRE"}, pattern: regexp.MustCompile(labeled(`NOMBRE`) + anyValue), fields: []Field{StationName}},
	{labels: []string{"CODIGO"}, pattern: regexp.MustCompile(labeled(`C[OÓ]DIGO`) + anyValue), fields: []Field{StationCode}},
	{labels: []string{"LATITUD"}, anchor: "ESTACION", pattern: regexp.MustCompile(labeled(`LATITUD`) + signedNumber), fields: []Field{StationLatitude}},
	{labels: []string{"LONGITUD"}, anchor: "ESTACION", pattern: regexp.MustCompile(labeled(`LONGITUD`) + signedNumber), fields: []Field{StationLongitude}},
}

var eventRules = []fieldRule{
	{labels: []string{"FECHA LOCAL"}, pattern: regexp.MustCompile(labeled(`FECHA\s+LOCAL`) + anyValue), fields: []Field{EventLocalDate}},
	{labels: []string{"HORA LOCAL"}, pattern: regexp.MustCompile(labeled(`HORA\s+LOCAL`) + anyValue), fields: []Field{EventLocalTime}},
	{labels: []string{"LATITUD"}, anchor: "SISMO", pattern: regexp.MustCompile(labeled(`LATITUD`) + signedNumber), fields: []Field{EventLatitude}},
	{labels: []string{"LONGITUD"}, anchor: "SISMO", pattern: regexp.MustCompile(labeled(`LONGITUD`) + signedNumber), fields: []Field{EventLongitude}},
	{labels: []string{"PROFUNDIDAD"}, pattern: regexp.MustCompile(labeled(`PROFUNDIDAD`) + number), fields: []Field{EventDepth}},
	{labels: []string{"MAGNITUD"}, pattern: regexp.MustCompile(labeled(`MAGNITUD`) + anyValue), fields: []Field{EventMagnitude}},
	{labels: []string{"DIST. EPICENTRAL", "DIST.EPICENTRAL"}, pattern: regexp.MustCompile(labeled(`DIST\.\s*EPICENTRAL`) + number), fields: []Field{EventEpicentralDistance}},
}

var recordingRules = []fieldRule{
	{labels: []string{"TIEMPO DE INICIO"}, pattern: regexp.MustCompile(labeled(`TIEMPO\s+DE\s+INICIO`) + anyValue), fields: []Field{RecordingStartTime}},
	{labels: []string{"NUMERO DE MUESTRAS"}, pattern: regexp.MustCompile(labeled(`N[UÚ]MERO\s+DE\s+MUESTRAS`) + integer), fields: []Field{RecordingSampleCount}},
	{labels: []string{"MUESTREO"}, pattern: regexp.MustCompile(labeled(`MUESTREO`) + anyValue), fields: []Field{RecordingSamplingRate}},
	{labels: []string{"UNIDADES"}, pattern: regexp.MustCompile(labeled(`UNIDADES`) + anyValue), fields: []Field{RecordingUnits}},
	{
		labels:  []string{"PGA"},
		pattern: regexp.MustCompile(labeled(`PGA`) + number + `\s+` + number + `\s+` + number),
		fields:  []Field{RecordingPGAZ, RecordingPGAN, RecordingPGAE},
	},
}

func (r fieldRule) selects(upper, first string) bool {
	if r.anchor != "" && !strings.Contains(first, r.anchor) {
		return false
	}
	for _, l := range r.labels {
		if strings.Contains(upper, l) {
			return true
		}
	}
	return false
}

// extractFields applies rules to every line of a block. The first rule that
// selects a line owns it, even when its pattern then fails to match.
func extractFields(lines []string, rules []fieldRule) Metadata {
	var md Metadata
	if len(lines) == 0 {
		return md
	}
	first := fold(lines[0])
	for _, line := range lines {
		upper := fold(line)
		for _, rule := range rules {
			if !rule.selects(upper, first) {
				continue
			}
			if m := rule.pattern.FindStringSubmatch(line); m != nil {
				for i, f := range rule.fields {
					md.Set(f, strings.TrimSpace(m[i+1]))
				}
			}
			break
		}
	}
	return md
}
