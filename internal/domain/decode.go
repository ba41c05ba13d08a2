package domain

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte("\ufeff")

// DecodeText turns raw report bytes into text. Invalid UTF-8 sequences are
// dropped rather than rejected, a leading byte-order mark is removed and
// CRLF / CR line endings become LF.
func DecodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	text := strings.ToValidUTF8(string(b), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Convert decodes and parses a raw report into its output batch.
func Convert(raw RawReport) (Report, Batch) {
	report := ParseReport(DecodeText(raw.Content))
	return report, Batch{
		Source:  raw.Path,
		Dir:     raw.Dir,
		Name:    raw.Name,
		Records: report.Records(),
	}
}
