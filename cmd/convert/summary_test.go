package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/seismic-report-etl/internal/pipeline"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, "2021_csv", pipeline.Summary{
		FilesFound:     3,
		FilesConverted: 2,
		FilesSkipped:   1,
		RecordsWritten: 10,
		Dirs: []pipeline.DirSummary{
			{Name: "CSM", Files: 1},
			{Name: "PRQ", Files: 2, Converted: 2},
		},
	})

	want := "Conversion complete\n" +
		"  directories:     2\n" +
		"  files found:     3\n" +
		"  files converted: 2\n" +
		"  files skipped:   1\n" +
		"  files failed:    0\n" +
		"  records written: 10\n" +
		"Output in 2021_csv\n" +
		"  " + filepath.Join("2021_csv", "CSM") + ": 0 csv\n" +
		"  " + filepath.Join("2021_csv", "PRQ") + ": 2 csv\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummary_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, "out", pipeline.Summary{PublishErrors: 1})

	assert.Contains(t, buf.String(), "files found:     0\n")
	assert.Contains(t, buf.String(), "publish errors:  1\n")
	assert.NotContains(t, buf.String(), "Output in")
}
