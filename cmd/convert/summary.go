package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/couchcryptid/seismic-report-etl/internal/pipeline"
)

// printSummary writes the end-of-run report for a human reader.
func printSummary(w io.Writer, outputRoot string, s pipeline.Summary) {
	fmt.Fprintln(w, "Conversion complete")
	fmt.Fprintf(w, "  directories:     %d\n", s.DirsSeen())
	fmt.Fprintf(w, "  files found:     %d\n", s.FilesFound)
	fmt.Fprintf(w, "  files converted: %d\n", s.FilesConverted)
	fmt.Fprintf(w, "  files skipped:   %d\n", s.FilesSkipped)
	fmt.Fprintf(w, "  files failed:    %d\n", s.FilesFailed)
	fmt.Fprintf(w, "  records written: %d\n", s.RecordsWritten)
	if s.PublishErrors > 0 {
		fmt.Fprintf(w, "  publish errors:  %d\n", s.PublishErrors)
	}
	if len(s.Dirs) == 0 {
		return
	}
	fmt.Fprintf(w, "Output in %s\n", outputRoot)
	for _, d := range s.Dirs {
		fmt.Fprintf(w, "  %s: %d csv\n", filepath.Join(outputRoot, d.Name), d.Converted)
	}
}
