package filesystem

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/seismic-report-etl/internal/domain"
)

// byteOrderMark prefixes every CSV file.
const byteOrderMark = "\ufeff"

// CSVWriter writes one CSV file per batch under an output root.
// It implements pipeline.Loader.
type CSVWriter struct {
	root   string
	logger *slog.Logger
}

// NewCSVWriter creates the output root if it is missing.
func NewCSVWriter(root string, logger *slog.Logger) (*CSVWriter, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output root %q: %w", root, err)
	}
	return &CSVWriter{root: root, logger: logger}, nil
}

// Prepare creates the output directory for dir if it is missing.
func (w *CSVWriter) Prepare(dir string) error {
	path := filepath.Join(w.root, dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", path, err)
	}
	return nil
}

// Target returns the CSV path a batch is written to.
func (w *CSVWriter) Target(batch domain.Batch) string {
	return filepath.Join(w.root, batch.Dir, batch.Name+".csv")
}

// Load writes the batch as a BOM-prefixed, CRLF-terminated CSV file. The
// header is the union of the records' columns in first-seen order.
func (w *CSVWriter) Load(_ context.Context, batch domain.Batch) error {
	if len(batch.Records) == 0 {
		return nil
	}
	if err := w.Prepare(batch.Dir); err != nil {
		return err
	}

	path := w.Target(batch)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %q: %w", path, err)
	}

	if err := writeCSV(f, batch.Records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv %q: %w", path, err)
	}

	w.logger.Debug("csv written", "output", path, "records", len(batch.Records))
	return nil
}

func writeCSV(f *os.File, records []domain.Record) error {
	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(byteOrderMark); err != nil {
		return err
	}

	cw := csv.NewWriter(bw)
	cw.UseCRLF = true

	header := domain.Header(records)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row(header)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
