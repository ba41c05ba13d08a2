package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/couchcryptid/seismic-report-etl/internal/domain"
)

// ReportTransformer implements Transformer using the domain parser.
type ReportTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(logger *slog.Logger) *ReportTransformer {
	return &ReportTransformer{logger: logger}
}

func (t *ReportTransformer) Transform(raw domain.RawReport) domain.Batch {
	report, batch := domain.Convert(raw)
	sum := report.Summary()
	t.logger.Debug("report parsed",
		"file", raw.Path,
		"sections", fmt.Sprint(sum.Sections),
		"station_fields", sum.StationFields,
		"event_fields", sum.EventFields,
		"recording_fields", sum.RecordingFields,
		"samples", sum.Samples,
	)
	return batch
}
