package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/seismic-report-etl/internal/domain"
	"github.com/couchcryptid/seismic-report-etl/internal/observability"
)

// Extractor lists report files and reads them one at a time.
type Extractor interface {
	List() ([]string, error)
	Extract(path string) (domain.RawReport, error)
}

// Transformer converts a raw report into its batch of output records.
type Transformer interface {
	Transform(raw domain.RawReport) domain.Batch
}

// Loader writes converted batches to the output tree.
type Loader interface {
	Prepare(dir string) error
	Load(ctx context.Context, batch domain.Batch) error
}

// Publisher is an optional secondary sink for converted batches.
type Publisher interface {
	Publish(ctx context.Context, batch domain.Batch) error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPublisher also sends every converted batch to pub. Publish failures
// are logged and counted but do not fail the file.
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithClock swaps the time source used for durations.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// Pipeline converts every report file under the input root, one file at a time.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	publisher   Publisher
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DirSummary counts the files of one output directory.
type DirSummary struct {
	Name      string
	Files     int
	Converted int
}

// Summary describes a finished run.
type Summary struct {
	FilesFound     int
	FilesConverted int
	FilesSkipped   int
	FilesFailed    int
	RecordsWritten int
	PublishErrors  int
	Dirs           []DirSummary // sorted by name
	Duration       time.Duration
}

// DirsSeen is the number of distinct output directories the inputs mapped to.
func (s Summary) DirsSeen() int { return len(s.Dirs) }

// Run converts every listed file. Per-file failures are logged and counted;
// only a failure to list the input tree is returned.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := p.clock.Now()

	paths, err := p.extractor.List()
	if err != nil {
		return Summary{}, fmt.Errorf("list reports: %w", err)
	}
	p.metrics.FilesDiscovered.Add(float64(len(paths)))
	p.logger.Info("conversion started", "files", len(paths))

	t := newTally()
	for _, path := range paths {
		p.processFile(ctx, path, t)
	}

	summary := t.summary(len(paths), p.clock.Since(start))
	p.metrics.RunDuration.Set(summary.Duration.Seconds())
	if summary.FilesFailed == 0 {
		p.metrics.LastRunSuccess.Set(1)
	} else {
		p.metrics.LastRunSuccess.Set(0)
	}

	p.logger.Info("conversion complete",
		"files", summary.FilesFound,
		"converted", summary.FilesConverted,
		"skipped", summary.FilesSkipped,
		"failed", summary.FilesFailed,
		"records", summary.RecordsWritten,
		"dirs", summary.DirsSeen(),
		"duration", summary.Duration,
	)
	return summary, nil
}

// processFile runs extract, transform and load for one report file.
func (p *Pipeline) processFile(ctx context.Context, path string, t *tally) {
	start := p.clock.Now()
	defer func() {
		p.metrics.FileProcessingDuration.Observe(p.clock.Since(start).Seconds())
	}()

	p.logger.Info("processing file", "file", path)

	raw, err := p.extractor.Extract(path)
	t.seeDir(raw.Dir)
	if prepErr := p.loader.Prepare(raw.Dir); prepErr != nil {
		p.fail(t, path, "prepare output directory failed", prepErr)
		return
	}
	if err != nil {
		p.fail(t, path, "read report failed", err)
		return
	}

	batch := p.transformer.Transform(raw)
	if len(batch.Records) == 0 {
		p.logger.Warn("no records extracted, skipping file", "file", path)
		p.metrics.FilesSkipped.Inc()
		t.skipped++
		return
	}

	if err := p.loader.Load(ctx, batch); err != nil {
		p.fail(t, path, "write csv failed", err)
		return
	}

	n := len(batch.Records)
	t.converted(batch.Dir, n)
	p.metrics.FilesConverted.Inc()
	p.metrics.RecordsWritten.Add(float64(n))
	p.metrics.SamplesPerFile.Observe(float64(n))
	p.logger.Info("file converted", "file", path, "dir", batch.Dir, "records", n)

	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, batch); err != nil {
		p.logger.Warn("publish records failed", "file", path, "error", err)
		p.metrics.PublishErrors.Inc()
		t.publishErrors++
	}
}

func (p *Pipeline) fail(t *tally, path, msg string, err error) {
	p.logger.Error(msg, "file", path, "error", err)
	p.metrics.FilesFailed.Inc()
	t.failed++
}

// tally accumulates per-run counts.
type tally struct {
	dirs          map[string]*DirSummary
	convertedN    int
	skipped       int
	failed        int
	records       int
	publishErrors int
}

func newTally() *tally {
	return &tally{dirs: make(map[string]*DirSummary)}
}

func (t *tally) seeDir(name string) {
	d, ok := t.dirs[name]
	if !ok {
		d = &DirSummary{Name: name}
		t.dirs[name] = d
	}
	d.Files++
}

func (t *tally) converted(dir string, records int) {
	t.convertedN++
	t.records += records
	if d, ok := t.dirs[dir]; ok {
		d.Converted++
	}
}

func (t *tally) summary(found int, d time.Duration) Summary {
	dirs := make([]DirSummary, 0, len(t.dirs))
	for _, ds := range t.dirs {
		dirs = append(dirs, *ds)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })

	return Summary{
		FilesFound:     found,
		FilesConverted: t.convertedN,
		FilesSkipped:   t.skipped,
		FilesFailed:    t.failed,
		RecordsWritten: t.records,
		PublishErrors:  t.publishErrors,
		Dirs:           dirs,
		Duration:       d,
	}
}
