package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/seismic-report-etl/internal/adapter/filesystem"
	"github.com/couchcryptid/seismic-report-etl/internal/config"
	"github.com/couchcryptid/seismic-report-etl/internal/observability"
	"github.com/couchcryptid/seismic-report-etl/internal/pipeline"
)

// buildTree lays out an input tree with two PRQ branches that share a parent
// name and one report without samples.
func buildTree(t *testing.T) (input, output string) {
	t.Helper()
	base := t.TempDir()
	input = filepath.Join(base, "2021")
	output = filepath.Join(base, "2021_csv")

	fixture := loadFixture(t)
	writeFile(t, filepath.Join(input, "noviembre", "PRQ", "PRQ_20211128.txt"), fixture)
	writeFile(t, filepath.Join(input, "diciembre", "PRQ", "PRQ_20211201.txt"), fixture)
	writeFile(t, filepath.Join(input, "CSM", "CSM_20211128.txt"), []byte("ESTACION SISMICA\nNOMBRE : CASA\n"))
	writeFile(t, filepath.Join(input, "CSM", "readme.md"), []byte("not a report"))
	return input, output
}

func runConversion(t *testing.T, cfg *config.Config) pipeline.Summary {
	t.Helper()
	logger := discardLogger()
	writer, err := filesystem.NewCSVWriter(cfg.OutputRoot, logger)
	require.NoError(t, err)

	p := pipeline.New(filesystem.NewSource(cfg, logger), pipeline.NewTransformer(logger), writer,
		logger, observability.NewMetrics(nil))
	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	return summary
}

func TestConvertTree(t *testing.T) {
	input, output := buildTree(t)
	cfg := &config.Config{InputRoot: input, OutputRoot: output, InputExt: ".txt", OutputLayout: config.LayoutParent}

	summary := runConversion(t, cfg)

	assert.Equal(t, 3, summary.FilesFound)
	assert.Equal(t, 2, summary.FilesConverted)
	assert.Equal(t, 1, summary.FilesSkipped)
	assert.Equal(t, 0, summary.FilesFailed)
	assert.Equal(t, 10, summary.RecordsWritten)
	want := []pipeline.DirSummary{
		{Name: "CSM", Files: 1, Converted: 0},
		{Name: "PRQ", Files: 2, Converted: 2},
	}
	if diff := cmp.Diff(want, summary.Dirs); diff != "" {
		t.Fatalf("dir summary mismatch (-want +got):\n%s", diff)
	}

	// Both PRQ branches land in one output directory.
	assert.FileExists(t, filepath.Join(output, "PRQ", "PRQ_20211128.csv"))
	assert.FileExists(t, filepath.Join(output, "PRQ", "PRQ_20211201.csv"))

	// The skipped report still gets its directory, but no CSV.
	assert.DirExists(t, filepath.Join(output, "CSM"))
	assert.NoFileExists(t, filepath.Join(output, "CSM", "CSM_20211128.csv"))

	data, err := os.ReadFile(filepath.Join(output, "PRQ", "PRQ_20211128.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "\ufeffnombre,codigo,latitud_estacion,longitud_estacion,"))
	assert.True(t, strings.HasSuffix(lines[0], ",acel_z,acel_n,acel_e"))
	assert.True(t, strings.HasPrefix(lines[1], "PARQUE DE LA RESERVA,PRQ,-12.0699,-77.0339,"))
}

func TestConvertTree_RerunIsByteIdentical(t *testing.T) {
	input, output := buildTree(t)
	cfg := &config.Config{InputRoot: input, OutputRoot: output, InputExt: ".txt", OutputLayout: config.LayoutParent}
	target := filepath.Join(output, "PRQ", "PRQ_20211128.csv")

	runConversion(t, cfg)
	first, err := os.ReadFile(target)
	require.NoError(t, err)

	runConversion(t, cfg)
	second, err := os.ReadFile(target)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConvertTree_RelativeLayout(t *testing.T) {
	input, output := buildTree(t)
	cfg := &config.Config{InputRoot: input, OutputRoot: output, InputExt: ".txt", OutputLayout: config.LayoutRelative}

	summary := runConversion(t, cfg)

	assert.Equal(t, 3, summary.DirsSeen())
	assert.FileExists(t, filepath.Join(output, "noviembre", "PRQ", "PRQ_20211128.csv"))
	assert.FileExists(t, filepath.Join(output, "diciembre", "PRQ", "PRQ_20211201.csv"))
}

func TestConvertTree_MissingInputRoot(t *testing.T) {
	base := t.TempDir()
	cfg := &config.Config{
		InputRoot:    filepath.Join(base, "missing"),
		OutputRoot:   filepath.Join(base, "out"),
		InputExt:     ".txt",
		OutputLayout: config.LayoutParent,
	}

	summary := runConversion(t, cfg)

	assert.Zero(t, summary.FilesFound)
	assert.Zero(t, summary.DirsSeen())
	assert.DirExists(t, cfg.OutputRoot)
}
