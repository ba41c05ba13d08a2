package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/seismic-report-etl/internal/config"
	"github.com/couchcryptid/seismic-report-etl/internal/domain"
)

// Source discovers and reads report files under an input root.
// It implements pipeline.Extractor.
type Source struct {
	root   string
	ext    string
	layout string
	logger *slog.Logger
}

// NewSource creates a Source for the configured input tree.
func NewSource(cfg *config.Config, logger *slog.Logger) *Source {
	return &Source{
		root:   cfg.InputRoot,
		ext:    cfg.InputExt,
		layout: cfg.OutputLayout,
		logger: logger,
	}
}

// List returns every file under the root whose name ends in the configured
// extension, in lexical order. A missing root yields no files.
// Unreadable subdirectories are logged and skipped.
func (s *Source) List() ([]string, error) {
	if _, err := os.Stat(s.root); errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("input root does not exist", "root", s.root)
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), s.ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input root %q: %w", s.root, err)
	}
	return paths, nil
}

// Extract reads one report file. The output directory key is resolved
// before reading so callers can still account for the directory when the
// read fails.
func (s *Source) Extract(path string) (domain.RawReport, error) {
	raw := domain.RawReport{
		Path: path,
		Dir:  s.outputDir(path),
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return raw, fmt.Errorf("read report %q: %w", path, err)
	}
	raw.Content = content
	return raw, nil
}

// outputDir maps an input path to its directory under the output root.
func (s *Source) outputDir(path string) string {
	if s.layout == config.LayoutRelative {
		if rel, err := filepath.Rel(s.root, filepath.Dir(path)); err == nil {
			return rel
		}
	}
	return parentName(path)
}

// parentName returns the name of the file's immediate parent directory.
// Files sitting directly in a relative root such as "." fall back to the
// absolute directory name.
func parentName(path string) string {
	dir := filepath.Dir(path)
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		if abs, err := filepath.Abs(dir); err == nil {
			name = filepath.Base(abs)
		}
	}
	return name
}
