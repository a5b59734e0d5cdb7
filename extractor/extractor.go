// Package extractor runs a full extraction: scan the course document, build the report,
// render it and, when asked, write or publish it.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"babylon/courseloader/appcontext"
	"babylon/courseloader/config"
	"babylon/courseloader/course"
	csvreport "babylon/courseloader/csv"
	"babylon/courseloader/datalake"
	"babylon/courseloader/datalake/repository"
	"babylon/courseloader/report"
	"babylon/courseloader/subject"
)

// ErrMissingDependency is returned by New when a required dependency is nil.
var ErrMissingDependency = errors.New("missing extractor dependency")

// Dependencies holds everything an Extractor needs.
type Dependencies struct {
	Config  *config.Config
	Scanner subject.Scanner
	Catalog course.Catalog
}

// Extractor turns a course document into a course report.
type Extractor struct {
	deps        Dependencies
	InputPath   string
	OutputPath  string
	WriteOutput bool
	Format      string
}

// Result is everything produced by a single extraction.
type Result struct {
	Subjects []subject.Subject
	Report   *report.Report
	Stats    *report.Stats
}

// New creates a new Extractor. A nil Scanner falls back to the line scanner
// and an empty Catalog to the built-in course table.
func New(deps Dependencies) (*Extractor, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("%w: config", ErrMissingDependency)
	}
	if deps.Scanner == nil {
		deps.Scanner = subject.NewLineScanner()
	}
	if len(deps.Catalog) == 0 {
		deps.Catalog = course.DefaultCatalog()
	}

	return &Extractor{
		deps:        deps,
		InputPath:   deps.Config.InputPath,
		OutputPath:  deps.Config.OutputPath,
		WriteOutput: deps.Config.WriteOutput,
		Format:      deps.Config.Format,
	}, nil
}

// Extract scans the input document and assembles the report.
func (e *Extractor) Extract(ctx context.Context) (*Result, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Starting course extraction", "input", e.InputPath, "courses", len(e.deps.Catalog))

	subjects, linesRead, err := e.deps.Scanner.ScanFile(ctx, e.InputPath)
	if err != nil {
		return nil, fmt.Errorf("scan of %s failed: %w", e.InputPath, err)
	}

	rpt := report.Assemble(ctx, e.deps.Catalog, subjects)

	return &Result{
		Subjects: subjects,
		Report:   rpt,
		Stats:    report.NewStats(linesRead, subjects, e.deps.Catalog, rpt),
	}, nil
}

// Run extracts the report, renders it in the configured format and writes it to
// OutputPath when WriteOutput is set. Nothing is written if any step fails.
func (e *Extractor) Run(ctx context.Context) (string, error) {
	logger := appcontext.LoggerFromContext(ctx)

	result, err := e.Extract(ctx)
	if err != nil {
		return "", err
	}

	rendered, err := Render(ctx, result.Report, e.Format)
	if err != nil {
		return "", err
	}

	if e.WriteOutput {
		if err = WriteFileAtomic(e.OutputPath, []byte(rendered)); err != nil {
			return "", fmt.Errorf("writing report to %s failed: %w", e.OutputPath, err)
		}
		logger.InfoContext(ctx, "Report saved", "path", e.OutputPath, "format", e.Format)
	}

	result.Stats.Log(ctx, logger)
	return rendered, nil
}

// Publish extracts the report and stores it through repo.
func (e *Extractor) Publish(ctx context.Context, client datalake.Client, repo repository.Repository) (int, error) {
	logger := appcontext.LoggerFromContext(ctx)

	result, err := e.Extract(ctx)
	if err != nil {
		return 0, err
	}

	published, err := client.PublishReport(ctx, repo, result.Report, e.InputPath)
	if err != nil {
		return 0, fmt.Errorf("publishing report failed: %w", err)
	}

	result.Stats.Log(ctx, logger)
	return published, nil
}

// Render serializes rpt as json or csv.
func Render(ctx context.Context, rpt *report.Report, format string) (string, error) {
	switch format {
	case config.FormatJSON, "":
		return rpt.JSON()
	case config.FormatCSV:
		var buf bytes.Buffer
		if _, err := csvreport.WriteReport(ctx, &buf, rpt); err != nil {
			return "", fmt.Errorf("failed to render CSV report: %w", err)
		}
		return buf.String(), nil
	default:
		return "", config.UnknownFormatError(format)
	}
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place,
// so readers never see a partial report.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s to %s: %w", tmpName, path, err)
	}

	return nil
}
