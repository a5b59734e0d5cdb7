// Package csv flattens a course report into CSV rows.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"babylon/courseloader/appcontext"
	"babylon/courseloader/report"
)

var errWriteCsv = errors.New("error while writing CSV report")

// Header is the first row of every CSV report.
var Header = []string{"course_name", "subject_code", "subject_name"}

// WriteCsvError wraps errWriteCsv with the failing course.
func WriteCsvError(courseName string, baseErr error) error {
	return fmt.Errorf("%w, %s: %w", errWriteCsv, courseName, baseErr)
}

// WriteReport writes one row per (course, subject) pair, in report order.
func WriteReport(ctx context.Context, w io.Writer, rpt *report.Report) (int64, error) {
	logger := appcontext.LoggerFromContext(ctx)

	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	var rowsWritten int64
	for _, c := range rpt.CoursesAndSubjects {
		for _, s := range c.SubjectList {
			if err := writer.Write([]string{c.CourseName, s.Code, s.Name}); err != nil {
				return rowsWritten, WriteCsvError(c.CourseName, err)
			}
			rowsWritten++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rowsWritten, fmt.Errorf("failed to flush CSV report: %w", err)
	}

	logger.DebugContext(ctx, "Wrote CSV report", "rows", rowsWritten, "courses", len(rpt.CoursesAndSubjects))
	return rowsWritten, nil
}
