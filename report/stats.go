package report

import (
	"context"
	"fmt"
	"log/slog"

	"babylon/courseloader/course"
	"babylon/courseloader/subject"
)

// Stats holds counters about a single extraction run.
type Stats struct {
	LinesRead      int
	SubjectLines   int
	DistinctCodes  int
	CoursesEmitted int
	CoursesOmitted []string
}

// NewStats builds the statistics for a run from its scan and its report.
func NewStats(linesRead int, subjects []subject.Subject, catalog course.Catalog, report *Report) *Stats {
	codes := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		codes[s.Code] = struct{}{}
	}

	stats := &Stats{
		LinesRead:      linesRead,
		SubjectLines:   len(subjects),
		DistinctCodes:  len(codes),
		CoursesEmitted: len(report.CoursesAndSubjects),
	}
	for _, def := range catalog {
		if _, ok := report.Course(def.Name); !ok {
			stats.CoursesOmitted = append(stats.CoursesOmitted, def.Name)
		}
	}

	return stats
}

// Log prints the final statistics to the provided logger.
func (s *Stats) Log(ctx context.Context, logger *slog.Logger) {
	logger.InfoContext(ctx, "--- Extraction Stats ---")
	logger.InfoContext(ctx, fmt.Sprintf("Lines read: %d", s.LinesRead))
	logger.InfoContext(ctx, fmt.Sprintf("Subject lines matched: %d", s.SubjectLines))
	logger.InfoContext(ctx, fmt.Sprintf("Distinct subject codes: %d", s.DistinctCodes))
	logger.InfoContext(ctx, fmt.Sprintf("Courses in report: %d", s.CoursesEmitted))
	if len(s.CoursesOmitted) > 0 {
		logger.InfoContext(ctx, "Courses omitted (no matching subjects):")
		for _, name := range s.CoursesOmitted {
			logger.InfoContext(ctx, "- "+name)
		}
	}
	logger.InfoContext(ctx, "------------------------")
}
