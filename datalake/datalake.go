// Package datalake pushes extracted course reports to the Babylon data lake.
package datalake

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"babylon/courseloader/appcontext"
	"babylon/courseloader/datalake/model"
	"babylon/courseloader/datalake/repository"
	"babylon/courseloader/report"
)

// Client publishes reports through a repository.
type Client interface {
	PublishReport(ctx context.Context, repo repository.Repository, rpt *report.Report, sourcePath string) (int, error)
}

type client struct {
	now func() time.Time
}

// NewClient creates a Client stamping records with the current time.
func NewClient() Client {
	return &client{now: time.Now}
}

// PublishReport stores every course in rpt, keyed by the base name of sourcePath.
// It returns the number of course records sent.
func (c *client) PublishReport(
	ctx context.Context,
	repo repository.Repository,
	rpt *report.Report,
	sourcePath string,
) (int, error) {
	logger := appcontext.LoggerFromContext(ctx)

	courses := ToCourseSubjects(rpt, filepath.Base(sourcePath), c.now())
	if len(courses) == 0 {
		logger.WarnContext(ctx, "Report has no courses, nothing to publish", "source", sourcePath)
		return 0, nil
	}

	logger.InfoContext(ctx, "Publishing course report", "source", sourcePath, "courses", len(courses))
	if err := repo.BulkUpsertCourseSubjects(ctx, courses); err != nil {
		return 0, fmt.Errorf("failed to bulk upsert course subjects: %w", err)
	}

	return len(courses), nil
}

// ToCourseSubjects maps a report to storage records, preserving report order.
func ToCourseSubjects(rpt *report.Report, sourceDocument string, extractedAt time.Time) []model.CourseSubjects {
	courses := make([]model.CourseSubjects, 0, len(rpt.CoursesAndSubjects))
	for _, c := range rpt.CoursesAndSubjects {
		courses = append(courses, model.CourseSubjects{
			CourseName:     c.CourseName,
			SourceDocument: sourceDocument,
			SubjectList:    c.SubjectList,
			SubjectCount:   len(c.SubjectList),
			ExtractedAt:    extractedAt,
		})
	}

	return courses
}
