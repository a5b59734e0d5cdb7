package repository

import (
	"context"

	"babylon/courseloader/datalake/model"
)

// Repository defines the interface for storing extracted course reports.
type Repository interface {
	BulkUpsertCourseSubjects(ctx context.Context, courses []model.CourseSubjects) error
}
