package model

import (
	"time"

	"babylon/courseloader/subject"
)

// CourseSubjects is one course from a report, mapped for storage.
// A course is keyed by its name and the document it was extracted from.
type CourseSubjects struct {
	CourseName     string            `bson:"course_name"`
	SourceDocument string            `bson:"source_document"`
	SubjectList    []subject.Subject `bson:"subject_list"`
	SubjectCount   int               `bson:"subject_count"`
	ExtractedAt    time.Time         `bson:"extracted_at"`
}
