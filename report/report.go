// Package report assembles per-course subject lists into the final report.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"babylon/courseloader/appcontext"
	"babylon/courseloader/course"
	"babylon/courseloader/subject"
)

const jsonIndent = "  "

// Report is the output of a run. Courses with no subjects are left out.
type Report struct {
	CoursesAndSubjects []course.Report `json:"courses_and_subjects" bson:"courses_and_subjects"`
}

// Assemble filters subjects for every course in catalog order and keeps the non-empty results.
func Assemble(ctx context.Context, catalog course.Catalog, subjects []subject.Subject) *Report {
	logger := appcontext.LoggerFromContext(ctx)

	report := &Report{CoursesAndSubjects: []course.Report{}}
	for _, def := range catalog {
		result := def.Filter(subjects)
		if len(result.SubjectList) == 0 {
			logger.DebugContext(ctx, "Omitting course with no subjects", "course", def.Name)
			continue
		}
		report.CoursesAndSubjects = append(report.CoursesAndSubjects, result)
	}

	return report
}

// Course returns the entry for name, if the report has one.
func (r *Report) Course(name string) (course.Report, bool) {
	for _, c := range r.CoursesAndSubjects {
		if c.CourseName == name {
			return c, true
		}
	}

	return course.Report{}, false
}

// JSON renders the report with two-space indentation. HTML characters are
// left as-is and there is no trailing newline.
func (r *Report) JSON() (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)

	if err := encoder.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
