package course

import (
	"slices"
	"strings"

	"babylon/courseloader/subject"
)

const (
	undergraduatePrefix = "Bachelor"
	// graduateLevel is the first level that counts as graduate material.
	graduateLevel = 5
)

// Report is one course and the subjects that belong to it.
type Report struct {
	CourseName  string            `json:"course_name" bson:"course_name"`
	SubjectList []subject.Subject `json:"subject_list" bson:"subject_list"`
}

// IsUndergraduate reports whether the course only takes levels below graduateLevel.
func (d Definition) IsUndergraduate() bool {
	return strings.HasPrefix(d.Name, undergraduatePrefix)
}

// Accepts reports whether s fits this course by prefix and level.
func (d Definition) Accepts(s subject.Subject) bool {
	if !slices.Contains(d.Prefixes, s.Prefix()) {
		return false
	}

	level := s.Level()
	if level < 0 {
		return false
	}
	if d.IsUndergraduate() {
		return level < graduateLevel
	}

	return level >= graduateLevel
}

// Filter returns the subjects accepted by the course, in scan order.
// A code seen earlier wins; later lines with the same code are dropped.
func (d Definition) Filter(subjects []subject.Subject) Report {
	report := Report{
		CourseName:  d.Name,
		SubjectList: []subject.Subject{},
	}

	seen := make(map[string]bool)
	for _, s := range subjects {
		if !d.Accepts(s) || seen[s.Code] {
			continue
		}
		seen[s.Code] = true
		report.SubjectList = append(report.SubjectList, s)
	}

	return report
}
