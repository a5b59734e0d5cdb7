package subject

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// prefixLength is the number of letters that open every subject code.
	prefixLength = 2
	codeLength   = 6
)

var codePattern = regexp.MustCompile(`^[A-Z]{2}\d{4}$`)

// ErrInvalidSubjectCode is returned when a code does not have the XX0000 shape.
var ErrInvalidSubjectCode = errors.New("invalid subject code")

// InvalidSubjectCodeError wraps ErrInvalidSubjectCode with the offending code.
func InvalidSubjectCodeError(code string) error {
	return fmt.Errorf("%w, %q", ErrInvalidSubjectCode, code)
}

// Subject is a single subject line pulled out of a course document.
type Subject struct {
	Code string `json:"subject_code" bson:"subject_code"`
	Name string `json:"subject_name" bson:"subject_name"`
}

// Prefix returns the two letter subject area, e.g. "BU" for BU1001.
func (s Subject) Prefix() string {
	if len(s.Code) < prefixLength {
		return s.Code
	}

	return s.Code[:prefixLength]
}

// Level returns the digit immediately after the prefix, e.g. 1 for BU1001.
// It returns -1 when the code is too short to carry a level digit.
func (s Subject) Level() int {
	if len(s.Code) <= prefixLength {
		return -1
	}

	d := s.Code[prefixLength]
	if d < '0' || d > '9' {
		return -1
	}

	return int(d - '0')
}

// Validate checks that the code has the XX0000 shape.
func (s Subject) Validate() error {
	if len(s.Code) != codeLength || !codePattern.MatchString(s.Code) {
		return InvalidSubjectCodeError(s.Code)
	}

	return nil
}
