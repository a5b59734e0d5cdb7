// Package subject pulls subject codes and names out of course documents.
package subject

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"babylon/courseloader/appcontext"
)

// linePattern matches "BU1001 – Introduction to Business". The separator is an en dash and
// may be padded with any Unicode space, including no-break spaces and the byte order mark.
var linePattern = regexp.MustCompile(`^([A-Z]{2}\d{4})` + spaceClass + `*–` + spaceClass + `*(.+)$`)

const spaceClass = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// ErrInputNotFound is returned when the document to scan does not exist.
var ErrInputNotFound = errors.New("input document not found")

// InputNotFoundError wraps ErrInputNotFound with the missing path.
func InputNotFoundError(path string) error {
	return fmt.Errorf("%w, %s", ErrInputNotFound, path)
}

// Scanner defines the interface for reading subjects out of a document on disk.
type Scanner interface {
	ScanFile(ctx context.Context, path string) ([]Subject, int, error)
}

// LineScanner is the default Scanner. It treats every line on its own.
type LineScanner struct{}

// NewLineScanner creates a new LineScanner.
func NewLineScanner() *LineScanner {
	return &LineScanner{}
}

// ScanFile reads the whole file at path and scans it. It returns the subjects
// in document order and the number of lines read.
func (s *LineScanner) ScanFile(ctx context.Context, path string) ([]Subject, int, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Reading course document", "path", path)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, InputNotFoundError(path)
		}
		return nil, 0, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	subjects, lines := Scan(ctx, string(content))
	return subjects, lines, nil
}

// Scan returns every subject line in text, in the order they appear.
// Repeated codes are kept; deduplication happens per course.
// Lines that do not look like a subject are skipped.
func Scan(ctx context.Context, text string) ([]Subject, int) {
	logger := appcontext.LoggerFromContext(ctx)

	lines := strings.Split(text, "\n")
	var subjects []Subject
	for _, raw := range lines {
		subject, ok := ParseLine(raw)
		if !ok {
			continue
		}
		subjects = append(subjects, subject)
	}

	logger.DebugContext(ctx, "Scanned course document",
		"lines", len(lines),
		"subjects", len(subjects),
		"skipped", len(lines)-len(subjects),
	)

	return subjects, len(lines)
}

// ParseLine parses a single subject line. Surrounding whitespace on the line
// and on the name is ignored.
func ParseLine(line string) (Subject, bool) {
	matches := linePattern.FindStringSubmatch(trimSpace(line))
	if len(matches) < 3 {
		return Subject{}, false
	}

	return Subject{
		Code: matches[1],
		Name: trimSpace(matches[2]),
	}, true
}

// trimSpace strips the same characters as linePattern's padding.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	// U+0085 is whitespace to package unicode but not inside a document line.
	return r != '\u0085' && unicode.IsSpace(r)
}
