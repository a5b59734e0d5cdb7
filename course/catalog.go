// Package course holds the course catalog and the rules that decide which
// subjects belong to each course.
package course

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var prefixPattern = regexp.MustCompile(`^[A-Z]{2}$`)

var (
	// ErrEmptyCatalog is returned when a catalog file defines no courses.
	ErrEmptyCatalog = errors.New("course catalog is empty")
	// ErrInvalidDefinition is returned when a course definition cannot be used.
	ErrInvalidDefinition = errors.New("invalid course definition")
)

// InvalidDefinitionError wraps ErrInvalidDefinition with the course and reason.
func InvalidDefinitionError(courseName, reason string) error {
	return fmt.Errorf("%w, %q: %s", ErrInvalidDefinition, courseName, reason)
}

// Definition is a course and the subject prefixes it draws from.
type Definition struct {
	Name     string   `yaml:"name"`
	Prefixes []string `yaml:"prefixes"`
}

// Catalog is an ordered list of course definitions. Report order follows catalog order.
type Catalog []Definition

type catalogFile struct {
	Courses Catalog `yaml:"courses"`
}

// DefaultCatalog returns the built-in course table. Callers get their own copy.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "Bachelor of Business", Prefixes: []string{"BU", "BX"}},
		{Name: "Bachelor of Commerce", Prefixes: []string{"BU", "BX", "CO"}},
		{Name: "Bachelor of Information Technology", Prefixes: []string{"CP"}},
		{Name: "Bachelor of Tourism, Hospitality and Events", Prefixes: []string{"TO", "BX"}},
		{Name: "Master of Business Administration", Prefixes: []string{"LB"}},
		{Name: "Master of Data Science (Professional)", Prefixes: []string{"MA", "CP"}},
		{Name: "Master of Education - Master of Business Administration", Prefixes: []string{"ED", "LB"}},
		{Name: "Master of Engineering Management", Prefixes: []string{"EG", "LB"}},
		{Name: "Master of Information Technology", Prefixes: []string{"CP"}},
		{Name: "Master of Information Technology - Master of Business Administration", Prefixes: []string{"CP", "LB"}},
		{Name: "Master of International Tourism and Hospitality Management", Prefixes: []string{"TO"}},
		{
			Name:     "Master of International Tourism and Hospitality Management - Master of Business Administration",
			Prefixes: []string{"TO", "LB"},
		},
		{Name: "Master of Professional Accounting", Prefixes: []string{"CO"}},
		{Name: "Master of Professional Accounting - Master of Business Administration", Prefixes: []string{"CO", "LB"}},
		{Name: "Postgraduate Qualifying Program - Business", Prefixes: []string{"LB"}},
	}
}

// LoadCatalog reads a YAML course table from path. An empty path yields the default catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML course table.
func ParseCatalog(data []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := file.Courses.Validate(); err != nil {
		return nil, err
	}

	return file.Courses, nil
}

// Validate checks that the catalog is usable.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(c))
	for _, def := range c {
		if err := def.Validate(); err != nil {
			return err
		}
		if seen[def.Name] {
			return InvalidDefinitionError(def.Name, "duplicate course name")
		}
		seen[def.Name] = true
	}

	return nil
}

// Validate checks a single definition.
func (d Definition) Validate() error {
	if d.Name == "" {
		return InvalidDefinitionError(d.Name, "course name is empty")
	}
	if len(d.Prefixes) == 0 {
		return InvalidDefinitionError(d.Name, "no subject prefixes")
	}
	for _, prefix := range d.Prefixes {
		if !prefixPattern.MatchString(prefix) {
			return InvalidDefinitionError(d.Name, fmt.Sprintf("prefix %q is not two uppercase letters", prefix))
		}
	}

	return nil
}

// Prefixes returns every distinct prefix used by the catalog, in first-seen order.
func (c Catalog) Prefixes() []string {
	seen := make(map[string]bool)
	var prefixes []string
	for _, def := range c {
		for _, prefix := range def.Prefixes {
			if !seen[prefix] {
				seen[prefix] = true
				prefixes = append(prefixes, prefix)
			}
		}
	}

	return prefixes
}
