package synthetic

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// DocumentName is the file written by GenerateSyntheticDocument.
const DocumentName = "course_and_subject_list.md"

// maxCodesPerPrefix is the number of distinct codes available to one prefix (levels 1-9).
const maxCodesPerPrefix = 9000

var (
	topics = []string{
		"Business", "Accounting", "Management", "Data", "Tourism", "Education",
		"Engineering", "Information Systems", "Marketing", "Statistics", "Leadership", "Finance",
	}
	qualifiers = []string{
		"Introduction to", "Foundations of", "Applied", "Advanced", "Strategic",
		"Professional", "Contemporary Issues in", "Research Methods in",
	}
	prose = []string{
		"Students must complete the core subjects listed below.",
		"Subject availability may vary by study period and campus.",
		"Elective subjects are chosen in consultation with the course coordinator.",
		"Please refer to the handbook for prerequisites and credit points.",
	}
)

// Entry is one generated subject line.
type Entry struct {
	Code string
	Name string
}

// BuildDocument renders a markdown course handbook with perPrefix subject lines for every prefix.
// Each section mixes undergraduate and graduate levels, repeats its first code with a revised
// name, and includes a few lines that look like subjects but use a plain hyphen.
func BuildDocument(prefixes []string, perPrefix int, rng *rand.Rand) (string, []Entry) {
	var b strings.Builder
	var entries []Entry

	if perPrefix > maxCodesPerPrefix {
		perPrefix = maxCodesPerPrefix
	}

	b.WriteString("# Course and Subject List\n\n")
	b.WriteString(prose[rng.Intn(len(prose))] + "\n\n")

	for _, prefix := range prefixes {
		fmt.Fprintf(&b, "## %s subjects\n\n", prefix)

		used := make(map[string]bool)
		var section []Entry
		for len(section) < perPrefix {
			level := 1 + rng.Intn(9)
			code := fmt.Sprintf("%s%d%03d", prefix, level, rng.Intn(1000))
			if used[code] {
				continue
			}
			used[code] = true

			entry := Entry{
				Code: code,
				Name: qualifiers[rng.Intn(len(qualifiers))] + " " + topics[rng.Intn(len(topics))],
			}
			section = append(section, entry)
			fmt.Fprintf(&b, "%s – %s\n", entry.Code, entry.Name)
		}
		entries = append(entries, section...)

		if len(section) > 0 {
			first := section[0]
			fmt.Fprintf(&b, "%s – %s (Revised)\n", first.Code, first.Name)
			entries = append(entries, Entry{Code: first.Code, Name: first.Name + " (Revised)"})
			fmt.Fprintf(&b, "%s - %s\n", first.Code, "Withdrawn offering")
		}

		b.WriteString("\n" + prose[rng.Intn(len(prose))] + "\n\n")
	}

	return b.String(), entries
}

// GenerateSyntheticDocument writes a synthetic course handbook into dir and returns its path.
func GenerateSyntheticDocument(prefixes []string, perPrefix int, seed int64, dir string) (string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	//nolint:gosec // synthetic fixtures do not need a cryptographic source
	document, _ := BuildDocument(prefixes, perPrefix, rand.New(rand.NewSource(seed)))

	filePath := filepath.Join(dir, DocumentName)
	if err := os.WriteFile(filePath, []byte(document), 0o644); err != nil {
		return "", fmt.Errorf("failed to write file '%s': %w", filePath, err)
	}

	return filePath, nil
}
