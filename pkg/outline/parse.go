package outline

import (
	"strconv"
	"strings"
)

const (
	DefaultTitle     = "Educational Content"
	DefaultUnitCount = 5
)

// Fields holds the raw key-value lines extracted from a structure
// analysis response. Values are empty when the model omitted the field.
type Fields struct {
	Title    string
	Kind     string
	Count    string
	Concepts string
}

// ParseFields scans an analysis response line by line and extracts the
// known prefixed fields. Unknown lines are ignored. Prefix matching is
// deliberately loose: the model occasionally adds leading whitespace or
// markdown bullets.
func ParseFields(response string) Fields {
	var f Fields
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimLeft(trimmed, "-* ")
		switch {
		case strings.HasPrefix(trimmed, "TITLE:"):
			f.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "TITLE:"))
		case strings.HasPrefix(trimmed, "STRUCTURE_TYPE:"):
			f.Kind = strings.TrimSpace(strings.TrimPrefix(trimmed, "STRUCTURE_TYPE:"))
		case strings.HasPrefix(trimmed, "STRUCTURE_COUNT:"):
			f.Count = strings.TrimSpace(strings.TrimPrefix(trimmed, "STRUCTURE_COUNT:"))
		case strings.HasPrefix(trimmed, "KEY_CONCEPTS:"):
			f.Concepts = strings.TrimSpace(strings.TrimPrefix(trimmed, "KEY_CONCEPTS:"))
		}
	}
	return f
}

// ParseKind normalizes a structure kind value. Anything other than the
// four known kinds falls back to chapters.
func ParseKind(raw string) StructureKind {
	switch StructureKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindDaily:
		return KindDaily
	case KindWeekly:
		return KindWeekly
	case KindModular:
		return KindModular
	default:
		return KindChapters
	}
}

// ParseCount extracts a unit count by stripping every non-digit
// character. An empty or zero result falls back to the default of 5.
func ParseCount(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	count, err := strconv.Atoi(digits.String())
	if err != nil || count == 0 {
		return DefaultUnitCount
	}
	return count
}

// ParseConcepts splits a comma-separated concept list, dropping empties.
func ParseConcepts(raw string) []string {
	parts := strings.Split(raw, ",")
	concepts := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			concepts = append(concepts, c)
		}
	}
	return concepts
}
