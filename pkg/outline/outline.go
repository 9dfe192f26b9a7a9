package outline

import (
	"context"

	"github.com/google/uuid"
)

// StructureKind classifies how the generated ebook is organized.
type StructureKind string

const (
	KindDaily    StructureKind = "daily"
	KindWeekly   StructureKind = "weekly"
	KindModular  StructureKind = "modular"
	KindChapters StructureKind = "chapters"
)

// Unit caps per structure kind. Analysis output above the cap is clamped,
// never rejected.
const (
	MaxDailyUnits   = 10
	MaxWeeklyUnits  = 8
	MaxModularUnits = 8
)

// CompletionClient issues one text-completion request. Implementations
// absorb transport failures and return a textual payload in all cases.
type CompletionClient interface {
	CompleteText(ctx context.Context, sessionId uuid.UUID, requestKind, prompt string, maxTokens int) string
}

// Outline is the inferred document structure driving ebook generation.
// It is ephemeral, one per pipeline run.
type Outline struct {
	Title       string
	Kind        StructureKind
	UnitCount   int
	KeyConcepts []string
	Units       []Unit
}

// Unit is one top-level section of the generated ebook: a day, a week,
// a module or a chapter.
type Unit struct {
	Title             string
	Description       string
	Subsections       []string
	SubsectionContent map[string]string
	KeyPoints         map[string][]string
	Calculators       map[string]Calculator
	Specifications    map[string]SpecTable
}

// Calculator is a rendered numeric-input block attached to a subsection.
type Calculator struct {
	Title  string
	Params []string
}

// SpecTable is a rendered specification table attached to a subsection.
type SpecTable struct {
	Title   string
	Columns []string
	Rows    [][]string
}
