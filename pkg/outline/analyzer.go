package outline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const analysisMaxTokens = 500

const analysisPromptTemplate = `Analyze the following document summary together with the user's structuring instruction and decide the best ebook structure.

Respond with exactly these fields, one per line:
TITLE: <ebook title>
STRUCTURE_TYPE: <one of: daily, weekly, modular, chapters>
STRUCTURE_COUNT: <number of units>
KEY_CONCEPTS: <comma-separated list of key concepts>
AUDIENCE: <intended audience>
DIFFICULTY: <beginner, intermediate, or advanced>

Choose "daily" when the instruction asks for a day-by-day plan or bootcamp, "weekly" for a multi-week course, "modular" for self-paced modules, and "chapters" otherwise.

Summary: %s

Instruction: %s`

// Analyzer infers an ebook outline from a document summary and a user
// instruction with a single completion call.
type Analyzer struct {
	client CompletionClient
}

func NewAnalyzer(client CompletionClient) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze never fails: unparseable model output degrades to the default
// title, the chapters kind, and the reference outline.
func (a *Analyzer) Analyze(ctx context.Context, sessionId uuid.UUID, summary, instruction string) Outline {
	prompt := fmt.Sprintf(analysisPromptTemplate, truncate(summary, 2000), instruction)
	response := a.client.CompleteText(ctx, sessionId, "structure_analysis", prompt, analysisMaxTokens)

	fields := ParseFields(response)

	title := fields.Title
	if title == "" {
		title = DefaultTitle
	}
	kind := ParseKind(fields.Kind)
	count := clampCount(kind, ParseCount(fields.Count))

	o := Outline{
		Title:       title,
		Kind:        kind,
		UnitCount:   count,
		KeyConcepts: ParseConcepts(fields.Concepts),
	}
	o.Units = buildUnits(kind, count)
	if kind == KindChapters {
		o.UnitCount = len(o.Units)
	}
	return o
}

func clampCount(kind StructureKind, count int) int {
	switch kind {
	case KindDaily:
		if count > MaxDailyUnits {
			return MaxDailyUnits
		}
	case KindWeekly, KindModular:
		if count > MaxWeeklyUnits {
			return MaxWeeklyUnits
		}
	}
	return count
}

func buildUnits(kind StructureKind, count int) []Unit {
	var (
		titleFormat string
		descFormat  string
		subsections []string
	)

	switch kind {
	case KindDaily:
		titleFormat = "Day %d"
		descFormat = "Study plan and material for day %d"
		subsections = []string{
			"Learning Objectives",
			"Key Concepts",
			"Hands-On Practice",
			"Daily Review",
		}
	case KindWeekly:
		titleFormat = "Week %d"
		descFormat = "Course material and exercises for week %d"
		subsections = []string{
			"Weekly Objectives",
			"Core Material",
			"Applied Exercises",
			"Weekly Assessment",
		}
	case KindModular:
		titleFormat = "Module %d"
		descFormat = "Self-contained learning module %d"
		subsections = []string{
			"Module Overview",
			"Core Content",
			"Case Studies",
			"Knowledge Check",
		}
	default:
		return ReferenceUnits()
	}

	units := make([]Unit, count)
	for i := range units {
		units[i] = Unit{
			Title:       fmt.Sprintf(titleFormat, i+1),
			Description: fmt.Sprintf(descFormat, i+1),
			Subsections: append([]string(nil), subsections...),
		}
	}
	return units
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
