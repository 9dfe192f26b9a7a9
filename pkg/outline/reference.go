package outline

// ReferenceUnits returns the fixed five-chapter outline used when the
// structure analysis asks for plain chapters or produces an
// unrecognizable kind. The first chapter carries the full set of
// structured callouts so every renderer feature stays exercised.
func ReferenceUnits() []Unit {
	return []Unit{
		{
			Title:       "Introduction",
			Description: "Overview and fundamental concepts",
			Subsections: []string{
				"Background and Context",
				"Fundamental Principles",
			},
			KeyPoints: map[string][]string{
				"Background and Context": {
					"Scope and motivation",
					"Core terminology",
					"Historical development",
					"Relevance to current practice",
				},
			},
			Calculators: map[string]Calculator{
				"Fundamental Principles": {
					Title: "Study Effort Estimator",
					Params: []string{
						"Reading time (minutes)",
						"Practice exercises (count)",
						"Review sessions (count)",
					},
				},
			},
			Specifications: map[string]SpecTable{
				"Fundamental Principles": {
					Title:   "Concept Overview",
					Columns: []string{"Concept", "Difficulty", "Prerequisites", "Application"},
					Rows: [][]string{
						{"Foundations", "Beginner", "None", "Orientation, Vocabulary"},
						{"Applied Methods", "Intermediate", "Foundations", "Practice, Projects"},
					},
				},
			},
		},
		{
			Title:       "Core Concepts",
			Description: "Detailed exploration of key principles",
			Subsections: []string{
				"Primary Mechanisms",
				"Key Relationships",
			},
		},
		{
			Title:       "Advanced Topics",
			Description: "In-depth analysis and specialized applications",
			Subsections: []string{
				"Specialized Techniques",
				"Current Research",
			},
		},
		{
			Title:       "Practical Applications",
			Description: "Real-world implementations and case studies",
			Subsections: []string{
				"Case Studies",
				"Best Practices",
			},
		},
		{
			Title:       "Assessment and Resources",
			Description: "Learning evaluation and additional materials",
			Subsections: []string{
				"Review Questions",
				"Further Reading",
			},
		},
	}
}
