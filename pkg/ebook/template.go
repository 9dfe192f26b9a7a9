// Package ebook renders an outline with generated subsection content
// into a single markdown document with sidebar-style navigation.
package ebook

import (
	"fmt"
	"strings"

	"edubook-be/pkg/outline"
)

// Placeholder fills subsections the generator produced no content for.
const Placeholder = "Content for this subsection will be generated based on the source material."

// Render assembles the complete markdown ebook: an anchored table of
// contents followed by one chapter block per unit with its subsections
// and any structured callouts the unit carries.
func Render(title string, units []outline.Unit) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n", title))
	b.WriteString("*Interactive ebook*\n\n---\n\n")
	b.WriteString("## Table of Contents\n")
	b.WriteString(tableOfContents(units))
	b.WriteString("\n\n---\n\n")

	for i, unit := range units {
		writeUnit(&b, i+1, unit)
	}

	return b.String()
}

func tableOfContents(units []outline.Unit) string {
	var items []string
	for i, unit := range units {
		items = append(items, fmt.Sprintf("- [%d. %s](#%s)", i+1, unit.Title, anchor(unit.Title)))
		for j, sub := range unit.Subsections {
			items = append(items, fmt.Sprintf("  - [%d.%d %s](#%s)", i+1, j+1, sub, anchor(sub)))
		}
	}
	return strings.Join(items, "\n")
}

func anchor(heading string) string {
	return strings.ReplaceAll(strings.ToLower(heading), " ", "-")
}

func writeUnit(b *strings.Builder, number int, unit outline.Unit) {
	b.WriteString(fmt.Sprintf("## Chapter %d: %s\n\n", number, unit.Title))
	if unit.Description != "" {
		b.WriteString(unit.Description)
		b.WriteString("\n\n")
	}

	for j, sub := range unit.Subsections {
		content := unit.SubsectionContent[sub]
		if content == "" {
			content = Placeholder
		}
		b.WriteString(fmt.Sprintf("### %d.%d %s\n\n%s\n\n", number, j+1, sub, content))

		if points, ok := unit.KeyPoints[sub]; ok {
			writeKeyPoints(b, points)
		}
		if calc, ok := unit.Calculators[sub]; ok {
			writeCalculator(b, calc)
		}
		if spec, ok := unit.Specifications[sub]; ok {
			writeSpecTable(b, spec)
		}
	}
}

func writeKeyPoints(b *strings.Builder, points []string) {
	b.WriteString("> **Key Points:**\n")
	for _, point := range points {
		b.WriteString(fmt.Sprintf("> - %s\n", point))
	}
	b.WriteString("\n")
}

func writeCalculator(b *strings.Builder, calc outline.Calculator) {
	b.WriteString(fmt.Sprintf("#### %s\n\n", calc.Title))
	b.WriteString("**Input Parameters:**\n")
	for _, param := range calc.Params {
		b.WriteString(fmt.Sprintf("- %s: ________\n", param))
	}
	b.WriteString("\n*[Calculate Results]*\n\n")
}

func writeSpecTable(b *strings.Builder, spec outline.SpecTable) {
	title := spec.Title
	if title == "" {
		title = "Specifications"
	}
	b.WriteString(fmt.Sprintf("#### %s\n\n", title))

	b.WriteString("| " + strings.Join(spec.Columns, " | ") + " |\n")
	separators := make([]string, len(spec.Columns))
	for i := range separators {
		separators[i] = "---"
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")
	for _, row := range spec.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	b.WriteString("\n")
}
