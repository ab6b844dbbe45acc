// Package render formats normalized records for terminal output.
package render

import (
	"strings"

	"paapi-lookup/internal/models"

	"github.com/mattn/go-runewidth"
)

// maxValueWidth caps detail values at a terminal-friendly display
// width. Truncation counts display cells, so wide runes are never
// split mid-character.
const maxValueWidth = 100

// Item renders the record the interactive CLI prints: title, price and
// the feature list, followed by an aligned detail block for whatever
// else the record carries.
func Item(item *models.Item) string {
	var b strings.Builder

	b.WriteString("Title: " + item.ItemAttributes.Title + "\n")
	b.WriteString("Price: " + item.Price + "\n")
	b.WriteString("Features:\n - " + strings.Join(item.ItemAttributes.Features, "\n - ") + "\n")

	details := detailRows(item)
	if len(details) > 0 {
		b.WriteString("\n")
		b.WriteString(alignRows(details))
	}

	return b.String()
}

type row struct {
	label string
	value string
}

func detailRows(item *models.Item) []row {
	candidates := []row{
		{"Manufacturer", item.ItemAttributes.Manufacturer},
		{"Model", item.ItemAttributes.Model},
		{"Size", item.ItemAttributes.Size},
		{"Warranty", item.ItemAttributes.Warranty},
		{"Height", item.ItemAttributes.ItemDimensions.Height},
		{"Length", item.ItemAttributes.ItemDimensions.Length},
		{"Weight", item.ItemAttributes.ItemDimensions.Weight},
		{"Width", item.ItemAttributes.ItemDimensions.Width},
		{"Sales rank", item.SalesRank},
		{"URL", item.URL},
		{"Description", item.Description},
	}

	rows := make([]row, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.value != "" {
			rows = append(rows, candidate)
		}
	}
	return rows
}

// alignRows pads labels to a common display width so values line up,
// and truncates oversized values.
func alignRows(rows []row) string {
	labelWidth := 0
	for _, r := range rows {
		if width := runewidth.StringWidth(r.label); width > labelWidth {
			labelWidth = width
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.label)
		b.WriteString(strings.Repeat(" ", labelWidth-runewidth.StringWidth(r.label)))
		b.WriteString("  ")
		b.WriteString(runewidth.Truncate(r.value, maxValueWidth, "..."))
		b.WriteString("\n")
	}
	return b.String()
}
