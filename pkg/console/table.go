package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9"))

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6272A4"))
)

// TableConfig describes a simple aligned table.
type TableConfig struct {
	Headers []string
	Rows    [][]string
	Title   string
}

// RenderTable renders an aligned table with a header separator.
func RenderTable(config TableConfig, mode Mode) string {
	if len(config.Headers) == 0 {
		return ""
	}

	var output strings.Builder

	if config.Title != "" {
		output.WriteString(applyStyle(mode, successStyle, config.Title))
		output.WriteString("\n")
	}

	colWidths := make([]int, len(config.Headers))
	for i, header := range config.Headers {
		colWidths[i] = len(header)
	}
	for _, row := range config.Rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	output.WriteString(renderTableRow(config.Headers, colWidths, tableHeaderStyle, mode))
	output.WriteString("\n")

	separators := make([]string, len(config.Headers))
	for i, width := range colWidths {
		separators[i] = strings.Repeat("-", width)
	}
	output.WriteString(renderTableRow(separators, colWidths, tableBorderStyle, mode))
	output.WriteString("\n")

	for _, row := range config.Rows {
		output.WriteString(renderTableRow(row, colWidths, tableCellStyle, mode))
		output.WriteString("\n")
	}

	return output.String()
}

func renderTableRow(cells []string, colWidths []int, style lipgloss.Style, mode Mode) string {
	var row strings.Builder

	for i, cell := range cells {
		if i >= len(colWidths) {
			break
		}
		padded := fmt.Sprintf("%-*s", colWidths[i], cell)
		row.WriteString(applyStyle(mode, style, padded))
		if i < len(cells)-1 {
			row.WriteString(applyStyle(mode, tableBorderStyle, " | "))
		}
	}

	return row.String()
}
