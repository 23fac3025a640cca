package helpers

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"site-planner/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const barColumn = 7

// GanttBar draws one block per two days of duration
func GanttBar(days float64) string {
	n := int(days / 2)
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n)
}

// RenderGantt renders schedule rows as a bordered table with a duration bar
func RenderGantt(rows []models.ScheduleRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == barColumn:
				return barStyle
			default:
				return cellStyle
			}
		}).
		Headers("Work", "Quantity", "Labor h", "Days", "Start", "End", "Depends on", "Timeline")

	for _, r := range rows {
		t.Row(
			r.Name,
			r.Quantity,
			humanize.Commaf(r.LaborHours),
			humanize.FtoaWithDigits(r.DurationDays, 1),
			r.Start,
			r.End,
			r.Dependencies,
			GanttBar(r.DurationDays),
		)
	}

	return t.String()
}
