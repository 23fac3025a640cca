package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"site-planner/internal/models"
)

// RowDateLayout formats start and end dates in schedule rows
const RowDateLayout = "02.01.2006"

// NoDependencies is shown for items without dependencies
const NoDependencies = "None"

// ToRows projects scheduled items into Gantt rows, preserving order
func ToRows(items []*models.WorkItem, estimator *DurationEstimator) []models.ScheduleRow {
	rows := make([]models.ScheduleRow, 0, len(items))
	for _, item := range items {
		row := models.ScheduleRow{
			Name:         item.Name,
			Quantity:     formatQuantity(item.Amount, item.Unit),
			LaborHours:   estimator.LaborHours(item),
			DurationDays: roundTenth(estimator.DurationDays(item)),
			Dependencies: NoDependencies,
		}
		if item.StartDate != nil {
			row.Start = item.StartDate.Format(RowDateLayout)
		}
		if item.EndDate != nil {
			row.End = item.EndDate.Format(RowDateLayout)
		}
		if len(item.Dependencies) > 0 {
			row.Dependencies = strings.Join(item.Dependencies, ", ")
		}
		rows = append(rows, row)
	}
	return rows
}

// Totals reduces rows into aggregate figures. Finish and SpanDays come from
// the scheduled items relative to projectStart.
func Totals(rows []models.ScheduleRow, items []*models.WorkItem, projectStart time.Time) models.ScheduleTotals {
	totals := models.ScheduleTotals{
		ItemCount: len(rows),
		Finish:    projectStart,
	}

	for _, row := range rows {
		totals.DurationDays += row.DurationDays
		totals.LaborHours += row.LaborHours
	}

	for _, item := range items {
		if item.EndDate != nil && item.EndDate.After(totals.Finish) {
			totals.Finish = *item.EndDate
		}
	}
	totals.SpanDays = roundTenth(totals.Finish.Sub(projectStart).Hours() / 24)

	return totals
}

// StartingItems returns the names of items with no dependencies, in input order
func StartingItems(items []*models.WorkItem) []string {
	names := []string{}
	for _, item := range items {
		if len(item.Dependencies) == 0 {
			names = append(names, item.Name)
		}
	}
	return names
}

func formatQuantity(amount float64, unit string) string {
	qty := strconv.FormatFloat(amount, 'f', -1, 64)
	if unit == "" {
		return qty
	}
	return fmt.Sprintf("%s %s", qty, unit)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
