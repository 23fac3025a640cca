package models

import "time"

// WorkItem represents a discrete unit of construction work
type WorkItem struct {
	Name              string     `json:"name" yaml:"name"`
	Unit              string     `json:"unit" yaml:"unit"`
	Amount            float64    `json:"amount" yaml:"amount"`
	LaborHoursPerUnit float64    `json:"man_hours" yaml:"man_hours"`
	Dependencies      []string   `json:"deps" yaml:"deps"`
	StartDate         *time.Time `json:"start_date,omitempty" yaml:"-"`
	EndDate           *time.Time `json:"end_date,omitempty" yaml:"-"`
}

// Scheduled reports whether both dates have been assigned
func (w *WorkItem) Scheduled() bool {
	return w.StartDate != nil && w.EndDate != nil
}

// ScheduleRow is the read-only Gantt projection of a scheduled work item
type ScheduleRow struct {
	Name         string  `json:"name"`
	Quantity     string  `json:"quantity"`
	LaborHours   float64 `json:"labor_hours"`
	DurationDays float64 `json:"duration_days"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Dependencies string  `json:"dependencies"`
}

// ScheduleTotals aggregates a schedule
type ScheduleTotals struct {
	ItemCount    int       `json:"item_count"`
	DurationDays float64   `json:"duration_days"`
	LaborHours   float64   `json:"labor_hours"`
	Finish       time.Time `json:"finish"`
	SpanDays     float64   `json:"span_days"`
}

// UnresolvedDependency is a dependency name that matches no item in the run
type UnresolvedDependency struct {
	Item       string `json:"item"`
	Dependency string `json:"dependency"`
}

// AnalysisResult represents the output of one analysis run
type AnalysisResult struct {
	RunID         string                 `json:"run_id"`
	AnalysisTime  time.Time              `json:"analysis_time"`
	ProjectStart  time.Time              `json:"project_start"`
	Strategy      string                 `json:"strategy"`
	Completeness  *CompletenessResult    `json:"completeness,omitempty"`
	Rows          []ScheduleRow          `json:"rows"`
	Totals        ScheduleTotals         `json:"totals"`
	StartingItems []string               `json:"starting_items"`
	Unresolved    []UnresolvedDependency `json:"unresolved,omitempty"`
}
