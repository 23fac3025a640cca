package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"site-planner/internal/config"
	"site-planner/internal/helpers"
	"site-planner/internal/logger"
	"site-planner/internal/models"
)

// maxStartingItems caps how many opening works are shown in the summary
const maxStartingItems = 3

// AnalysisService handles project scheduling and document analysis
type AnalysisService struct {
	config    *config.Config
	log       *logger.Logger
	estimator *DurationEstimator
	scheduler *Scheduler
	scorer    *CompletenessScorer
	now       func() time.Time
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(cfg *config.Config, log *logger.Logger) (*AnalysisService, error) {
	estimator, err := NewDurationEstimatorFromConfig(cfg.Crew)
	if err != nil {
		return nil, err
	}

	return &AnalysisService{
		config:    cfg,
		log:       log,
		estimator: estimator,
		scheduler: NewScheduler(estimator, cfg.Schedule.Strategy, log),
		scorer:    NewCompletenessScorer(CriteriaFromConfig(cfg.Completeness)),
		now:       time.Now,
	}, nil
}

// Scorer returns the document completeness scorer
func (s *AnalysisService) Scorer() *CompletenessScorer {
	return s.scorer
}

// ScoreDocuments evaluates document completeness
func (s *AnalysisService) ScoreDocuments(flags map[string]bool) *models.CompletenessResult {
	result := s.scorer.Score(flags)
	s.log.Info("completeness scored", "percent", fmt.Sprintf("%.1f", result.Percent), "missing", len(result.Missing))
	return result
}

// BuildSchedule schedules the items from projectStart and projects them into rows and totals
func (s *AnalysisService) BuildSchedule(items []*models.WorkItem, projectStart time.Time) (*models.AnalysisResult, error) {
	if _, err := s.scheduler.Schedule(items, projectStart); err != nil {
		return nil, fmt.Errorf("failed to schedule work items: %w", err)
	}

	rows := ToRows(items, s.estimator)

	return &models.AnalysisResult{
		RunID:         uuid.NewString(),
		AnalysisTime:  s.now(),
		ProjectStart:  projectStart,
		Strategy:      s.scheduler.Strategy(),
		Rows:          rows,
		Totals:        Totals(rows, items, projectStart),
		StartingItems: StartingItems(items),
		Unresolved:    UnresolvedDependencies(items),
	}, nil
}

// Analyze runs both the document check and the schedule
func (s *AnalysisService) Analyze(items []*models.WorkItem, flags map[string]bool, projectStart time.Time) (*models.AnalysisResult, error) {
	completeness := s.ScoreDocuments(flags)

	result, err := s.BuildSchedule(items, projectStart)
	if err != nil {
		return nil, err
	}
	result.Completeness = completeness

	return result, nil
}

// DisplayCompleteness displays a completeness evaluation
func (s *AnalysisService) DisplayCompleteness(result *models.CompletenessResult) {
	helpers.PrintTitle("Document Completeness")
	helpers.PrintInfo("Completeness: %.1f%% (%g of %g)", result.Percent, result.Score, result.MaxScore)

	if len(result.Missing) == 0 {
		helpers.PrintSuccess("All project documents are present")
		return
	}

	helpers.PrintWarning("Missing: %s", strings.Join(result.Missing, ", "))
	if len(result.Recommendations) > 0 {
		helpers.PrintInfo("Recommendations:")
		for _, rec := range result.Recommendations {
			helpers.PrintBullet("%s", rec)
		}
	}
}

// DisplaySchedule displays the Gantt table and project totals
func (s *AnalysisService) DisplaySchedule(result *models.AnalysisResult) {
	helpers.PrintTitle("Work Schedule (%s strategy)", result.Strategy)
	helpers.PrintInfo("Project start: %s", result.ProjectStart.Format(RowDateLayout))
	fmt.Println(helpers.RenderGantt(result.Rows))

	for _, u := range result.Unresolved {
		helpers.PrintWarning("%s depends on unknown work %q, scheduled from project start", u.Item, u.Dependency)
	}

	helpers.PrintSeparator()
	helpers.PrintInfo("Works: %d", result.Totals.ItemCount)
	helpers.PrintInfo("Sum of durations: %.1f days", result.Totals.DurationDays)
	helpers.PrintInfo("Calendar span: %.1f days, finishing %s", result.Totals.SpanDays, result.Totals.Finish.Format(RowDateLayout))
	helpers.PrintInfo("Total labor: %s man-hours", humanize.Comma(int64(result.Totals.LaborHours+0.5)))

	if len(result.StartingItems) == 0 {
		helpers.PrintWarning("Every work has dependencies, nothing opens the project")
		return
	}
	helpers.PrintInfo("Opening works:")
	for i, name := range result.StartingItems {
		if i == maxStartingItems {
			helpers.PrintDim("   ... and %d more", len(result.StartingItems)-maxStartingItems)
			break
		}
		helpers.PrintBullet("%s", name)
	}
}

// SaveAnalysisResult saves the result as JSON plus a markdown summary and
// returns the paths written
func (s *AnalysisService) SaveAnalysisResult(result *models.AnalysisResult, outputDir string) ([]string, error) {
	if err := helpers.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonPath := helpers.GetOutputPath(outputDir, helpers.GenerateOutputFilename("site-analysis", "json", result.AnalysisTime))
	if err := helpers.SaveJSON(result, jsonPath); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	s.log.Info("saved analysis", "run", result.RunID, "path", jsonPath)

	summaryPath := helpers.GetOutputPath(outputDir, helpers.GenerateOutputFilename("site-summary", "md", result.AnalysisTime))
	if err := helpers.WriteText(s.summaryMarkdown(result), summaryPath); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}
	s.log.Info("saved summary", "run", result.RunID, "path", summaryPath)

	return []string{jsonPath, summaryPath}, nil
}

// LoadAnalysisResult reads a result previously written by SaveAnalysisResult
func (s *AnalysisService) LoadAnalysisResult(path string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := helpers.LoadJSON(path, &result); err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", path, err)
	}
	if result.RunID == "" {
		return nil, fmt.Errorf("%s is not a site analysis file", path)
	}
	s.log.Debug("loaded analysis", "run", result.RunID, "path", path)
	return &result, nil
}

// summaryMarkdown renders a markdown summary of the analysis
func (s *AnalysisService) summaryMarkdown(result *models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Site Work Schedule\n\n")
	b.WriteString(fmt.Sprintf("**Run:** %s\n", result.RunID))
	b.WriteString(fmt.Sprintf("**Project start:** %s\n", result.ProjectStart.Format(RowDateLayout)))
	b.WriteString(fmt.Sprintf("**Strategy:** %s\n\n", result.Strategy))

	if c := result.Completeness; c != nil {
		b.WriteString("## Document Completeness\n\n")
		b.WriteString(fmt.Sprintf("**Completeness:** %.1f%%\n\n", c.Percent))
		if len(c.Missing) > 0 {
			b.WriteString(fmt.Sprintf("**Missing:** %s\n\n", strings.Join(c.Missing, ", ")))
		}
		for _, rec := range c.Recommendations {
			b.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		if len(c.Recommendations) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("## Schedule\n\n")
	b.WriteString("| Work | Quantity | Labor h | Days | Start | End | Depends on |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range result.Rows {
		b.WriteString(fmt.Sprintf("| %s | %s | %g | %.1f | %s | %s | %s |\n",
			r.Name, r.Quantity, r.LaborHours, r.DurationDays, r.Start, r.End, r.Dependencies))
	}

	b.WriteString(fmt.Sprintf("\n**Sum of durations:** %.1f days\n", result.Totals.DurationDays))
	b.WriteString(fmt.Sprintf("**Calendar span:** %.1f days\n", result.Totals.SpanDays))
	b.WriteString(fmt.Sprintf("**Total labor:** %.0f man-hours\n", result.Totals.LaborHours))

	return b.String()
}
