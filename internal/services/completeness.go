package services

import (
	"site-planner/internal/config"
	"site-planner/internal/models"
)

// DefaultCriteria returns the built-in project document catalog
func DefaultCriteria() []models.CompletenessCriterion {
	return []models.CompletenessCriterion{
		{
			Key:            "has_technical_task",
			Label:          "Technical brief",
			Weight:         1,
			Recommendation: "Request the technical brief from the client or find a comparable project",
		},
		{
			Key:            "has_estimate",
			Label:          "Cost estimate with labor rates",
			Weight:         2,
			Recommendation: "Use average labor rates from comparable works",
		},
		{
			Key:            "has_schedule",
			Label:          "Work schedule",
			Weight:         1,
			Recommendation: "Rebuild the schedule from the estimate via labor-hour calculation",
		},
		{
			Key:    "has_visual_plans",
			Label:  "Visual site plans",
			Weight: 0.5,
		},
	}
}

// CriteriaFromConfig converts the configured catalog, falling back to DefaultCriteria
func CriteriaFromConfig(cfg config.CompletenessConfig) []models.CompletenessCriterion {
	if len(cfg.Criteria) == 0 {
		return DefaultCriteria()
	}

	criteria := make([]models.CompletenessCriterion, len(cfg.Criteria))
	for i, c := range cfg.Criteria {
		criteria[i] = models.CompletenessCriterion{
			Key:            c.Key,
			Label:          c.Label,
			Weight:         c.Weight,
			Recommendation: c.Recommendation,
		}
	}
	return criteria
}

// CompletenessScorer computes how complete a project's document set is
type CompletenessScorer struct {
	criteria []models.CompletenessCriterion
	maxScore float64
}

// NewCompletenessScorer creates a scorer over criteria. An empty catalog uses DefaultCriteria.
func NewCompletenessScorer(criteria []models.CompletenessCriterion) *CompletenessScorer {
	if len(criteria) == 0 {
		criteria = DefaultCriteria()
	}

	// The maximum is derived from the weights so that a full set is always 100%.
	var maxScore float64
	for _, c := range criteria {
		maxScore += c.Weight
	}

	return &CompletenessScorer{criteria: criteria, maxScore: maxScore}
}

// Criteria returns the catalog in evaluation order
func (s *CompletenessScorer) Criteria() []models.CompletenessCriterion {
	return s.criteria
}

// MaxScore returns the sum of all criterion weights
func (s *CompletenessScorer) MaxScore() float64 {
	return s.maxScore
}

// Score evaluates the document flags. Keys absent from flags count as missing.
func (s *CompletenessScorer) Score(flags map[string]bool) *models.CompletenessResult {
	result := &models.CompletenessResult{
		MaxScore:        s.maxScore,
		Missing:         []string{},
		Recommendations: []string{},
	}

	for _, c := range s.criteria {
		if flags[c.Key] {
			result.Score += c.Weight
			continue
		}
		result.Missing = append(result.Missing, c.Label)
	}

	if s.maxScore > 0 {
		result.Percent = result.Score / s.maxScore * 100
	}

	result.Recommendations = s.recommendations(result.Missing)
	return result
}

func (s *CompletenessScorer) recommendations(missing []string) []string {
	isMissing := make(map[string]bool, len(missing))
	for _, label := range missing {
		isMissing[label] = true
	}

	recs := []string{}
	seen := make(map[string]bool)
	for _, c := range s.criteria {
		if !isMissing[c.Label] || seen[c.Label] || c.Recommendation == "" {
			continue
		}
		seen[c.Label] = true
		recs = append(recs, c.Recommendation)
	}
	return recs
}
