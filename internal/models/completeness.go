package models

// CompletenessCriterion is one weighted entry of the project document catalog
type CompletenessCriterion struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Weight         float64 `json:"weight"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// CompletenessResult represents a document completeness evaluation
type CompletenessResult struct {
	Percent         float64  `json:"completeness_percent"`
	Score           float64  `json:"score"`
	MaxScore        float64  `json:"max_score"`
	Missing         []string `json:"missing_documents"`
	Recommendations []string `json:"recommendations"`
}
