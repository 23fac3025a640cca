package repositories

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"site-planner/internal/models"
)

// WorkItemRepository loads the work items of a project estimate
type WorkItemRepository struct {
	path string
}

// NewWorkItemRepository creates a repository reading from path.
// An empty path serves the built-in sample estimate.
func NewWorkItemRepository(path string) *WorkItemRepository {
	return &WorkItemRepository{path: path}
}

type workItemFile struct {
	Items []*models.WorkItem `yaml:"items"`
}

// Load returns the work items in file order. Both a top-level "items" list
// and a bare list are accepted; JSON input parses as YAML.
func (r *WorkItemRepository) Load() ([]*models.WorkItem, error) {
	if r.path == "" {
		return SampleWorkItems(), nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read work items file: %w", err)
	}

	items, err := parseWorkItems(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse work items file %s: %w", r.path, err)
	}

	for i, item := range items {
		if item == nil || item.Name == "" {
			return nil, fmt.Errorf("work item %d has no name", i+1)
		}
		if item.Amount < 0 || item.LaborHoursPerUnit < 0 {
			return nil, fmt.Errorf("work item %s has a negative amount or labor rate", item.Name)
		}
	}

	return items, nil
}

func parseWorkItems(data []byte) ([]*models.WorkItem, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if mapping, ok := doc.(map[interface{}]interface{}); ok {
		if _, ok := mapping["items"]; !ok {
			return nil, fmt.Errorf("mapping has no items key")
		}
		var wrapped workItemFile
		if err := yaml.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Items, nil
	}

	var bare []*models.WorkItem
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// SampleWorkItems returns the demo estimate. The "Site preparation" and
// "Surface paving" references match no item and fall back to project start.
func SampleWorkItems() []*models.WorkItem {
	return []*models.WorkItem{
		{Name: "Asphalt paving", Unit: "m2", Amount: 500, LaborHoursPerUnit: 2.4, Dependencies: []string{}},
		{Name: "Bench installation", Unit: "pcs", Amount: 15, LaborHoursPerUnit: 20, Dependencies: []string{"Site preparation"}},
		{Name: "Tree planting", Unit: "pcs", Amount: 30, LaborHoursPerUnit: 8, Dependencies: []string{"Surface paving"}},
		{Name: "Lighting installation", Unit: "pcs", Amount: 20, LaborHoursPerUnit: 12, Dependencies: []string{"Surface paving"}},
	}
}
