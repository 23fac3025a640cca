package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_EmptyPathReturnsSample(t *testing.T) {
	items, err := NewWorkItemRepository("").Load()
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Asphalt paving", items[0].Name)
	assert.Nil(t, items[0].StartDate)
}

func TestLoad_WrappedYAML(t *testing.T) {
	path := writeFile(t, "items.yaml", `
items:
  - name: Pavement
    unit: m2
    amount: 500
    man_hours: 2.4
  - name: Benches
    unit: pcs
    amount: 15
    man_hours: 20
    deps: [Pavement]
`)

	items, err := NewWorkItemRepository(path).Load()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2.4, items[0].LaborHoursPerUnit)
	assert.Empty(t, items[0].Dependencies)
	assert.Equal(t, []string{"Pavement"}, items[1].Dependencies)
}

func TestLoad_BareJSONList(t *testing.T) {
	path := writeFile(t, "items.json", `[
  {"name": "Lighting", "unit": "pcs", "amount": 20, "man_hours": 12, "deps": ["Pavement"]}
]`)

	items, err := NewWorkItemRepository(path).Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lighting", items[0].Name)
	assert.Equal(t, 20.0, items[0].Amount)
}

func TestLoad_EmptyItemsList(t *testing.T) {
	path := writeFile(t, "items.yaml", "items: []\n")

	items, err := NewWorkItemRepository(path).Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "- unit: m2\n  amount: 1\n  man_hours: 1\n"},
		{"negative amount", "- name: X\n  amount: -1\n  man_hours: 1\n"},
		{"not a list", "just text"},
		{"mapping without items", "works:\n  - name: X\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "items.yaml", tt.content)
			_, err := NewWorkItemRepository(path).Load()
			assert.Error(t, err)
		})
	}

	_, err := NewWorkItemRepository(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.Error(t, err)
}
