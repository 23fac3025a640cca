package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-planner/internal/config"
	"site-planner/internal/logger"
	"site-planner/internal/models"
)

var projectStart = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func item(name string, amount, rate float64, deps ...string) *models.WorkItem {
	return &models.WorkItem{Name: name, Unit: "pcs", Amount: amount, LaborHoursPerUnit: rate, Dependencies: deps}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newScheduler(t *testing.T, strategy string) *Scheduler {
	t.Helper()
	return NewScheduler(newEstimator(t), strategy, logger.Discard())
}

var strategies = []string{config.StrategySinglePass, config.StrategyGraph}

func TestSchedule_NoDependenciesStartAtProjectStart(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			items := []*models.WorkItem{item("A", 10, 4), item("B", 0, 4), item("C", 3, 16)}

			_, err := s.Schedule(items, projectStart)
			require.NoError(t, err)

			for _, it := range items {
				require.True(t, it.Scheduled())
				assert.Equal(t, projectStart, *it.StartDate, it.Name)
				assert.Equal(t, AddDays(projectStart, s.estimator.DurationDays(it)), *it.EndDate, it.Name)
			}
		})
	}
}

func TestSchedule_Pavement(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			pavement := &models.WorkItem{Name: "Pavement", Unit: "m2", Amount: 500, LaborHoursPerUnit: 2.4}

			_, err := s.Schedule([]*models.WorkItem{pavement}, projectStart)
			require.NoError(t, err)

			assert.Equal(t, projectStart, *pavement.StartDate)
			assert.Equal(t, date(2024, 8, 15), *pavement.EndDate)
		})
	}
}

func TestSchedule_VeryLongDurationKeepsEndAfterStart(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			huge := item("Huge", 1e6, 100)
			next := item("Next", 16, 1, "Huge")

			_, err := s.Schedule([]*models.WorkItem{huge, next}, projectStart)
			require.NoError(t, err)

			assert.False(t, huge.EndDate.Before(*huge.StartDate))
			assert.Equal(t, time.Date(2024, 6, 1+6250000, 0, 0, 0, 0, time.UTC), *huge.EndDate)
			assert.Equal(t, *huge.EndDate, *next.StartDate)
		})
	}
}

func TestSchedule_DurationOutOfRange(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			items := []*models.WorkItem{item("A", 1, 1), item("Absurd", 1e12, 100)}

			_, err := s.Schedule(items, projectStart)
			assert.ErrorIs(t, err, ErrDurationOutOfRange)
			assert.Nil(t, items[0].StartDate, "nothing is scheduled on failure")
		})
	}
}

func TestSchedule_DependencyEarlierInInput(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			a := item("A", 10, 8)
			b := item("B", 4, 8, "A")

			_, err := s.Schedule([]*models.WorkItem{a, b}, projectStart)
			require.NoError(t, err)

			assert.Equal(t, *a.EndDate, *b.StartDate)
			assert.Equal(t, date(2024, 6, 8), *b.EndDate)
		})
	}
}

func TestSchedule_TakesLatestDependency(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			short := item("Short", 2, 8)
			long := item("Long", 20, 8)
			after := item("After", 2, 8, "Short", "Long")

			_, err := s.Schedule([]*models.WorkItem{short, long, after}, projectStart)
			require.NoError(t, err)

			assert.Equal(t, *long.EndDate, *after.StartDate)
		})
	}
}

func TestSchedule_SinglePassForwardReferenceFallsBack(t *testing.T) {
	var buf bytes.Buffer
	s := NewScheduler(newEstimator(t), config.StrategySinglePass, logger.NewWriter(&buf, log.WarnLevel))
	c := item("C", 4, 8, "D")
	d := item("D", 10, 8)

	_, err := s.Schedule([]*models.WorkItem{c, d}, projectStart)
	require.NoError(t, err)

	assert.Equal(t, projectStart, *c.StartDate, "D is not yet scheduled when C is visited")
	assert.Equal(t, projectStart, *d.StartDate)
	assert.Contains(t, buf.String(), "falling back to project start")
}

func TestSchedule_GraphResolvesForwardReference(t *testing.T) {
	s := newScheduler(t, config.StrategyGraph)
	c := item("C", 4, 8, "D")
	d := item("D", 10, 8)
	items := []*models.WorkItem{c, d}

	got, err := s.Schedule(items, projectStart)
	require.NoError(t, err)

	assert.Same(t, c, got[0], "items keep their input order")
	assert.Equal(t, *d.EndDate, *c.StartDate)
	assert.Equal(t, projectStart, *d.StartDate)
}

func TestSchedule_GraphChain(t *testing.T) {
	s := newScheduler(t, config.StrategyGraph)
	// Reverse input order: third -> second -> first
	third := item("third", 16, 1, "second")
	second := item("second", 16, 1, "first")
	first := item("first", 16, 1)

	_, err := s.Schedule([]*models.WorkItem{third, second, first}, projectStart)
	require.NoError(t, err)

	assert.Equal(t, date(2024, 6, 2), *first.EndDate)
	assert.Equal(t, date(2024, 6, 3), *second.EndDate)
	assert.Equal(t, date(2024, 6, 4), *third.EndDate)
}

func TestSchedule_UnresolvedDependencyFallsBack(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewScheduler(newEstimator(t), strategy, logger.NewWriter(&buf, log.WarnLevel))
			benches := item("Benches", 15, 20, "Site prep")

			_, err := s.Schedule([]*models.WorkItem{item("Pavement", 500, 2.4), benches}, projectStart)
			require.NoError(t, err)

			assert.Equal(t, projectStart, *benches.StartDate)
			assert.Contains(t, buf.String(), "dependency not found")
			assert.Contains(t, buf.String(), "Site prep")
		})
	}
}

func TestSchedule_DuplicateNames(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			s := newScheduler(t, strategy)
			items := []*models.WorkItem{item("A", 1, 1), item("B", 1, 1), item("A", 2, 2)}

			_, err := s.Schedule(items, projectStart)
			assert.ErrorIs(t, err, ErrDuplicateWorkItemName)
			assert.Nil(t, items[0].StartDate, "nothing is scheduled on failure")
		})
	}
}

func TestSchedule_GraphCycle(t *testing.T) {
	s := newScheduler(t, config.StrategyGraph)
	items := []*models.WorkItem{item("A", 1, 1, "C"), item("B", 1, 1, "A"), item("C", 1, 1, "B"), item("D", 1, 1)}

	_, err := s.Schedule(items, projectStart)
	require.ErrorIs(t, err, ErrDependencyCycle)
	assert.Contains(t, err.Error(), "A -> B -> C -> A")
}

func TestSchedule_GraphSelfDependency(t *testing.T) {
	s := newScheduler(t, config.StrategyGraph)

	_, err := s.Schedule([]*models.WorkItem{item("A", 1, 1, "A")}, projectStart)
	assert.ErrorIs(t, err, ErrDependencyCycle)
}

func TestSchedule_SinglePassCycleIsNotAnError(t *testing.T) {
	s := newScheduler(t, config.StrategySinglePass)
	a := item("A", 16, 1, "B")
	b := item("B", 16, 1, "A")

	_, err := s.Schedule([]*models.WorkItem{a, b}, projectStart)
	require.NoError(t, err)

	assert.Equal(t, projectStart, *a.StartDate)
	assert.Equal(t, *a.EndDate, *b.StartDate)
}

func TestSchedule_RescheduleClearsStaleDates(t *testing.T) {
	s := newScheduler(t, config.StrategySinglePass)
	c := item("C", 4, 8, "D")
	d := item("D", 10, 8)
	items := []*models.WorkItem{c, d}

	_, err := s.Schedule(items, projectStart)
	require.NoError(t, err)
	_, err = s.Schedule(items, projectStart)
	require.NoError(t, err)

	assert.Equal(t, projectStart, *c.StartDate)
}

func TestSchedule_UnknownStrategy(t *testing.T) {
	s := newScheduler(t, "magic")

	_, err := s.Schedule([]*models.WorkItem{item("A", 1, 1)}, projectStart)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestUnresolvedDependencies(t *testing.T) {
	items := []*models.WorkItem{
		item("Paving", 1, 1),
		item("Benches", 1, 1, "Site preparation", "Paving"),
		item("Trees", 1, 1, "Surface paving"),
	}

	assert.Equal(t, []models.UnresolvedDependency{
		{Item: "Benches", Dependency: "Site preparation"},
		{Item: "Trees", Dependency: "Surface paving"},
	}, UnresolvedDependencies(items))

	assert.Empty(t, UnresolvedDependencies(items[:1]))
}
