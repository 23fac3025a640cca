package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"site-planner/internal/config"
	"site-planner/internal/logger"
	"site-planner/internal/models"
)

var (
	// ErrDuplicateWorkItemName is returned when two items in one run share a name
	ErrDuplicateWorkItemName = errors.New("duplicate work item name")

	// ErrDependencyCycle is returned by the graph strategy when dependencies form a cycle
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// Scheduler assigns start and end dates to work items
type Scheduler struct {
	estimator *DurationEstimator
	strategy  string
	log       *logger.Logger
}

// NewScheduler creates a scheduler using one of config.StrategySinglePass or
// config.StrategyGraph. A nil logger discards warnings.
func NewScheduler(estimator *DurationEstimator, strategy string, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Discard()
	}
	return &Scheduler{
		estimator: estimator,
		strategy:  strategy,
		log:       log,
	}
}

// Strategy returns the configured strategy name
func (s *Scheduler) Strategy() string {
	return s.strategy
}

// Schedule populates StartDate and EndDate of every item in place and
// returns the same slice. Unresolved dependency names are ignored.
func (s *Scheduler) Schedule(items []*models.WorkItem, projectStart time.Time) ([]*models.WorkItem, error) {
	if err := checkUniqueNames(items); err != nil {
		return nil, err
	}

	durations := make([]float64, len(items))
	for i, item := range items {
		days, err := s.estimator.CheckedDurationDays(item)
		if err != nil {
			return nil, err
		}
		durations[i] = days
	}

	for _, u := range UnresolvedDependencies(items) {
		s.log.Warn("dependency not found, ignoring", "item", u.Item, "dependency", u.Dependency)
	}

	switch s.strategy {
	case config.StrategySinglePass:
		s.scheduleSinglePass(items, durations, projectStart)
	case config.StrategyGraph:
		if err := s.scheduleGraph(items, durations, projectStart); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown schedule strategy %q", config.ErrInvalidConfiguration, s.strategy)
	}

	s.log.Info("schedule computed", "strategy", s.strategy, "items", len(items))
	return items, nil
}

// scheduleSinglePass walks the items once in input order. A dependency is
// only visible once it has an end date, so a dependency listed after its
// dependent is treated as absent and the dependent starts at projectStart.
func (s *Scheduler) scheduleSinglePass(items []*models.WorkItem, durations []float64, projectStart time.Time) {
	for _, item := range items {
		item.StartDate = nil
		item.EndDate = nil
	}

	for i, item := range items {
		duration := durations[i]
		setDates(item, projectStart, duration)

		if len(item.Dependencies) == 0 {
			continue
		}

		latestDepEnd := projectStart
		for _, depName := range item.Dependencies {
			for _, dep := range items {
				if dep.Name != depName {
					continue
				}
				if dep.EndDate == nil {
					s.log.Warn("dependency scheduled after its dependent, falling back to project start",
						"item", item.Name, "dependency", depName)
					continue
				}
				if dep.EndDate.After(latestDepEnd) {
					latestDepEnd = *dep.EndDate
				}
			}
		}

		setDates(item, latestDepEnd, duration)
	}
}

// scheduleGraph resolves dependencies into a graph, orders it topologically
// and computes dates in that order.
func (s *Scheduler) scheduleGraph(items []*models.WorkItem, durations []float64, projectStart time.Time) error {
	g := newDependencyGraph(items)

	order, err := g.topoSort()
	if err != nil {
		return err
	}

	for _, idx := range order {
		item := items[idx]
		start := projectStart
		for _, pred := range g.revAdj[idx] {
			if end := items[pred].EndDate; end != nil && end.After(start) {
				start = *end
			}
		}
		setDates(item, start, durations[idx])
	}

	return nil
}

func setDates(item *models.WorkItem, start time.Time, durationDays float64) {
	end := AddDays(start, durationDays)
	item.StartDate = &start
	item.EndDate = &end
}

func checkUniqueNames(items []*models.WorkItem) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if first, ok := seen[item.Name]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateWorkItemName, item.Name, first+1, i+1)
		}
		seen[item.Name] = i
	}
	return nil
}

// UnresolvedDependencies lists dependency names that match no item in the run
func UnresolvedDependencies(items []*models.WorkItem) []models.UnresolvedDependency {
	names := make(map[string]bool, len(items))
	for _, item := range items {
		names[item.Name] = true
	}

	var unresolved []models.UnresolvedDependency
	for _, item := range items {
		for _, dep := range item.Dependencies {
			if !names[dep] {
				unresolved = append(unresolved, models.UnresolvedDependency{Item: item.Name, Dependency: dep})
			}
		}
	}
	return unresolved
}

// dependencyGraph indexes items by their position in the input slice
type dependencyGraph struct {
	items  []*models.WorkItem
	adj    [][]int // item -> items that depend on it
	revAdj [][]int // item -> items it depends on
}

func newDependencyGraph(items []*models.WorkItem) *dependencyGraph {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.Name] = i
	}

	g := &dependencyGraph{
		items:  items,
		adj:    make([][]int, len(items)),
		revAdj: make([][]int, len(items)),
	}

	edgeSet := make(map[[2]int]bool)
	for i, item := range items {
		for _, dep := range item.Dependencies {
			from, ok := index[dep]
			if !ok {
				continue
			}
			key := [2]int{from, i}
			if edgeSet[key] {
				continue
			}
			edgeSet[key] = true
			g.adj[from] = append(g.adj[from], i)
			g.revAdj[i] = append(g.revAdj[i], from)
		}
	}

	return g
}

// topoSort runs Kahn's algorithm, breaking ties by input position
func (g *dependencyGraph) topoSort() ([]int, error) {
	inDegree := make([]int, len(g.items))
	var queue []int
	for i := range g.items {
		inDegree[i] = len(g.revAdj[i])
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(g.items))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, succ := range g.adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
		sort.Ints(queue)
	}

	if len(order) != len(g.items) {
		return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(g.detectCycle(), " -> "))
	}
	return order, nil
}

// detectCycle returns the names along one cycle, or nil if the graph is acyclic.
// DFS with coloring: white (unvisited), gray (in progress), black (done).
func (g *dependencyGraph) detectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make([]int, len(g.items))
	parent := make([]int, len(g.items))

	var dfs func(node int) []int
	dfs = func(node int) []int {
		color[node] = gray
		for _, next := range g.adj[node] {
			if color[next] == gray {
				cycle := []int{next, node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for i := range g.items {
		if color[i] != white {
			continue
		}
		if cycle := dfs(i); cycle != nil {
			names := make([]string, len(cycle))
			for j, idx := range cycle {
				names[j] = g.items[idx].Name
			}
			return names
		}
	}
	return nil
}
