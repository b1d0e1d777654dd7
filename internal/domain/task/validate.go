package task

import (
	"errors"
	"fmt"
)

var (
	ErrNoTasks       = errors.New("at least one task is required")
	ErrDuplicateName = errors.New("duplicate task name")
	ErrMissingAgent  = errors.New("task agent_role is required")
	ErrUnknownDep    = errors.New("dependency references unknown task")
	ErrDAGCycle      = errors.New("task dependencies contain a cycle")
)

// ValidateGraph checks that the task list forms a valid DAG with unique
// names and resolvable dependencies, using Kahn's algorithm.
func ValidateGraph(tasks []Task) error {
	if len(tasks) == 0 {
		return ErrNoTasks
	}

	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if t.AgentRole == "" {
			return fmt.Errorf("task %q: %w", t.Name, ErrMissingAgent)
		}
		if _, dup := index[t.Name]; dup {
			return fmt.Errorf("task %q: %w", t.Name, ErrDuplicateName)
		}
		index[t.Name] = i
	}

	n := len(tasks)
	inDegree := make([]int, n)
	adj := make([][]int, n)

	for i, t := range tasks {
		for _, dep := range t.DependsOn {
			j, ok := index[dep]
			if !ok {
				return fmt.Errorf("task %q depends on %q: %w", t.Name, dep, ErrUnknownDep)
			}
			if j == i {
				return fmt.Errorf("task %q depends on itself: %w", t.Name, ErrDAGCycle)
			}
			adj[j] = append(adj[j], i)
			inDegree[i]++
		}
	}

	queue := make([]int, 0, n)
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	visited := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adj[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited != n {
		return ErrDAGCycle
	}
	return nil
}
