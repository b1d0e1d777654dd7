package task

// Ready returns the names of tasks that are pending and have all
// dependencies completed.
func Ready(tasks []Task) []string {
	completed := make(map[string]bool, len(tasks))
	for i := range tasks {
		if tasks[i].Status == StatusCompleted {
			completed[tasks[i].Name] = true
		}
	}

	var ready []string
	for i := range tasks {
		if tasks[i].Status != StatusPending {
			continue
		}
		ok := true
		for _, dep := range tasks[i].DependsOn {
			if !completed[dep] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, tasks[i].Name)
		}
	}
	return ready
}

// AllTerminal returns true if every task is in a terminal state.
func AllTerminal(tasks []Task) bool {
	for i := range tasks {
		if !tasks[i].Status.IsTerminal() {
			return false
		}
	}
	return true
}

// AnyFailed returns true if at least one task has failed.
func AnyFailed(tasks []Task) bool {
	for i := range tasks {
		if tasks[i].Status == StatusFailed {
			return true
		}
	}
	return false
}

// SkipBlocked marks pending tasks whose dependency chain can no longer
// complete (a failed or skipped upstream) as skipped. Returns the names
// of the tasks it skipped.
func SkipBlocked(tasks []Task) []string {
	dead := make(map[string]bool, len(tasks))
	for i := range tasks {
		if tasks[i].Status == StatusFailed || tasks[i].Status == StatusSkipped {
			dead[tasks[i].Name] = true
		}
	}

	var skipped []string
	// Iterate until a fixed point so transitive dependents are caught.
	for {
		changed := false
		for i := range tasks {
			if tasks[i].Status != StatusPending {
				continue
			}
			for _, dep := range tasks[i].DependsOn {
				if dead[dep] {
					tasks[i].Status = StatusSkipped
					dead[tasks[i].Name] = true
					skipped = append(skipped, tasks[i].Name)
					changed = true
					break
				}
			}
		}
		if !changed {
			return skipped
		}
	}
}
