package task

import "sort"

// FilterAll is the sentinel category matching every task.
const FilterAll = "all"

// Sort orders accepted by Project. Any other value keeps insertion order.
const (
	SortHighFirst = "high"
	SortLowFirst  = "low"
	SortNone      = "none"
)

// Project computes a display list: filter by exact category (unless
// "all"), then stable-sort by priority rank. The input is not mutated.
func Project(tasks []Task, category, order string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if category != FilterAll && t.Category != category {
			continue
		}
		out = append(out, t)
	}

	switch order {
	case SortHighFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortLowFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	}
	return out
}

// Categories lists the distinct categories present across all tasks, in
// first-seen order, prefixed with "all". Empty categories are skipped.
func Categories(tasks []Task) []string {
	out := []string{FilterAll}
	seen := map[string]struct{}{}
	for _, t := range tasks {
		if t.Category == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
