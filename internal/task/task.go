package task

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting; unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Task is a to-do entry. Its trimmed Text is its identity: no two tasks
// in a store ever share the same text.
type Task struct {
	Text     string     `json:"text"`
	Priority Priority   `json:"priority"`
	Category string     `json:"category"`
	Reminder *time.Time `json:"reminder"`
	Done     bool       `json:"done"`
}
