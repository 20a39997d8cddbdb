package task

import "fmt"

// Steps produces a canned five-step plan for a task. A stand-in for a
// real planning backend.
func Steps(text string) []string {
	return []string{
		fmt.Sprintf("1. Research and plan how to %s.", text),
		fmt.Sprintf("2. Gather necessary resources for %s.", text),
		fmt.Sprintf("3. Execute the first step of %s.", text),
		"4. Monitor progress and make adjustments.",
		fmt.Sprintf("5. Complete %s and review the outcome.", text),
	}
}
