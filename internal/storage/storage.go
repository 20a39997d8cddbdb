package storage

// Keys used by the task store and the reminder schedulers.
const (
	KeyTasks            = "tasks"
	KeyReminderTime     = "reminderTime"
	KeyLastReminderDate = "lastReminderDate"
)

// KV is a string-valued key-value store. Values are JSON payloads; the
// store does not interpret them.
type KV interface {
	// Get returns the value for key. The second result is false when the
	// key has never been written.
	Get(key string) (string, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error

	Close() error
}
