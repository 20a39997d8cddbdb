package ui

import (
	"sync"

	"nudge/internal/reminder"
)

// AlertBuffer queues notifications for the status line. It is the
// terminal stand-in for desktop notifications: the schedulers write
// into it from their ticks and the next render drains it.
type AlertBuffer struct {
	mu     sync.Mutex
	alerts []string
}

func NewAlertBuffer() *AlertBuffer {
	return &AlertBuffer{}
}

// Notify implements reminder.Notifier.
func (b *AlertBuffer) Notify(title, body string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append(b.alerts, title+": "+body)
	return nil
}

// RequestPermission implements reminder.PermissionRequester. Writing to
// the status line needs no consent.
func (b *AlertBuffer) RequestPermission() reminder.Permission {
	return reminder.PermissionGranted
}

// Pop removes and returns the oldest queued alert.
func (b *AlertBuffer) Pop() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.alerts) == 0 {
		return "", false
	}
	alert := b.alerts[0]
	b.alerts = b.alerts[1:]
	return alert, true
}
