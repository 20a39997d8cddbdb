package reminder

import (
	"sync"
	"time"

	"nudge/internal/task"
)

// fireWindow absorbs polling jitter: a reminder that a tick lands on up
// to a minute late still fires. At-most-once comes from clearing the
// reminder, not from the window.
const fireWindow = time.Minute

// PerTask fires each task's individual reminder once, then clears it.
type PerTask struct {
	store    *task.Store
	notifier Notifier
	clock    Clock

	mu   sync.Mutex
	stop chan struct{}
}

func NewPerTask(store *task.Store, notifier Notifier, clock Clock) *PerTask {
	return &PerTask{
		store:    store,
		notifier: notifier,
		clock:    clock,
	}
}

// Tick fires every due reminder. A reminder is due when now has reached
// it but by less than the fire window; older reminders never fire.
func (p *PerTask) Tick(now time.Time) {
	for i, t := range p.store.Tasks() {
		if t.Reminder == nil || t.Done {
			continue
		}
		r := *t.Reminder
		if now.Before(r) || now.Sub(r) >= fireWindow {
			continue
		}
		_ = p.notifier.Notify("Task Reminder", t.Text)
		_ = p.store.ClearReminder(i)
	}
}

// Start polls at one-second granularity until Stop, keeping the firing
// window tight.
func (p *PerTask) Start() {
	p.StartEvery(time.Second)
}

func (p *PerTask) StartEvery(interval time.Duration) {
	p.mu.Lock()
	if p.stop != nil {
		p.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.Tick(p.clock.Now())
			}
		}
	}()
}

func (p *PerTask) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}
