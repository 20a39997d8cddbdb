package reminder

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"nudge/internal/storage"
)

var ErrInvalidTime = errors.New("reminder time out of range")

const dateLayout = "2006-01-02"

// Settings is the configured daily reminder time.
type Settings struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewSettings validates hour and minute against a 24-hour clock.
func NewSettings(hour, minute int) (Settings, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Settings{}, ErrInvalidTime
	}
	return Settings{Hour: hour, Minute: minute}, nil
}

// LoadSettings restores the daily reminder time from the KV. A missing
// or malformed entry means no reminder is configured.
func LoadSettings(kv storage.KV) (*Settings, error) {
	raw, ok, err := kv.Get(storage.KeyReminderTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var s Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, nil
	}
	if s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
		return nil, nil
	}
	return &s, nil
}

// SaveSettings persists the daily reminder time.
func SaveSettings(kv storage.KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return kv.Set(storage.KeyReminderTime, string(data))
}

// Daily fires a notification once per calendar day when the wall clock
// reaches the configured hour and minute. The last-fired date is
// persisted so a restart within the same day does not re-fire.
type Daily struct {
	kv       storage.KV
	notifier Notifier
	clock    Clock

	mu        sync.Mutex
	settings  *Settings
	lastFired string
	stop      chan struct{}
}

func NewDaily(kv storage.KV, notifier Notifier, clock Clock, settings *Settings) *Daily {
	d := &Daily{
		kv:       kv,
		notifier: notifier,
		clock:    clock,
		settings: settings,
	}
	if last, ok, err := kv.Get(storage.KeyLastReminderDate); err == nil && ok {
		d.lastFired = last
	}
	return d
}

// Tick evaluates the firing condition against now. Safe to call more
// often than once per minute: the date marker makes repeat calls within
// the same minute no-ops.
func (d *Daily) Tick(now time.Time) {
	d.mu.Lock()
	s := d.settings
	last := d.lastFired
	d.mu.Unlock()

	if s == nil {
		return
	}
	if now.Hour() != s.Hour || now.Minute() != s.Minute {
		return
	}
	today := now.Format(dateLayout)
	if today == last {
		return
	}

	_ = d.notifier.Notify("To-Do List Reminder", "Don't forget to check your to-do list!")

	d.mu.Lock()
	d.lastFired = today
	d.mu.Unlock()
	_ = d.kv.Set(storage.KeyLastReminderDate, today)
}

// Start polls once per minute until Stop. Whole-minute granularity is
// enough: the firing condition is a minute match plus a date check.
func (d *Daily) Start() {
	d.StartEvery(time.Minute)
}

func (d *Daily) StartEvery(interval time.Duration) {
	d.mu.Lock()
	if d.stop != nil {
		d.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	d.stop = stop
	d.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				d.Tick(d.clock.Now())
			}
		}
	}()
}

func (d *Daily) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}

// Reconfigure replaces the active settings and persists them. A nil
// settings value keeps the scheduler running but stops it from firing.
func (d *Daily) Reconfigure(s *Settings) error {
	d.mu.Lock()
	d.settings = s
	d.mu.Unlock()
	if s == nil {
		return nil
	}
	return SaveSettings(d.kv, *s)
}

// Settings returns the active settings, nil when unconfigured.
func (d *Daily) Settings() *Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings
}
