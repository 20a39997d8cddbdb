package task

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"nudge/internal/storage"
)

// Store owns the task collection. Every mutation is written through to
// the backing KV before it returns; one call is one flush.
type Store struct {
	kv    storage.KV
	mu    sync.Mutex
	tasks []Task
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load restores the collection from the KV. An absent or malformed
// payload yields an empty collection; it is not an error.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(storage.KeyTasks)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	if !ok {
		return nil
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		// Malformed payload self-heals to an empty collection.
		return nil
	}
	s.tasks = tasks
	return nil
}

// Tasks returns a snapshot copy of the collection.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Add appends a new task. Text is trimmed first; an empty result or a
// text already in the collection is rejected.
func (s *Store) Add(text string, priority Priority, category string, reminder *time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)

	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" {
		return Task{}, ErrEmptyText
	}
	if s.indexOf(text, -1) >= 0 {
		return Task{}, ErrDuplicateTask
	}

	t := Task{
		Text:     text,
		Priority: priority,
		Category: category,
		Reminder: reminder,
		Done:     false,
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return Task{}, err
	}
	return t, nil
}

// Edit rewrites the task at index. The new text goes through the same
// validation as Add, except the task itself is excluded from the
// duplicate check.
func (s *Store) Edit(index int, text string, priority Priority, category string, reminder *time.Time) error {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tasks) {
		return ErrIndexOutOfRange
	}
	if text == "" {
		return ErrEmptyText
	}
	if s.indexOf(text, index) >= 0 {
		return ErrDuplicateTask
	}

	prev := s.tasks[index]
	s.tasks[index].Text = text
	s.tasks[index].Priority = priority
	s.tasks[index].Category = category
	s.tasks[index].Reminder = reminder
	if err := s.persist(); err != nil {
		s.tasks[index] = prev
		return err
	}
	return nil
}

func (s *Store) ToggleDone(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tasks) {
		return ErrIndexOutOfRange
	}
	s.tasks[index].Done = !s.tasks[index].Done
	if err := s.persist(); err != nil {
		s.tasks[index].Done = !s.tasks[index].Done
		return err
	}
	return nil
}

func (s *Store) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tasks) {
		return ErrIndexOutOfRange
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return s.persist()
}

// ClearCompleted removes every done task, keeping the remaining tasks
// in their original order.
func (s *Store) ClearCompleted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.persist()
}

// ClearReminder nulls the reminder of the task at index. The per-task
// scheduler calls this after firing so the reminder cannot fire twice.
func (s *Store) ClearReminder(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tasks) {
		return ErrIndexOutOfRange
	}
	s.tasks[index].Reminder = nil
	return s.persist()
}

// Counts reports the collection size and how many tasks are not done.
func (s *Store) Counts() (total, active int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total = len(s.tasks)
	for _, t := range s.tasks {
		if !t.Done {
			active++
		}
	}
	return total, active
}

// indexOf finds a task by exact text, skipping the task at exclude.
// Caller holds the lock.
func (s *Store) indexOf(text string, exclude int) int {
	for i, t := range s.tasks {
		if i != exclude && t.Text == text {
			return i
		}
	}
	return -1
}

// persist serializes the whole collection under the tasks key. Caller
// holds the lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.KeyTasks, string(data))
}
