package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nudge/internal/storage"
	"nudge/internal/task"
)

func newTaskStore(t *testing.T) *task.Store {
	t.Helper()
	s := task.NewStore(storage.NewMemory())
	require.NoError(t, s.Load())
	return s
}

func TestPerTask_FiresAndClears(t *testing.T) {
	store := newTaskStore(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	rem := now.Add(-30 * time.Second)

	_, err := store.Add("water the plants", task.PriorityLow, "", &rem)
	require.NoError(t, err)

	notifier := &spyNotifier{}
	p := NewPerTask(store, notifier, &fakeClock{})

	p.Tick(now)
	require.Equal(t, 1, notifier.count())
	assert.Contains(t, notifier.calls[0], "water the plants")
	assert.Nil(t, store.Tasks()[0].Reminder)

	// Reminder is gone, so a second tick is silent.
	p.Tick(now.Add(time.Second))
	assert.Equal(t, 1, notifier.count())
}

func TestPerTask_SkipsDoneTasks(t *testing.T) {
	store := newTaskStore(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	rem := now.Add(-10 * time.Second)

	_, err := store.Add("a", task.PriorityLow, "", &rem)
	require.NoError(t, err)
	require.NoError(t, store.ToggleDone(0))

	notifier := &spyNotifier{}
	NewPerTask(store, notifier, &fakeClock{}).Tick(now)

	assert.Equal(t, 0, notifier.count())
	assert.NotNil(t, store.Tasks()[0].Reminder)
}

func TestPerTask_FutureReminderWaits(t *testing.T) {
	store := newTaskStore(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	rem := now.Add(30 * time.Second)

	_, err := store.Add("a", task.PriorityLow, "", &rem)
	require.NoError(t, err)

	notifier := &spyNotifier{}
	p := NewPerTask(store, notifier, &fakeClock{})

	p.Tick(now)
	assert.Equal(t, 0, notifier.count())

	p.Tick(now.Add(30 * time.Second))
	assert.Equal(t, 1, notifier.count())
}

func TestPerTask_StaleReminderNeverFires(t *testing.T) {
	store := newTaskStore(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	rem := now.Add(-fireWindow)

	_, err := store.Add("a", task.PriorityLow, "", &rem)
	require.NoError(t, err)

	notifier := &spyNotifier{}
	NewPerTask(store, notifier, &fakeClock{}).Tick(now)

	// Exactly one window old falls outside; it stays unfired forever.
	assert.Equal(t, 0, notifier.count())
	assert.NotNil(t, store.Tasks()[0].Reminder)
}

func TestPerTask_MultipleDue(t *testing.T) {
	store := newTaskStore(t)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	remA := now.Add(-5 * time.Second)
	remB := now.Add(-10 * time.Second)

	_, err := store.Add("a", task.PriorityLow, "", &remA)
	require.NoError(t, err)
	_, err = store.Add("b", task.PriorityLow, "", nil)
	require.NoError(t, err)
	_, err = store.Add("c", task.PriorityLow, "", &remB)
	require.NoError(t, err)

	notifier := &spyNotifier{}
	NewPerTask(store, notifier, &fakeClock{}).Tick(now)

	assert.Equal(t, 2, notifier.count())
	for _, tk := range store.Tasks() {
		assert.Nil(t, tk.Reminder)
	}
}

func TestPerTask_StartStop(t *testing.T) {
	store := newTaskStore(t)
	clock := &fakeClock{}
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)
	clock.Set(now)
	rem := now.Add(-time.Second)

	_, err := store.Add("a", task.PriorityLow, "", &rem)
	require.NoError(t, err)

	notifier := &spyNotifier{}
	p := NewPerTask(store, notifier, clock)
	p.StartEvery(time.Millisecond)
	defer p.Stop()

	deadline := time.After(time.Second)
	for notifier.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never fired")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	p.Stop()
	assert.Equal(t, 1, notifier.count())
}
