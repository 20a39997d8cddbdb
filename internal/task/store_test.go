package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nudge/internal/storage"
)

func newTestStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	s := NewStore(kv)
	require.NoError(t, s.Load())
	return s, kv
}

func TestAdd(t *testing.T) {
	s, _ := newTestStore(t)

	added, err := s.Add("  Buy milk  ", PriorityHigh, " errands ", nil)
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", added.Text)
	assert.Equal(t, PriorityHigh, added.Priority)
	assert.Equal(t, "errands", added.Category)
	assert.False(t, added.Done)
	assert.Nil(t, added.Reminder)
}

func TestAdd_EmptyText(t *testing.T) {
	s, _ := newTestStore(t)

	for _, text := range []string{"", "   "} {
		_, err := s.Add(text, PriorityLow, "", nil)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.Empty(t, s.Tasks())
}

func TestAdd_Duplicate(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add("Buy milk", PriorityLow, "", nil)
	require.NoError(t, err)

	_, err = s.Add("Buy milk", PriorityHigh, "errands", nil)
	assert.ErrorIs(t, err, ErrDuplicateTask)
	assert.Len(t, s.Tasks(), 1)

	// Trimming feeds the duplicate check too.
	_, err = s.Add("  Buy milk ", PriorityLow, "", nil)
	assert.ErrorIs(t, err, ErrDuplicateTask)
}

func TestTextUniqueness_AcrossOperations(t *testing.T) {
	s, _ := newTestStore(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(text, PriorityLow, "", nil)
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete(1))
	_, err := s.Add("b", PriorityLow, "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Edit(0, "d", PriorityLow, "", nil))

	seen := map[string]bool{}
	for _, task := range s.Tasks() {
		assert.False(t, seen[task.Text], "duplicate text %q", task.Text)
		seen[task.Text] = true
	}
}

func TestEdit(t *testing.T) {
	s, _ := newTestStore(t)
	rem := time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)

	_, err := s.Add("write report", PriorityLow, "work", nil)
	require.NoError(t, err)

	require.NoError(t, s.Edit(0, " send report ", PriorityHigh, "office", &rem))

	got := s.Tasks()[0]
	assert.Equal(t, "send report", got.Text)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Equal(t, "office", got.Category)
	require.NotNil(t, got.Reminder)
	assert.True(t, got.Reminder.Equal(rem))
}

func TestEdit_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add("a", PriorityLow, "", nil)
	require.NoError(t, err)
	_, err = s.Add("b", PriorityLow, "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Edit(0, "", PriorityLow, "", nil), ErrEmptyText)
	assert.ErrorIs(t, s.Edit(0, "b", PriorityLow, "", nil), ErrDuplicateTask)
	assert.ErrorIs(t, s.Edit(5, "c", PriorityLow, "", nil), ErrIndexOutOfRange)

	// Keeping its own text is not a duplicate.
	assert.NoError(t, s.Edit(0, "a", PriorityHigh, "", nil))
}

func TestToggleDone(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add("a", PriorityLow, "", nil)
	require.NoError(t, err)

	require.NoError(t, s.ToggleDone(0))
	assert.True(t, s.Tasks()[0].Done)
	require.NoError(t, s.ToggleDone(0))
	assert.False(t, s.Tasks()[0].Done)

	assert.ErrorIs(t, s.ToggleDone(3), ErrIndexOutOfRange)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(text, PriorityLow, "", nil)
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete(1))

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Text)
	assert.Equal(t, "c", tasks[1].Text)

	assert.ErrorIs(t, s.Delete(-1), ErrIndexOutOfRange)
}

func TestClearCompleted(t *testing.T) {
	s, _ := newTestStore(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(text, PriorityLow, "", nil)
		require.NoError(t, err)
	}
	require.NoError(t, s.ToggleDone(0))
	require.NoError(t, s.ToggleDone(2))

	require.NoError(t, s.ClearCompleted())

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Text)
	assert.False(t, tasks[0].Done)
}

func TestClearReminder(t *testing.T) {
	s, _ := newTestStore(t)
	rem := time.Now().Add(time.Hour)

	_, err := s.Add("a", PriorityLow, "", &rem)
	require.NoError(t, err)

	require.NoError(t, s.ClearReminder(0))
	assert.Nil(t, s.Tasks()[0].Reminder)

	assert.ErrorIs(t, s.ClearReminder(1), ErrIndexOutOfRange)
}

func TestCounts(t *testing.T) {
	s, _ := newTestStore(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(text, PriorityLow, "", nil)
		require.NoError(t, err)
	}
	require.NoError(t, s.ToggleDone(1))

	total, active := s.Counts()
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, active)
}

func TestRoundTrip(t *testing.T) {
	s, kv := newTestStore(t)
	rem := time.Date(2025, 3, 14, 15, 9, 0, 0, time.UTC)

	_, err := s.Add("a", PriorityHigh, "work", &rem)
	require.NoError(t, err)
	_, err = s.Add("b", PriorityLow, "", nil)
	require.NoError(t, err)
	require.NoError(t, s.ToggleDone(1))

	restored := NewStore(kv)
	require.NoError(t, restored.Load())

	want := s.Tasks()
	got := restored.Tasks()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.Equal(t, want[i].Priority, got[i].Priority)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.Equal(t, want[i].Done, got[i].Done)
		if want[i].Reminder == nil {
			assert.Nil(t, got[i].Reminder)
		} else {
			require.NotNil(t, got[i].Reminder)
			assert.True(t, got[i].Reminder.Equal(*want[i].Reminder))
		}
	}
}

func TestLoad_MalformedPayload(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(storage.KeyTasks, "{not json"))

	s := NewStore(kv)
	require.NoError(t, s.Load())
	assert.Empty(t, s.Tasks())
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add("a", PriorityLow, "", nil)
	require.NoError(t, err)

	snapshot := s.Tasks()
	snapshot[0].Text = "mutated"
	assert.Equal(t, "a", s.Tasks()[0].Text)
}
