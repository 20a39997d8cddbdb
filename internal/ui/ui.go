package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nudge/internal/config"
	"nudge/internal/reminder"
	"nudge/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeReminder
)

const reminderLayout = "2006-01-02 15:04"

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	reminderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

type tickMsg time.Time

// formState is the multi-field editor for adding or editing a task.
// editIndex is -1 when adding.
type formState struct {
	editIndex int
	text      string
	priority  string
	category  string
	reminder  string
	index     int
}

// reminderState edits the daily reminder time.
type reminderState struct {
	hour   string
	minute string
	index  int
}

type Model struct {
	store   *task.Store
	daily   *reminder.Daily
	perTask *reminder.PerTask
	clock   reminder.Clock
	alerts  *AlertBuffer
	cfg     config.Config

	tasks      []task.Task
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	filter     string
	sortOrder  string
	confirmDel bool
	pendingDel *task.Task
	form       *formState
	remForm    *reminderState
	now        time.Time
}

func Run(store *task.Store, daily *reminder.Daily, perTask *reminder.PerTask, clock reminder.Clock, alerts *AlertBuffer, cfg config.Config) error {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:     store,
		daily:     daily,
		perTask:   perTask,
		clock:     clock,
		alerts:    alerts,
		cfg:       cfg,
		tasks:     store.Tasks(),
		status:    "Press 'a' to add, space to toggle, 'd' to delete.",
		input:     ti,
		mode:      modeList,
		filter:    strings.ToLower(cfg.DefaultFilter),
		sortOrder: strings.ToLower(cfg.DefaultSort),
		now:       clock.Now(),
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := m.clock.Now()
		m.now = now
		m.perTask.Tick(now)
		m.daily.Tick(now)
		m.tasks = m.store.Tasks()
		if alert, ok := m.alerts.Pop(); ok {
			m.status = alertStyle.Render(alert)
		}
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, tick()
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateFormMode(msg.String(), msg)
		}
		if m.remForm != nil {
			return m.updateReminderMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

// visible is the projected display list for the current filter and sort.
func (m Model) visible() []task.Task {
	return task.Project(m.tasks, m.filter, m.sortOrder)
}

// originalIndex maps a projected task back to its store index. Text is
// the task identity, so the lookup is exact.
func (m Model) originalIndex(text string) int {
	for i, t := range m.tasks {
		if t.Text == text {
			return i
		}
	}
	return -1
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	visible := m.visible()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		m.daily.Stop()
		m.perTask.Stop()
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(visible))
		}
	case m.cfg.Keys.Add:
		return m.startForm(-1)
	case m.cfg.Keys.Edit:
		if len(visible) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		idx := m.originalIndex(visible[m.cursor].Text)
		return m.startForm(idx)
	case m.cfg.Keys.Toggle:
		if len(visible) == 0 {
			return m, nil
		}
		idx := m.originalIndex(visible[m.cursor].Text)
		if err := m.store.ToggleDone(idx); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.tasks = m.store.Tasks()
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
	case m.cfg.Keys.ClearCompleted:
		if err := m.store.ClearCompleted(); err != nil {
			m.status = fmt.Sprintf("clear failed: %v", err)
			return m, nil
		}
		m.tasks = m.store.Tasks()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Cleared completed tasks"
	case m.cfg.Keys.CycleFilter:
		m.filter = nextCategory(task.Categories(m.tasks), m.filter)
		m.cursor = 0
		m.status = "Filter: " + m.filter
	case m.cfg.Keys.CycleSort:
		m.sortOrder = nextSort(m.sortOrder)
		m.status = "Sort: " + m.sortOrder
	case m.cfg.Keys.DailyReminder:
		return m.startReminderForm()
	case m.cfg.Keys.Steps:
		if len(visible) == 0 {
			m.status = "No task selected"
			return m, nil
		}
		steps := task.Steps(visible[m.cursor].Text)
		m.status = "Steps: " + strings.Join(steps, " ")
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		idx := m.originalIndex(m.pendingDel.Text)
		if err := m.store.Delete(idx); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.tasks = m.store.Tasks()
			m.cursor = clampCursor(m.cursor, len(m.visible()))
			m.status = "Deleted task"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) startForm(editIndex int) (tea.Model, tea.Cmd) {
	f := &formState{editIndex: editIndex, priority: string(task.PriorityMedium)}
	if editIndex >= 0 {
		t := m.tasks[editIndex]
		f.text = t.Text
		f.priority = string(t.Priority)
		f.category = t.Category
		if t.Reminder != nil {
			f.reminder = t.Reminder.Format(reminderLayout)
		}
	}
	m.form = f
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	m.mode = modeForm
	m.status = "Edit task: tab to move, enter to save/next, esc to cancel"
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	f := m.form
	priority, ok := task.ParsePriority(strings.ToLower(strings.TrimSpace(f.priority)))
	if !ok {
		m.status = "priority must be low, medium or high"
		return m, nil
	}
	rem, err := parseReminder(f.reminder)
	if err != nil {
		m.status = fmt.Sprintf("reminder invalid: %v", err)
		return m, nil
	}

	if f.editIndex < 0 {
		_, err = m.store.Add(f.text, priority, f.category, rem)
	} else {
		err = m.store.Edit(f.editIndex, f.text, priority, f.category, rem)
	}
	switch {
	case errors.Is(err, task.ErrEmptyText):
		m.status = "Task cannot be empty."
		return m, nil
	case errors.Is(err, task.ErrDuplicateTask):
		m.status = "Task already exists."
		return m, nil
	case err != nil:
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	m.form = nil
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
	m.tasks = m.store.Tasks()
	m.cursor = clampCursor(m.cursor, len(m.visible()))
	m.status = "Saved task"
	return m, nil
}

func (m Model) startReminderForm() (tea.Model, tea.Cmd) {
	r := &reminderState{}
	if s := m.daily.Settings(); s != nil {
		r.hour = strconv.Itoa(s.Hour)
		r.minute = strconv.Itoa(s.Minute)
	}
	m.remForm = r
	m.input.SetValue(r.hour)
	m.input.Placeholder = "hour (0-23)"
	m.input.Focus()
	m.mode = modeReminder
	m.status = "Set daily reminder: enter to advance, esc to cancel"
	return m, nil
}

func (m Model) updateReminderMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.remForm = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.remForm.index == 0 {
			m.remForm.hour = m.input.Value()
			m.remForm.index = 1
			m.input.SetValue(m.remForm.minute)
			m.input.Placeholder = "minute (0-59)"
			return m, nil
		}
		m.remForm.minute = m.input.Value()
		return m.saveReminder()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveReminder() (tea.Model, tea.Cmd) {
	hour, err1 := strconv.Atoi(strings.TrimSpace(m.remForm.hour))
	minute, err2 := strconv.Atoi(strings.TrimSpace(m.remForm.minute))
	if err1 != nil || err2 != nil {
		m.status = "Please enter a valid hour (0-23) and minute (0-59)."
		return m, nil
	}
	settings, err := reminder.NewSettings(hour, minute)
	if err != nil {
		m.status = "Please enter a valid hour (0-23) and minute (0-59)."
		return m, nil
	}
	if err := m.daily.Reconfigure(&settings); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.remForm = nil
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
	m.status = fmt.Sprintf("Reminder: %d:%02d", hour, minute)
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Nudge"))
	b.WriteString("  ")
	b.WriteString(m.now.Format("15:04:05"))
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("No tasks yet!")
	} else {
		b.WriteString(m.renderTaskList(visible))
	}

	b.WriteString("\n---\n")

	switch {
	case m.form != nil:
		b.WriteString(m.renderForm())
	case m.remForm != nil:
		b.WriteString("Daily reminder time\n\n")
		b.WriteString(m.input.View())
	default:
		b.WriteString(m.renderFooter())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func (m Model) renderTaskList(visible []task.Task) string {
	var b strings.Builder
	for i, t := range visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Done {
			checkbox = "[x]"
		}

		text := t.Text
		if t.Done {
			text = doneStyle.Render(text)
		}

		line := fmt.Sprintf("%s %s %s %s", cursor, checkbox, text, renderPriority(t.Priority))
		if t.Category != "" {
			line += " " + categoryStyle.Render(t.Category)
		}
		if t.Reminder != nil {
			line += " " + reminderStyle.Render("Reminder: "+t.Reminder.Format(reminderLayout))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderPriority(p task.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}

func (m Model) renderFooter() string {
	total, active := m.store.Counts()
	footer := fmt.Sprintf("Total tasks: %d  Active: %d  Filter: %s  Sort: %s", total, active, m.filter, m.sortOrder)
	if s := m.daily.Settings(); s != nil {
		footer += fmt.Sprintf("  Reminder: %d:%02d", s.Hour, s.Minute)
	}
	if total-active > 0 {
		footer += fmt.Sprintf("  ['%s' clears completed]", m.cfg.Keys.ClearCompleted)
	}
	return footer
}

func (m Model) renderForm() string {
	f := m.form
	fields := formFields()
	values := []string{f.text, f.priority, f.category, f.reminder}
	var b strings.Builder
	b.WriteString("Task editor (tab to move, enter to save/next, esc to cancel)\n\n")
	for i, name := range fields {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-28s : %s\n", prefix, name, val))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s clear done • %s filter • %s sort • %s reminder • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete, k.ClearCompleted, k.CycleFilter, k.CycleSort, k.DailyReminder, k.Quit)
}

func formFields() []string {
	return []string{"text", "priority (low/medium/high)", "category", "reminder (YYYY-MM-DD HH:MM)"}
}

func (f formState) currentLabel() string {
	return formFields()[f.index]
}

func (f formState) currentValue() string {
	switch f.index {
	case 0:
		return f.text
	case 1:
		return f.priority
	case 2:
		return f.category
	case 3:
		return f.reminder
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.text = v
	case 1:
		f.priority = v
	case 2:
		f.category = v
	case 3:
		f.reminder = v
	}
}

func parseReminder(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(reminderLayout, v, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nextCategory cycles through the live category list, wrapping to "all".
func nextCategory(categories []string, current string) string {
	for i, c := range categories {
		if c == current {
			return categories[(i+1)%len(categories)]
		}
	}
	return task.FilterAll
}

func nextSort(current string) string {
	switch current {
	case task.SortNone:
		return task.SortHighFirst
	case task.SortHighFirst:
		return task.SortLowFirst
	default:
		return task.SortNone
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
