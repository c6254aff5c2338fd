package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/kahya/kahya/internal/router"
	"github.com/kahya/kahya/internal/scheduler"
	"github.com/kahya/kahya/internal/storage"
)

// Role tags a transcript entry with who produced it.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleReminder  Role = "reminder"
)

type Entry struct {
	Role Role
	Text string
	At   time.Time
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Quit      string
	ClearChat string
}

// Dispatcher is the command router surface the chat model drives.
type Dispatcher interface {
	Route(input string)
	Results() <-chan router.Result
}

// AgendaSource provides the upcoming-reminder pane and trigger bookkeeping.
type AgendaSource interface {
	Upcoming(limit int) ([]storage.Reminder, error)
	MarkTriggered(id int64) error
}

type Notification struct {
	Title string
	Body  string
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Model is the chat surface: a transcript viewport, an input line, and an
// agenda pane of upcoming reminders kept fresh by the calendar signal.
type Model struct {
	Transcript []Entry
	Agenda     []storage.Reminder
	Pending    int
	Status     StatusBar
	Keys       GlobalKeyMap
	Quitting   bool

	DesktopEnabled bool
	notifier       DesktopNotifier

	dispatcher Dispatcher
	agenda     AgendaSource
	reminders  <-chan scheduler.ReminderEvent

	input          textinput.Model
	transcriptView viewport.Model
	busySpinner    spinner.Model
}

const agendaLimit = 8

type ResultMsg struct {
	Result router.Result
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// CalendarRefreshMsg repaints the agenda pane. The router's calendar
// signal and reminder fires both produce it.
type CalendarRefreshMsg struct{}

type AgendaLoadedMsg struct {
	Reminders []storage.Reminder
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

func NewModel(dispatcher Dispatcher, agenda AgendaSource) Model {
	m := Model{
		Keys:       GlobalKeyMap{Quit: "ctrl+c", ClearChat: "ctrl+l"},
		notifier:   NoopDesktopNotifier{},
		dispatcher: dispatcher,
		agenda:     agenda,
	}
	m.initBubbleComponents()
	return m
}

func NewModelWithConfig(dispatcher Dispatcher, agenda AgendaSource, reminders <-chan scheduler.ReminderEvent, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel(dispatcher, agenda)
	m.reminders = reminders
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "komut yazın (örn: hatırlat yarın 14:30 toplantı)"
	m.input.CharLimit = 256
	m.input.Width = 56
	m.input.Focus()

	m.transcriptView = viewport.New(58, 16)

	m.busySpinner = spinner.New()
	m.busySpinner.Spinner = spinner.Dot
}

func (m *Model) appendEntry(role Role, text string) {
	m.Transcript = append(m.Transcript, Entry{Role: role, Text: text, At: time.Now()})
	if len(m.Transcript) > 200 {
		m.Transcript = m.Transcript[len(m.Transcript)-200:]
	}
}

func (m *Model) notify(title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(Notification{Title: title, Body: body})
	}
}
