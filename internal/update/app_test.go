package update

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kahya/kahya/internal/router"
	"github.com/kahya/kahya/internal/scheduler"
	"github.com/kahya/kahya/internal/storage"
)

type fakeDispatcher struct {
	routed  []string
	results chan router.Result
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{results: make(chan router.Result, 4)}
}

func (f *fakeDispatcher) Route(input string) {
	f.routed = append(f.routed, input)
}

func (f *fakeDispatcher) Results() <-chan router.Result {
	return f.results
}

type fakeAgenda struct {
	upcoming  []storage.Reminder
	triggered []int64
}

func (f *fakeAgenda) Upcoming(limit int) ([]storage.Reminder, error) {
	return f.upcoming, nil
}

func (f *fakeAgenda) MarkTriggered(id int64) error {
	f.triggered = append(f.triggered, id)
	return nil
}

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestEnterRoutesInputAndShowsSpinner(t *testing.T) {
	dispatcher := newFakeDispatcher()
	m := NewModel(dispatcher, &fakeAgenda{})

	m = typeText(m, "notlar")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if len(dispatcher.routed) != 1 || dispatcher.routed[0] != "notlar" {
		t.Fatalf("unexpected routed inputs: %v", dispatcher.routed)
	}
	if next.Pending != 1 {
		t.Fatalf("expected 1 pending command, got %d", next.Pending)
	}
	if cmd == nil {
		t.Fatal("expected spinner tick command")
	}
	if len(next.Transcript) != 1 || next.Transcript[0].Role != RoleUser {
		t.Fatalf("expected user transcript entry, got %+v", next.Transcript)
	}
}

func TestEmptyEnterIsIgnored(t *testing.T) {
	dispatcher := newFakeDispatcher()
	m := NewModel(dispatcher, &fakeAgenda{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if len(dispatcher.routed) != 0 {
		t.Fatalf("expected nothing routed, got %v", dispatcher.routed)
	}
	if next.Pending != 0 {
		t.Fatalf("expected no pending commands, got %d", next.Pending)
	}
}

func TestResultMsgAppendsTranscriptAndRearms(t *testing.T) {
	dispatcher := newFakeDispatcher()
	m := NewModel(dispatcher, &fakeAgenda{})
	m.Pending = 1

	updated, cmd := m.Update(ResultMsg{Result: router.Result{Text: "📝 Henüz not yok", Source: router.SourceHandler}})
	next := updated.(Model)

	if next.Pending != 0 {
		t.Fatalf("expected pending cleared, got %d", next.Pending)
	}
	if len(next.Transcript) != 1 || next.Transcript[0].Role != RoleAssistant {
		t.Fatalf("unexpected transcript: %+v", next.Transcript)
	}
	if cmd == nil {
		t.Fatal("expected re-armed result wait command")
	}
}

func TestErrorResultSetsStatus(t *testing.T) {
	dispatcher := newFakeDispatcher()
	m := NewModel(dispatcher, &fakeAgenda{})

	updated, _ := m.Update(ResultMsg{Result: router.Result{Text: "Hata: boom", Source: router.SourceError}})
	next := updated.(Model)

	if !next.Status.IsError || next.Status.Text != "Hata: boom" {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestReminderDueMarksTriggeredAndNotifies(t *testing.T) {
	dispatcher := newFakeDispatcher()
	agenda := &fakeAgenda{}
	notifier := &recordingNotifier{}
	m := NewModelWithConfig(dispatcher, agenda, nil, notifier, RuntimeConfig{DesktopNotifications: true})

	ev := scheduler.ReminderEvent{ID: 7, Title: "ilaç al", TriggerAt: time.Now()}
	updated, cmd := m.Update(ReminderDueMsg{Event: ev})
	next := updated.(Model)

	if len(next.Transcript) != 1 || next.Transcript[0].Role != RoleReminder {
		t.Fatalf("expected reminder transcript entry, got %+v", next.Transcript)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Body != "ilaç al" {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
	if cmd == nil {
		t.Fatal("expected mark-triggered and agenda commands")
	}
	// Run the batched commands to exercise the store write.
	runCmd(t, cmd)
	if len(agenda.triggered) != 1 || agenda.triggered[0] != 7 {
		t.Fatalf("expected reminder 7 marked triggered, got %v", agenda.triggered)
	}
}

func TestCalendarRefreshLoadsAgenda(t *testing.T) {
	dispatcher := newFakeDispatcher()
	agenda := &fakeAgenda{upcoming: []storage.Reminder{
		{ID: 1, Title: "toplantı", ReminderTime: time.Date(2025, time.July, 10, 14, 30, 0, 0, time.UTC)},
	}}
	m := NewModel(dispatcher, agenda)

	updated, cmd := m.Update(CalendarRefreshMsg{})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected agenda load command")
	}
	msg := cmd()
	loaded, ok := msg.(AgendaLoadedMsg)
	if !ok {
		t.Fatalf("expected AgendaLoadedMsg, got %T", msg)
	}
	updated, _ = next.Update(loaded)
	next = updated.(Model)
	if len(next.Agenda) != 1 || next.Agenda[0].Title != "toplantı" {
		t.Fatalf("unexpected agenda: %+v", next.Agenda)
	}
}

func TestViewContainsTranscriptAndAgenda(t *testing.T) {
	dispatcher := newFakeDispatcher()
	m := NewModel(dispatcher, &fakeAgenda{})
	m.appendEntry(RoleUser, "notlar")
	m.Agenda = []storage.Reminder{
		{ID: 1, Title: "toplantı", ReminderTime: time.Date(2025, time.July, 10, 14, 30, 0, 0, time.UTC)},
	}
	m.Status = StatusBar{Text: "hazır"}

	out := m.View()
	if !strings.Contains(out, "siz> notlar") {
		t.Fatalf("expected user entry in view: %q", out)
	}
	if !strings.Contains(out, "10.07.2025 14:30") {
		t.Fatalf("expected agenda entry in view: %q", out)
	}
	if !strings.Contains(out, "hazır") {
		t.Fatalf("expected status in view: %q", out)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(newFakeDispatcher(), &fakeAgenda{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

// runCmd executes a command and any batch it expands to, discarding the
// produced messages.
func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			runCmd(t, sub)
		}
	}
}
