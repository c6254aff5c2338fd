package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kahya/kahya/internal/router"
	"github.com/kahya/kahya/internal/scheduler"
	"github.com/kahya/kahya/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadAgendaCmd()}
	if m.dispatcher != nil {
		cmds = append(cmds, waitForResultCmd(m.dispatcher.Results()))
	}
	if m.reminders != nil {
		cmds = append(cmds, waitForReminderCmd(m.reminders))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case m.Keys.ClearChat:
			m.Transcript = nil
			m.Status = StatusBar{Text: "sohbet temizlendi"}
			return m, nil
		case "enter":
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.appendEntry(RoleUser, input)
			m.Pending++
			m.dispatcher.Route(input)
			m.Status = StatusBar{Text: "işleniyor..."}
			return m, m.busySpinner.Tick
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(typed)
		return m, cmd

	case spinner.TickMsg:
		if m.Pending > 0 {
			var cmd tea.Cmd
			m.busySpinner, cmd = m.busySpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case ResultMsg:
		if m.Pending > 0 {
			m.Pending--
		}
		m.appendEntry(RoleAssistant, typed.Result.Text)
		if typed.Result.Source == router.SourceError {
			m.Status = StatusBar{Text: typed.Result.Text, IsError: true}
		} else {
			m.Status = StatusBar{Text: "hazır"}
		}
		return m, tea.Batch(waitForResultCmd(m.dispatcher.Results()), m.loadAgendaCmd())

	case ReminderDueMsg:
		text := fmt.Sprintf("⏰ Hatırlatma: %s", typed.Event.Title)
		m.appendEntry(RoleReminder, text)
		m.Status = StatusBar{Text: text}
		m.notify("Kahya", typed.Event.Title)
		cmds := []tea.Cmd{m.markTriggeredCmd(typed.Event.ID), m.loadAgendaCmd()}
		if m.reminders != nil {
			cmds = append(cmds, waitForReminderCmd(m.reminders))
		}
		return m, tea.Batch(cmds...)

	case CalendarRefreshMsg:
		return m, m.loadAgendaCmd()

	case AgendaLoadedMsg:
		m.Agenda = typed.Reminders
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	var transcript strings.Builder
	for _, entry := range m.Transcript {
		switch entry.Role {
		case RoleUser:
			fmt.Fprintf(&transcript, "siz> %s\n", entry.Text)
		case RoleReminder:
			fmt.Fprintf(&transcript, "%s\n", entry.Text)
		default:
			fmt.Fprintf(&transcript, "%s\n", views.RenderReply(entry.Text))
		}
	}

	vp := m.transcriptView
	vp.SetContent(strings.TrimRight(transcript.String(), "\n"))
	vp.GotoBottom()

	agenda := make([]views.AgendaItemData, 0, len(m.Agenda))
	for _, rem := range m.Agenda {
		agenda = append(agenda, views.AgendaItemData{
			Title: rem.Title,
			When:  rem.ReminderTime.Format("02.01.2006 15:04"),
		})
	}

	status := m.Status.Text
	if m.Pending > 0 {
		status = m.busySpinner.View() + " " + status
	}

	return views.RenderChat(views.ChatData{
		Header:     "kahya",
		Transcript: vp.View(),
		Input:      m.input.View(),
		Agenda:     agenda,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     fmt.Sprintf("keys: enter gönder | %s temizle | %s çıkış", m.Keys.ClearChat, m.Keys.Quit),
	})
}

func (m Model) loadAgendaCmd() tea.Cmd {
	if m.agenda == nil {
		return nil
	}
	src := m.agenda
	return func() tea.Msg {
		reminders, err := src.Upcoming(agendaLimit)
		if err != nil {
			return SetStatusMsg{Text: "ajanda yüklenemedi: " + err.Error(), IsError: true}
		}
		return AgendaLoadedMsg{Reminders: reminders}
	}
}

func (m Model) markTriggeredCmd(id int64) tea.Cmd {
	if m.agenda == nil {
		return nil
	}
	src := m.agenda
	return func() tea.Msg {
		if err := src.MarkTriggered(id); err != nil {
			return SetStatusMsg{Text: "hatırlatıcı işaretlenemedi: " + err.Error(), IsError: true}
		}
		return nil
	}
}

func waitForResultCmd(ch <-chan router.Result) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return ResultMsg{Result: res}
	}
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}
