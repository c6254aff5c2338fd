package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AgendaItemData struct {
	Title string
	When  string
}

type ChatData struct {
	Header     string
	Transcript string
	Input      string
	Agenda     []AgendaItemData
	StatusLine string
	IsError    bool
	Footer     string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderChat(data ChatData) string {
	left := panelStyle.Width(62).Render(data.Transcript + "\n\n" + data.Input)
	right := panelStyle.Width(36).Render(renderAgenda(data.Agenda))
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func renderAgenda(items []AgendaItemData) string {
	var b strings.Builder
	b.WriteString("ajanda:\n")
	if len(items) == 0 {
		b.WriteString("(yaklaşan hatırlatıcı yok)")
		return b.String()
	}
	for _, item := range items {
		fmt.Fprintf(&b, "• %s  %s\n", item.When, item.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReply styles an assistant reply. Markdown renders through glamour;
// anything it rejects comes back untouched.
func RenderReply(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	out, err := glamour.Render(text, "dark")
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
