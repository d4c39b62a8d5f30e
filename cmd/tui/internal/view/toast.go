package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kasir/internal/notify"
)

const toastTick = 100 * time.Millisecond

type toastTickMsg time.Time

// ToastModel renders the active notifications with a countdown bar.
// It never consumes key presses.
type ToastModel struct {
	queue *notify.Queue
	bar   progress.Model
}

func NewToastModel(queue *notify.Queue) ToastModel {
	return ToastModel{
		queue: queue,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
}

func (m ToastModel) Init() tea.Cmd {
	return tickToasts()
}

func (m ToastModel) Update(msg tea.Msg) (ToastModel, tea.Cmd) {
	if _, ok := msg.(toastTickMsg); ok {
		return m, tickToasts()
	}

	return m, nil
}

func (m ToastModel) View() string {
	active := m.queue.Active()
	if len(active) == 0 {
		return ""
	}

	now := m.queue.Now()
	out := make([]string, 0, len(active))

	for _, t := range active {
		body := lipgloss.JoinVertical(lipgloss.Left,
			t.Message,
			m.bar.ViewAs(t.Remaining(now)),
		)

		out = append(out, lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(severityColor(t.Severity)).
			Render(body))
	}

	return strings.Join(out, "\n")
}

func severityColor(s notify.Severity) lipgloss.Color {
	switch s {
	case notify.SeverityError:
		return lipgloss.Color("196")
	case notify.SeverityInfo:
		return lipgloss.Color("63")
	}

	return lipgloss.Color("46")
}

func tickToasts() tea.Cmd {
	return tea.Tick(toastTick, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}
