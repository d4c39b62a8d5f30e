package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/insights"
	"github.com/MrJamesThe3rd/kasir/internal/money"
)

type DashboardModel struct {
	CommonModel
	dashboard *dashboard.Service
	insights  *insights.Service

	table   table.Model
	spinner spinner.Model

	stats  []dashboard.Stat
	recent []dashboard.Transaction

	loading    bool
	generating bool
	insight    string
	err        error
}

func NewDashboardModel(dash *dashboard.Service, ins *insights.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Code", Width: 18},
		{Title: "Customer", Width: 20},
		{Title: "Amount", Width: 14},
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 12},
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		dashboard: dash,
		insights:  ins,
		table:     newTable(columns, dashboard.RecentLimit+1),
		spinner:   s,
		loading:   true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.generating {
		return "Generating insights..."
	}

	return "Esc: back | r: refresh | i: AI insights"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
		m.recent = msg.recent
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case insightMsg:
		m.generating = false
		m.insight = string(msg)

		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "i":
			if m.generating || m.loading || m.err != nil {
				return m, nil
			}

			m.generating = true
			m.insight = ""

			return m, tea.Batch(m.spinner.Tick, m.insightCmd())
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.recent))
	for _, tx := range m.recent {
		rows = append(rows, table.Row{
			tx.Code,
			tx.Customer,
			money.Rupiah(tx.Amount),
			tx.Date,
			string(tx.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorText(m.err))
	}

	cards := make([]string, 0, len(m.stats))
	for _, st := range m.stats {
		cards = append(cards, statCard(st))
	}

	var insight string
	switch {
	case m.generating:
		insight = fmt.Sprintf("%s Asking the model about your store...", m.spinner.View())
	case m.insight != "":
		insight = panel(min(70, max(40, m.Width-4)), "AI Insights\n\n"+m.insight)
	default:
		insight = faint("Press i for AI insights.")
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		"Recent Transactions",
		boxed(m.table.View()),
		"",
		insight,
	))
}

func statCard(st dashboard.Stat) string {
	color := lipgloss.Color("46")
	arrow := "▲"

	if st.Change < 0 {
		color = lipgloss.Color("196")
		arrow = "▼"
	}

	change := lipgloss.NewStyle().Foreground(color).
		Render(fmt.Sprintf("%s %.1f%%", arrow, st.Change))

	return lipgloss.NewStyle().
		Padding(0, 1).
		MarginRight(1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(22).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			faint(st.Label),
			lipgloss.NewStyle().Bold(true).Render(st.Display),
			change+faint(" vs last month"),
		))
}

// Messages

type dashboardLoadedMsg struct {
	stats  []dashboard.Stat
	recent []dashboard.Transaction
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		stats, err := m.dashboard.Stats(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		recent, err := m.dashboard.RecentTransactions(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{stats: stats, recent: recent}
	}
}

type insightMsg string

func (m DashboardModel) insightCmd() tea.Cmd {
	stats, recent := m.stats, m.recent

	return func() tea.Msg {
		// The service applies its own request timeout.
		return insightMsg(m.insights.Insights(context.Background(), stats, recent))
	}
}
