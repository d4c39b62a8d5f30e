package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/money"
)

const barWidth = 40

var monthWindows = []int{dashboard.DefaultMonths, 3, 12}

type AnalyticsModel struct {
	CommonModel
	dashboard *dashboard.Service

	windowIdx int
	weekday   []dashboard.Point
	monthly   []dashboard.Point

	loading bool
	err     error
}

func NewAnalyticsModel(svc *dashboard.Service) AnalyticsModel {
	return AnalyticsModel{dashboard: svc, loading: true}
}

func (m AnalyticsModel) Title() string { return "Analytics" }

func (m AnalyticsModel) ShortHelp() string {
	return "Esc: back | m: months window | r: refresh"
}

func (m AnalyticsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.weekday = msg.weekday
		m.monthly = msg.monthly

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "m":
			m.windowIdx = (m.windowIdx + 1) % len(monthWindows)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m AnalyticsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading analytics...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorText(m.err))
	}

	months := monthWindows[m.windowIdx]

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		"Revenue, last 7 days",
		boxed(barChart(m.weekday, lipgloss.Color("63"))),
		"",
		fmt.Sprintf("Revenue by month [m]: %s", activeStyle(fmt.Sprintf("last %d months", months))),
		boxed(barChart(m.monthly, lipgloss.Color("205"))),
	))
}

// barChart draws one horizontal bar per point, scaled to the largest revenue.
func barChart(points []dashboard.Point, color lipgloss.Color) string {
	var peak int64
	for _, p := range points {
		peak = max(peak, p.Revenue)
	}

	bar := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, 0, len(points))

	for _, p := range points {
		n := 0
		if peak > 0 {
			n = int(p.Revenue * barWidth / peak)
		}

		lines = append(lines, fmt.Sprintf("%-4s %s%s %s %s",
			p.Label,
			bar.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barWidth-n),
			money.Rupiah(p.Revenue),
			faint(fmt.Sprintf("(%d sales)", p.Sales)),
		))
	}

	return strings.Join(lines, "\n")
}

// Messages

type analyticsLoadedMsg struct {
	weekday []dashboard.Point
	monthly []dashboard.Point
	err     error
}

func (m AnalyticsModel) loadCmd() tea.Cmd {
	months := monthWindows[m.windowIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		weekday, err := m.dashboard.RevenueByWeekday(ctx)
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}

		monthly, err := m.dashboard.RevenueByMonth(ctx, months)
		if err != nil {
			return analyticsLoadedMsg{err: err}
		}

		return analyticsLoadedMsg{weekday: weekday, monthly: monthly}
	}
}
