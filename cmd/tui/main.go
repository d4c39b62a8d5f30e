package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kasir/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/kasir/internal/app"
	"github.com/MrJamesThe3rd/kasir/internal/config"
)

type model struct {
	app *app.App

	currentView View
	width       int
	height      int

	toasts        view.ToastModel
	dashboardView view.DashboardModel
	posView       view.POSModel
	salesView     view.SalesModel
	usersView     view.UsersModel
	analyticsView view.AnalyticsModel
}

const logPath = "kasir-tui.log"

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewPOS       View = 2
	ViewSales     View = 3
	ViewUsers     View = 4
	ViewAnalytics View = 5
)

func initialModel(a *app.App) model {
	return model{
		app:           a,
		currentView:   ViewMenu,
		toasts:        view.NewToastModel(a.Toasts),
		dashboardView: view.NewDashboardModel(a.Dashboard, a.Insights),
		posView:       view.NewPOSModel(a.Checkout, a.Catalog),
		salesView:     view.NewSalesModel(a.Ledger),
		usersView:     view.NewUsersModel(a.Users),
		analyticsView: view.NewAnalyticsModel(a.Dashboard),
	}
}

func (m model) Init() tea.Cmd {
	return m.toasts.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.toasts, cmd = m.toasts.Update(msg)
	if cmd != nil {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.app.Dashboard, m.app.Insights)

				return m, m.enter(m.dashboardView.Init())
			case "2":
				m.currentView = ViewPOS
				m.posView = view.NewPOSModel(m.app.Checkout, m.app.Catalog)

				return m, m.enter(m.posView.Init())
			case "3":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.app.Ledger)

				return m, m.enter(m.salesView.Init())
			case "4":
				m.currentView = ViewUsers
				m.usersView = view.NewUsersModel(m.app.Users)

				return m, m.enter(m.usersView.Init())
			case "5":
				m.currentView = ViewAnalytics
				m.analyticsView = view.NewAnalyticsModel(m.app.Dashboard)

				return m, m.enter(m.analyticsView.Init())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewPOS:
		var newModel tea.Model
		newModel, cmd = m.posView.Update(msg)
		m.posView = newModel.(view.POSModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewUsers:
		var newModel tea.Model
		newModel, cmd = m.usersView.Update(msg)
		m.usersView = newModel.(view.UsersModel)
	case ViewAnalytics:
		var newModel tea.Model
		newModel, cmd = m.analyticsView.Update(msg)
		m.analyticsView = newModel.(view.AnalyticsModel)
	}

	return m, cmd
}

// enter replays the last window size so a freshly built view lays itself out.
func (m model) enter(init tea.Cmd) tea.Cmd {
	if m.width == 0 {
		return init
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return tea.Batch(init, func() tea.Msg { return size })
}

func (m model) View() string {
	var (
		body  string
		title string
		help  string
	)

	switch m.currentView {
	case ViewMenu:
		body = lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s\n\n", m.app.Config.App.Name) +
				"1. Dashboard\n" +
				"2. Point of Sale\n" +
				"3. Sales Ledger\n" +
				"4. Users\n" +
				"5. Analytics\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		body, title, help = m.dashboardView.View(), m.dashboardView.Title(), m.dashboardView.ShortHelp()
	case ViewPOS:
		body, title, help = m.posView.View(), m.posView.Title(), m.posView.ShortHelp()
	case ViewSales:
		body, title, help = m.salesView.View(), m.salesView.Title(), m.salesView.ShortHelp()
	case ViewUsers:
		body, title, help = m.usersView.View(), m.usersView.Title(), m.usersView.ShortHelp()
	case ViewAnalytics:
		body, title, help = m.analyticsView.View(), m.analyticsView.Title(), m.analyticsView.ShortHelp()
	default:
		body = "Unknown View"
	}

	if title != "" {
		header := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(title)
		footer := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(help)
		body = lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	}

	if toasts := m.toasts.View(); toasts != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, toasts)
	}

	return body
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	// Anything written to stderr would tear the alternate screen.
	logFile, err := tea.LogToFile(logPath, "kasir")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("starting services: %w", err)
	}
	defer a.Close()

	if _, err := tea.NewProgram(initialModel(a), tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	return nil
}
