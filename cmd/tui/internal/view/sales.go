package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kasir/internal/money"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

type salesState int

const (
	salesStateList salesState = iota
	salesStateDetail
)

// saleItem wraps a sale to implement list.Item.
type saleItem struct {
	sale *sale.Sale
}

func (i saleItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.sale.Status))
	return fmt.Sprintf("%s  %s  %s  %s", i.sale.Code, i.sale.Date(), money.Rupiah(i.sale.Total), status)
}

func (i saleItem) Description() string {
	return fmt.Sprintf("%s · %s · %d items", customerName(i.sale.Customer), i.sale.Method.Label(), len(i.sale.Items))
}

func (i saleItem) FilterValue() string {
	return i.sale.Code + " " + i.sale.Customer
}

// SalesModel browses the ledger, newest first.
type SalesModel struct {
	CommonModel
	ledger *sale.Ledger

	state    salesState
	list     list.Model
	sales    []*sale.Sale
	selected *sale.Sale

	loading bool
	status  string
}

func NewSalesModel(ledger *sale.Ledger) SalesModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Sales"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return SalesModel{
		ledger:  ledger,
		list:    l,
		loading: true,
	}
}

func (m SalesModel) Title() string { return "Sales Ledger" }

func (m SalesModel) ShortHelp() string {
	if m.state == salesStateDetail {
		return "Esc: back to list"
	}

	return "Esc: back | Enter: details | /: filter | r: refresh"
}

func (m SalesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSalesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.sales = msg.sales
		m.refreshListItems()

		m.status = ""
		if len(msg.sales) == 0 {
			m.status = "No sales recorded yet."
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if m.state == salesStateDetail {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = salesStateList
			m.selected = nil
		}

		return m, nil
	}

	return m.updateList(msg)
}

func (m SalesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break // clears the filter
			}

			return m, Back
		case "enter":
			item, ok := m.list.SelectedItem().(saleItem)
			if !ok {
				return m, nil
			}

			m.selected = item.sale
			m.state = salesStateDetail

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m SalesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading sales...")
	}

	if m.state == salesStateDetail && m.selected != nil {
		return lipgloss.NewStyle().Padding(1).Render(saleDetail(m.selected))
	}

	statusLine := ""
	if m.status != "" {
		statusLine = faint(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func saleDetail(s *sale.Sale) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", lipgloss.NewStyle().Bold(true).Render(s.Code))
	fmt.Fprintf(&b, "%s %s · %s\n", s.Date(), s.Time(), customerName(s.Customer))
	fmt.Fprintf(&b, "Status: %s · %s\n\n", s.Status, s.Method.Label())

	var subtotal int64
	for _, li := range s.Items {
		subtotal += li.Subtotal
		fmt.Fprintf(&b, "%-24s %3d x %12s %14s\n",
			li.ProductName, li.Qty, money.Rupiah(li.Price), money.Rupiah(li.Subtotal))
	}

	b.WriteString("\n")
	b.WriteString(row("Subtotal", money.Rupiah(subtotal)) + "\n")
	b.WriteString(row("Discount", "-"+money.Rupiah(s.Discount)) + "\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(row("Total", money.Rupiah(s.Total))))

	return panel(64, b.String())
}

func customerName(s string) string {
	if s == "" {
		return "Umum"
	}

	return s
}

func (m *SalesModel) refreshListItems() {
	items := make([]list.Item, len(m.sales))
	for i, s := range m.sales {
		items[i] = saleItem{sale: s}
	}

	m.list.SetItems(items)
}

// Messages

type loadSalesMsg struct {
	sales []*sale.Sale
	err   error
}

func (m SalesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sales, err := m.ledger.List(ctx)

		return loadSalesMsg{sales: sales, err: err}
	}
}
