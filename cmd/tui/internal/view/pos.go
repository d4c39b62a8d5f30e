package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/money"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
)

const posPollInterval = 200 * time.Millisecond

type posState int

const (
	posStateCart posState = iota
	posStateSearch
	posStateDiscount
	posStateCustomer
	posStatePayment
	posStateSuccess
)

// posInput holds huh form bindings. It lives on the heap so the pointers
// the form keeps stay valid across model copies.
type posInput struct {
	discount string
	customer string
	method   sale.PaymentMethod
	amount   string
}

type POSModel struct {
	CommonModel
	session *checkout.Session
	catalog *catalog.Service

	state    posState
	cart     table.Model
	products table.Model
	search   textinput.Model
	form     *huh.Form
	input    *posInput

	view    checkout.View
	results []catalog.Product
	receipt checkout.Receipt
	status  string
}

func NewPOSModel(session *checkout.Session, cat *catalog.Service) POSModel {
	cart := newTable([]table.Column{
		{Title: "Product", Width: 28},
		{Title: "Price", Width: 14},
		{Title: "Qty", Width: 5},
		{Title: "Subtotal", Width: 14},
	}, 12)

	products := newTable([]table.Column{
		{Title: "Code", Width: 10},
		{Title: "Product", Width: 28},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 14},
		{Title: "Stock", Width: 6},
	}, 10)

	search := textinput.New()
	search.Placeholder = "Search product name or code"
	search.Prompt = "/ "
	search.CharLimit = 64

	return POSModel{
		session:  session,
		catalog:  cat,
		cart:     cart,
		products: products,
		search:   search,
		input:    &posInput{},
	}
}

func (m POSModel) Title() string { return "Point of Sale" }

func (m POSModel) ShortHelp() string {
	switch m.state {
	case posStateSearch:
		return "Type to search | ↑/↓: select | Enter: add | Esc: done"
	case posStateDiscount, posStateCustomer:
		return "Enter: save | Esc: cancel"
	case posStatePayment:
		return "Navigate form | Esc: back to cart"
	case posStateSuccess:
		return "Recording sale..."
	}

	return "Esc: back | a: add | +/-: qty | x: remove | d: discount | c: customer | p: pay | ctrl+n: new cart"
}

func (m POSModel) Init() tea.Cmd {
	return tea.Batch(m.syncCmd(), m.searchCmd(""))
}

func (m POSModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case posSyncMsg:
		return m.sync(checkout.View(msg)), nil

	case posSearchMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}

		m.results = msg.products
		m.refreshProducts()

		return m, nil

	case posBeginMsg:
		if msg.err != nil {
			m.status = describe(msg.err)
			return m.sync(msg.view), nil
		}

		m.status = ""
		m = m.sync(msg.view)

		return m.enterPayment()

	case posResetMsg:
		if msg.err != nil {
			m.status = describe(msg.err)
		}

		return m.sync(msg.view), nil

	case posPollMsg:
		return m.poll()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.cart.SetHeight(max(5, msg.Height-16))
		return m, nil
	}

	switch m.state {
	case posStateSearch:
		return m.updateSearch(msg)
	case posStateDiscount, posStateCustomer, posStatePayment:
		return m.updateForm(msg)
	case posStateSuccess:
		return m, nil
	}

	return m.updateCart(msg)
}

func (m POSModel) updateCart(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.cart, cmd = m.cart.Update(msg)

		return m, cmd
	}

	line, hasLine := m.selectedLine()

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "a", "/":
		m.state = posStateSearch
		m.cart.Blur()
		m.search.SetValue("")
		focus := m.search.Focus()

		return m, tea.Batch(focus, m.searchCmd(""))
	case "+", "=":
		if hasLine {
			return m.apply(m.session.SetQuantity(line.ID, line.Qty+1))
		}
	case "-":
		if hasLine {
			return m.apply(m.session.SetQuantity(line.ID, line.Qty-1))
		}
	case "x", "delete":
		if hasLine {
			return m.apply(m.session.RemoveLineItem(line.ID))
		}
	case "d":
		m.input.discount = strconv.FormatInt(m.view.Cart.Discount, 10)
		m.form = m.buildDiscountForm()
		m.state = posStateDiscount

		return m, m.form.Init()
	case "c":
		m.input.customer = m.view.Cart.Customer
		m.form = m.buildCustomerForm()
		m.state = posStateCustomer

		return m, m.form.Init()
	case "p":
		return m, m.beginCmd()
	case "ctrl+n":
		return m, m.resetCmd()
	}

	var cmd tea.Cmd
	m.cart, cmd = m.cart.Update(msg)

	return m, cmd
}

func (m POSModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = posStateCart
			m.search.Blur()
			m.cart.Focus()

			return m, nil
		case tea.KeyEnter:
			idx := m.products.Cursor()
			if idx < 0 || idx >= len(m.results) {
				return m, nil
			}

			p := m.results[idx]
			model, cmd := m.apply(m.session.AddProduct(p))

			if pm, ok := model.(POSModel); ok && pm.status == "" {
				pm.status = fmt.Sprintf("Added %s", p.Name)
				return pm, cmd
			}

			return model, cmd
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.products, cmd = m.products.Update(msg)

			return m, cmd
		}
	}

	prev := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != prev {
		return m, tea.Batch(cmd, m.searchCmd(m.search.Value()))
	}

	return m, cmd
}

func (m POSModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.state == posStatePayment {
		m.previewPayment()
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case posStateDiscount:
		amount, _ := parseAmount(m.input.discount)
		m.state = posStateCart
		m.form = nil
		m.cart.Focus()

		return m.apply(m.session.SetDiscount(amount))
	case posStateCustomer:
		m.state = posStateCart
		m.form = nil
		m.cart.Focus()

		return m.apply(m.session.SetCustomer(strings.TrimSpace(m.input.customer)))
	}

	return m.confirm()
}

func (m POSModel) leaveForm() (tea.Model, tea.Cmd) {
	if m.state == posStatePayment {
		v, err := m.session.Cancel()
		if err != nil {
			m.status = describe(err)
		}

		m = m.sync(v)
	}

	m.state = posStateCart
	m.form = nil
	m.cart.Focus()

	return m, nil
}

func (m POSModel) enterPayment() (tea.Model, tea.Cmd) {
	m.input.method = m.view.Method
	m.input.amount = ""
	m.form = m.buildPaymentForm()
	m.state = posStatePayment
	m.cart.Blur()

	return m, m.form.Init()
}

// previewPayment mirrors the half-filled form into the session so the panel
// shows the running change.
func (m *POSModel) previewPayment() {
	if v, err := m.session.SelectMethod(m.input.method); err == nil {
		m.view = v
	}

	if amount, err := parseAmount(m.input.amount); err == nil {
		if v, err := m.session.SetAmountPaid(amount); err == nil {
			m.view = v
		}
	}
}

func (m POSModel) confirm() (tea.Model, tea.Cmd) {
	amount, _ := parseAmount(m.input.amount)

	receipt, err := m.session.Confirm(m.input.method, amount)
	if err != nil {
		m.status = describe(err)
		m.form = m.buildPaymentForm()

		return m, m.form.Init()
	}

	m.receipt = receipt
	m.status = ""
	m.form = nil
	m.state = posStateSuccess

	return m, pollSession()
}

// poll waits for the scheduled commit. A recorded sale opens the next cart;
// a failed one returns to the payment step so it can be confirmed again.
func (m POSModel) poll() (tea.Model, tea.Cmd) {
	if m.state != posStateSuccess {
		return m, nil
	}

	v := m.session.View()

	switch v.State {
	case checkout.PaymentSucceeded:
		return m, pollSession()
	case checkout.AwaitingPayment:
		m = m.sync(v)
		m.status = "Sale could not be recorded. Confirm again to retry."

		return m.enterPayment()
	}

	m = m.sync(v)
	m.state = posStateCart
	m.cart.Focus()

	return m, nil
}

func (m POSModel) apply(v checkout.View, err error) (tea.Model, tea.Cmd) {
	m.status = ""
	if err != nil {
		m.status = describe(err)
	}

	return m.sync(v), nil
}

func (m POSModel) sync(v checkout.View) POSModel {
	m.view = v

	rows := make([]table.Row, 0, len(v.Cart.Items))
	for _, li := range v.Cart.Items {
		rows = append(rows, table.Row{
			li.ProductName,
			money.Rupiah(li.Price),
			strconv.Itoa(li.Qty),
			money.Rupiah(li.Subtotal),
		})
	}

	m.cart.SetRows(rows)

	if c := m.cart.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.cart.SetCursor(len(rows) - 1)
	}

	return m
}

func (m POSModel) selectedLine() (sale.LineItem, bool) {
	idx := m.cart.Cursor()
	if idx < 0 || idx >= len(m.view.Cart.Items) {
		return sale.LineItem{}, false
	}

	return m.view.Cart.Items[idx], true
}

func (m *POSModel) refreshProducts() {
	rows := make([]table.Row, 0, len(m.results))
	for _, p := range m.results {
		rows = append(rows, table.Row{
			p.ID,
			p.Name,
			p.Category,
			money.Rupiah(p.Price),
			strconv.Itoa(p.Stock),
		})
	}

	m.products.SetRows(rows)
	m.products.SetCursor(0)
}

func (m POSModel) buildDiscountForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("discount").
				Title("Discount (Rp)").
				Description("Applied before tax").
				Value(&m.input.discount).
				Validate(validateAmount),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m POSModel) buildCustomerForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer").
				Title("Customer").
				Placeholder("Umum").
				Value(&m.input.customer),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m POSModel) buildPaymentForm() *huh.Form {
	options := make([]huh.Option[sale.PaymentMethod], 0, len(sale.PaymentMethods))
	for _, pm := range sale.PaymentMethods {
		options = append(options, huh.NewOption(pm.Label(), pm))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[sale.PaymentMethod]().
				Key("method").
				Title("Payment Method").
				Options(options...).
				Value(&m.input.method),

			huh.NewInput().
				Key("amount").
				Title("Amount Paid (Rp)").
				Description("Required for cash").
				Value(&m.input.amount).
				Validate(validateAmount),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m POSModel) View() string {
	if m.state == posStateSuccess {
		return lipgloss.NewStyle().Padding(1).Render(m.viewReceipt())
	}

	var left string
	if m.state == posStateSearch {
		left = lipgloss.JoinVertical(lipgloss.Left,
			m.search.View(),
			boxed(m.products.View()),
			faint(fmt.Sprintf("%d products", len(m.results))),
		)
	} else {
		left = boxed(m.cart.View())
		if m.view.Cart.IsEmpty() {
			left = boxed(faint("Cart is empty. Press a to add products.\n") + m.cart.View())
		}
	}

	right := panel(40, m.viewSummary())

	switch m.state {
	case posStateDiscount, posStateCustomer, posStatePayment:
		right = lipgloss.JoinVertical(lipgloss.Left, right, panel(40, m.form.View()))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.status != "" {
		content = activeStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m POSModel) viewSummary() string {
	c := m.view.Cart
	p := m.view.Pricing

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(c.Code),
		faint(fmt.Sprintf("%s %s", c.Date(), c.Time())),
		"Customer: " + customerName(c.Customer),
		"",
		row("Subtotal", money.Rupiah(p.Subtotal)),
		row("Discount", "-"+money.Rupiah(p.Discount)),
		row("Tax", money.Rupiah(p.Tax)),
		lipgloss.NewStyle().Bold(true).Render(row("Total", money.Rupiah(p.Total))),
	}

	if m.view.State == checkout.AwaitingPayment {
		lines = append(lines, "",
			row("Method", m.view.Method.Label()),
			row("Paid", money.Rupiah(m.view.AmountPaid)),
		)

		if m.view.Method == sale.MethodCash && m.view.AmountPaid >= p.Total {
			lines = append(lines, row("Change", money.Rupiah(m.view.AmountPaid-p.Total)))
		}
	}

	return strings.Join(lines, "\n")
}

func (m POSModel) viewReceipt() string {
	r := m.receipt

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Payment Successful!")

	lines := []string{
		header,
		"",
		r.Code,
		row("Total", money.Rupiah(r.Total)),
		row("Method", r.Method.Label()),
	}

	if r.Method == sale.MethodCash {
		lines = append(lines,
			row("Paid", money.Rupiah(r.Paid)),
			row("Change", money.Rupiah(r.Change)),
		)
	}

	return panel(40, strings.Join(lines, "\n"))
}

func row(label, value string) string {
	return fmt.Sprintf("%-10s %24s", label, value)
}

// describe turns a rejected action into an operator-facing line.
func describe(err error) string {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return "Add at least one product before paying."
	case errors.Is(err, checkout.ErrPaymentInsufficient):
		return "Amount paid does not cover the total."
	case errors.Is(err, checkout.ErrCartLocked):
		return "Finish or cancel the payment before editing the cart."
	case errors.Is(err, checkout.ErrInvalidDiscount):
		return "Discount must not be negative."
	}

	return err.Error()
}

func parseAmount(s string) (int64, error) {
	s = strings.NewReplacer(".", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a whole rupiah amount: %q", s)
	}

	return n, nil
}

func validateAmount(s string) error {
	n, err := parseAmount(s)
	if err != nil {
		return err
	}

	if n < 0 {
		return fmt.Errorf("amount cannot be negative")
	}

	return nil
}

// Messages

type posSyncMsg checkout.View

func (m POSModel) syncCmd() tea.Cmd {
	return func() tea.Msg {
		return posSyncMsg(m.session.View())
	}
}

type posSearchMsg struct {
	products []catalog.Product
	err      error
}

func (m POSModel) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.catalog.Search(ctx, query)

		return posSearchMsg{products: products, err: err}
	}
}

type posBeginMsg struct {
	view checkout.View
	err  error
}

func (m POSModel) beginCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		v, err := m.session.BeginPayment(ctx)

		return posBeginMsg{view: v, err: err}
	}
}

type posResetMsg struct {
	view checkout.View
	err  error
}

func (m POSModel) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		v, err := m.session.Reset(ctx)

		return posResetMsg{view: v, err: err}
	}
}

type posPollMsg struct{}

func pollSession() tea.Cmd {
	return tea.Tick(posPollInterval, func(time.Time) tea.Msg {
		return posPollMsg{}
	})
}
