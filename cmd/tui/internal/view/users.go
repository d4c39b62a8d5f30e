package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/user"
)

type usersState int

const (
	usersStateBrowse usersState = iota
	usersStateSearch
	usersStateEdit
	usersStateDelete
)

// userInput holds the huh form bindings; see posInput.
type userInput struct {
	id      uuid.UUID
	name    string
	email   string
	role    user.Role
	status  user.Status
	confirm bool
}

type UsersModel struct {
	CommonModel
	users *user.Service

	state  usersState
	table  table.Model
	search textinput.Model
	form   *huh.Form
	input  *userInput

	list    []*user.User
	query   string
	loading bool
	err     error
	status  string
}

func NewUsersModel(svc *user.Service) UsersModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Joined", Width: 12},
	}

	search := textinput.New()
	search.Placeholder = "Filter by name or email"
	search.Prompt = "/ "

	return UsersModel{
		users:   svc,
		table:   newTable(columns, 12),
		search:  search,
		input:   &userInput{},
		loading: true,
	}
}

func (m UsersModel) Title() string { return "Users" }

func (m UsersModel) ShortHelp() string {
	switch m.state {
	case usersStateSearch:
		return "Type to filter | Enter/Esc: done"
	case usersStateEdit, usersStateDelete:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | n: new | e: edit | x: delete | r: refresh"
}

func (m UsersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUsersMsg:
		m.loading = false
		m.err = msg.err
		m.list = msg.users
		m.refreshTable()

		return m, nil

	case userSaveMsg:
		m.state = usersStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = ""

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-12))
		return m, nil
	}

	switch m.state {
	case usersStateSearch:
		return m.updateSearch(msg)
	case usersStateEdit, usersStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m UsersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = usersStateSearch
			m.table.Blur()
			focus := m.search.Focus()

			return m, focus
		case "n":
			*m.input = userInput{role: user.RoleUser, status: user.StatusActive}
			return m.enterForm(usersStateEdit, m.buildEditForm("New User"))
		case "e":
			u, ok := m.selected()
			if !ok {
				return m, nil
			}

			*m.input = userInput{id: u.ID, name: u.Name, email: u.Email, role: u.Role, status: u.Status}

			return m.enterForm(usersStateEdit, m.buildEditForm("Edit User"))
		case "x":
			u, ok := m.selected()
			if !ok {
				return m, nil
			}

			*m.input = userInput{id: u.ID, name: u.Name}

			return m.enterForm(usersStateDelete, m.buildDeleteForm())
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m UsersModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.state = usersStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if q := m.search.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, m.loadCmd())
	}

	return m, cmd
}

func (m UsersModel) enterForm(state usersState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.table.Blur()

	return m, m.form.Init()
}

func (m UsersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = usersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == usersStateDelete {
		if !m.input.confirm {
			m.state = usersStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd()
	}

	return m, m.saveCmd()
}

func (m UsersModel) selected() (*user.User, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil, false
	}

	return m.list[idx], true
}

func (m *UsersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, u := range m.list {
		rows = append(rows, table.Row{
			u.Name,
			u.Email,
			string(u.Role),
			string(u.Status),
			FormatDate(u.CreatedAt),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m UsersModel) buildEditForm(title string) *huh.Form {
	roles := make([]huh.Option[user.Role], 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, huh.NewOption(string(r), r))
	}

	statuses := make([]huh.Option[user.Status], 0, len(user.Statuses))
	for _, s := range user.Statuses {
		statuses = append(statuses, huh.NewOption(string(s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),

			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.input.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("name@example.com").
				Value(&m.input.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email")
					}
					return nil
				}),

			huh.NewSelect[user.Role]().
				Key("role").
				Title("Role").
				Options(roles...).
				Value(&m.input.role),

			huh.NewSelect[user.Status]().
				Key("status").
				Title("Status").
				Options(statuses...).
				Value(&m.input.status),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m UsersModel) buildDeleteForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Remove %s?", m.input.name)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.input.confirm),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m UsersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading users...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorText(m.err))
	}

	header := fmt.Sprintf("%d users", len(m.list))
	if m.state == usersStateSearch || m.query != "" {
		header = m.search.View() + "  " + faint(header)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(48, m.form.View()))
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadUsersMsg struct {
	users []*user.User
	err   error
}

func (m UsersModel) loadCmd() tea.Cmd {
	query := m.query

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		users, err := m.users.List(ctx, query)

		return loadUsersMsg{users: users, err: err}
	}
}

type userSaveMsg struct {
	err error
}

func (m UsersModel) saveCmd() tea.Cmd {
	in := *m.input
	params := user.Params{
		Name:   strings.TrimSpace(in.name),
		Email:  strings.TrimSpace(in.email),
		Role:   in.role,
		Status: in.status,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if in.id == uuid.Nil {
			_, err = m.users.Create(ctx, params)
		} else {
			_, err = m.users.Update(ctx, in.id, params)
		}

		return userSaveMsg{err: err}
	}
}

func (m UsersModel) deleteCmd() tea.Cmd {
	id := m.input.id

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return userSaveMsg{err: m.users.Delete(ctx, id)}
	}
}
