package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowquote/flowquote/internal/business"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
	listStateSaving
)

// statusBinding outlives the model copies bubbletea makes, so the form
// always writes to the same place.
type statusBinding struct {
	status business.PaymentStatus
}

type ListModel struct {
	businesses Businesses

	state  listState
	table  table.Model
	all    []*business.Business
	shown  []*business.Business
	filter paymentFilter
	form   *huh.Form
	edit   *statusBinding

	loading bool
	err     error
	status  string
}

func NewListModel(svc Businesses) ListModel {
	columns := []table.Column{
		{Title: "Business", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Payment", Width: 8},
		{Title: "Submitted", Width: 17},
		{Title: "Verified", Width: 8},
		{Title: "Created", Width: 17},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		businesses: svc,
		table:      t,
		loading:    true,
	}
}

func (m ListModel) Title() string { return "Businesses" }

func (m ListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: set payment | f: filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.all = msg.businesses
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s is now %s", msg.name, msg.status)
		}

		m.state = listStateBrowse
		m.form = nil
		m.edit = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e", "enter":
			return m.enterEditMode()
		case "f":
			m.filter = m.filter.next()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) selected() *business.Business {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return nil
	}

	return m.shown[idx]
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	b := m.selected()
	if b == nil {
		return m, nil
	}

	m.edit = &statusBinding{status: b.PaymentStatus}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[business.PaymentStatus]().
				Key("payment_status").
				Title("Payment status").
				Options(
					huh.NewOption("Paid", business.PaymentPaid),
					huh.NewOption("Unpaid", business.PaymentUnpaid),
				).
				Value(&m.edit.status),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.edit = nil
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

	m.state = listStateSaving

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading businesses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(r to retry, Esc to back)", m.err))
	}

	header := fmt.Sprintf("Filter: [f] %s | %d of %d", activeStyle(m.filter.String()), len(m.shown), len(m.all))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	if m.state == listStateEdit && m.form != nil {
		name, current := "", business.PaymentStatus("")
		if b := m.selected(); b != nil {
			name, current = b.Name, b.PaymentStatus
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(fmt.Sprintf("%s\nCurrently: %s\n\n%s", name, statusStyle(current), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	m.shown = filterBusinesses(m.all, m.filter)

	rows := make([]table.Row, 0, len(m.shown))
	for _, b := range m.shown {
		rows = append(rows, table.Row{
			b.Name,
			b.Email,
			string(b.PaymentStatus),
			FormatTime(b.PaymentSubmittedAt),
			FormatBool(b.EmailVerified),
			FormatTime(&b.CreatedAt),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

type loadListMsg struct {
	businesses []*business.Business
	err        error
}

func (m ListModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.businesses.List(ctx)

		return loadListMsg{businesses: list, err: err}
	}
}

type listSaveMsg struct {
	name   string
	status business.PaymentStatus
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	b := m.selected()
	if b == nil || m.edit == nil {
		return nil
	}

	id, name, status := b.ID, b.Name, m.edit.status

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.businesses.SetPaymentStatus(ctx, id, status)

		return listSaveMsg{name: name, status: status, err: err}
	}
}
