package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowquote/flowquote/internal/business"
)

type decision struct {
	confirm bool
}

// ReviewModel walks businesses with a submitted but unconfirmed payment one
// at a time.
type ReviewModel struct {
	businesses Businesses

	queue    []*business.Business
	current  *business.Business
	total    int
	form     *huh.Form
	decision *decision

	confirmed int
	loading   bool
	saving    bool
	status    string
}

func NewReviewModel(svc Businesses) ReviewModel {
	return ReviewModel{
		businesses: svc,
		loading:    true,
		status:     "Loading submitted payments...",
	}
}

func (m ReviewModel) Title() string { return "Review payments" }

func (m ReviewModel) ShortHelp() string { return "Enter: choose | Esc: back" }

func (m ReviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case loadReviewMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading businesses: %v", msg.err)
			return m, nil
		}

		m.queue = filterBusinesses(msg.businesses, filterAwaiting)
		m.total = len(m.queue)

		return m, m.next()

	case reviewSaveMsg:
		m.saving = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving %s: %v", m.current.Name, msg.err)
			return m, m.retry()
		}

		m.confirmed++

		return m, m.next()
	}

	if m.form == nil || m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.decision.confirm {
		return m, m.next()
	}

	m.saving = true

	return m, m.saveCmd()
}

func (m *ReviewModel) next() tea.Cmd {
	if len(m.queue) == 0 {
		m.current = nil
		m.form = nil

		if m.total == 0 {
			m.status = "No payments awaiting confirmation."
		} else {
			m.status = fmt.Sprintf("All done! %d of %d confirmed.", m.confirmed, m.total)
		}

		return nil
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.status = fmt.Sprintf("Reviewing %d/%d", m.total-len(m.queue), m.total)

	return m.buildForm()
}

func (m *ReviewModel) retry() tea.Cmd {
	return m.buildForm()
}

func (m *ReviewModel) buildForm() tea.Cmd {
	m.decision = &decision{confirm: true}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Mark as paid?").
				Affirmative("Mark paid").
				Negative("Skip").
				Value(&m.decision.confirm),
		),
	).WithWidth(40).WithShowHelp(false)

	return m.form.Init()
}

func (m ReviewModel) View() string {
	if m.loading || m.current == nil {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	b := m.current
	info := fmt.Sprintf(
		"Business:  %s\nEmail:     %s\nPhone:     %s\nSubmitted: %s\nVerified:  %s\nStatus:    %s",
		b.Name,
		b.Email,
		b.Phone,
		FormatTime(b.PaymentSubmittedAt),
		FormatBool(b.EmailVerified),
		statusStyle(b.PaymentStatus),
	)

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(info + "\n\n" + m.formView())

	return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n" + panel)
}

func (m ReviewModel) formView() string {
	if m.saving {
		return "Saving..."
	}

	return m.form.View()
}

type loadReviewMsg struct {
	businesses []*business.Business
	err        error
}

func (m ReviewModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.businesses.List(ctx)

		return loadReviewMsg{businesses: list, err: err}
	}
}

type reviewSaveMsg struct {
	err error
}

func (m ReviewModel) saveCmd() tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return reviewSaveMsg{err: m.businesses.SetPaymentStatus(ctx, id, business.PaymentPaid)}
	}
}
