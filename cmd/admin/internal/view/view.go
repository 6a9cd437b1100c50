package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/business"
)

const dbTimeout = 5 * time.Second

// Businesses is the slice of the business service the admin screens use.
type Businesses interface {
	List(ctx context.Context) ([]*business.Business, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status business.PaymentStatus) error
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func FormatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Local().Format("2006-01-02 15:04")
}

func FormatBool(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func statusStyle(s business.PaymentStatus) string {
	color := lipgloss.Color("203")
	if s == business.PaymentPaid {
		color = lipgloss.Color("42")
	}

	return lipgloss.NewStyle().Foreground(color).Render(string(s))
}
