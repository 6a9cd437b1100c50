package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/flowquote/flowquote/cmd/admin/internal/view"
	"github.com/flowquote/flowquote/internal/business"
	businessStore "github.com/flowquote/flowquote/internal/business/store"
	"github.com/flowquote/flowquote/internal/config"
	"github.com/flowquote/flowquote/internal/database"
)

type model struct {
	businesses view.Businesses

	currentView View

	listView   view.ListModel
	reviewView view.ReviewModel
}

type View int

const (
	ViewMenu   View = 0
	ViewList   View = 1
	ViewReview View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Listing and payment toggling touch neither blobs nor notifications.
	svc := business.NewService(businessStore.New(db), nil, nil)

	return model{
		businesses:  svc,
		currentView: ViewMenu,
		listView:    view.NewListModel(svc),
		reviewView:  view.NewReviewModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.businesses)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.businesses)

				return m, m.reviewView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FlowQuote Admin\n\n" +
				"1. Businesses\n" +
				"2. Review Submitted Payments\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	case ViewReview:
		return m.reviewView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run admin TUI", "error", err)
		os.Exit(1)
	}
}
