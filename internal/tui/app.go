package tui

import (
	"fmt"

	"burnboard/internal/config"
	"burnboard/internal/kanban/cardstore"
	kanbanview "burnboard/internal/tui/kanban"
	"burnboard/internal/tui/shared"
	"burnboard/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusBarLines is the height of the bottom status bar including its border
const statusBarLines = 2

// AppModel is the root model wrapping the board view
type AppModel struct {
	cfg       *config.Config
	store     *cardstore.Store
	boardView kanbanview.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model for a loaded card store
func NewAppModel(cfg *config.Config, store *cardstore.Store) AppModel {
	return AppModel{
		cfg:       cfg,
		store:     store,
		boardView: kanbanview.NewBoardModel(store, cfg.BoardName),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-statusBarLines)
		return m, nil

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Let the board handle every key while it is capturing input
		if !m.boardView.IsModal() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("Burnboard - Keyboard & Mouse", helpSections, m.width, m.height)
	}

	statusText := fmt.Sprintf("%s:%s | %d cards | ?: help | q: quit",
		m.cfg.Backend, m.cfg.Key, len(m.store.Cards()))
	if m.boardView.Dragging() {
		statusText = "dragging | release over a column or the burn barrel"
	}

	statusBar := theme.StatusBar.Width(m.width).Render(
		theme.HelpHint.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Mouse",
		Binds: []shared.HelpBind{
			{Key: "drag card", Desc: "Move it; the violet line marks the drop slot"},
			{Key: "drop on barrel", Desc: "Burn (delete) the card"},
			{Key: "+ Add card", Desc: "Add a card to that column"},
			{Key: "wheel", Desc: "Scroll the column under the pointer"},
		},
	},
	{
		Title: "Board",
		Binds: []shared.HelpBind{
			{Key: "h / l", Desc: "Previous / next column"},
			{Key: "j / k", Desc: "Navigate cards"},
			{Key: "m / space", Desc: "Move mode (h/l column, j/k reorder)"},
			{Key: "n", Desc: "New card"},
			{Key: "D", Desc: "Burn selected card"},
			{Key: "/", Desc: "Filter cards"},
			{Key: "esc", Desc: "Clear filter / cancel drag"},
		},
	},
	{
		Title: "Global",
		Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
}
