package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-racer/internal/core"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one selectable line of the title menu.
type MenuItem struct {
	Label  string
	Choice MenuChoice
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	bestScore int
	width     int
	height    int
	config    core.RuntimeConfig
	choice    MenuChoice
}

// NewMenuModel creates the title menu. bestScore is shown under the title.
func NewMenuModel(cfg core.RuntimeConfig, bestScore int) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Label: "Play", Choice: ChoicePlay},
			{Label: "High Scores", Choice: ChoiceScores},
			{Label: "Quit", Choice: ChoiceQuit},
		},
		bestScore: bestScore,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor].Choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L A N E   R A C E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best Score: %d", m.bestScore), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what was picked, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu shows the title menu and returns the selection.
func RunMenu(cfg core.RuntimeConfig, bestScore int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, bestScore),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}
