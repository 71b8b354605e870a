package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int // 0: Play, 1: View Leaderboard
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.selected = 1 - m.selected
		case "enter":
			return m, func() tea.Msg { return IntroSubmitMsg(m.selected) }
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

var basiliskAscii = `
 ____    __    ___  ____  __    ____  ___  __ _
(  _ \  /__\  / __)(_  _)(  )  (_  _)/ __)(  / )
 ) _ < /(__)\ \__ \ _)(_  )(__  _)(_ \__ \ )  (
(____/(__)(__)(___/(____)(____)(____)(___/(__\_)

        the snake that never traps itself
`

var (
	introTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	introHintStyle = lipgloss.NewStyle().
			Faint(true)
)

func (m IntroModel) View() string {
	var b strings.Builder
	b.WriteString(introTitleStyle.Render(basiliskAscii))
	b.WriteString("\n\n")

	playButton := buttonStyle.Render("PLAY")
	leaderboardButton := buttonStyle.Render("LEADERBOARD")
	if m.selected == 0 {
		playButton = submitButtonStyle.Render("PLAY")
	} else {
		leaderboardButton = submitButtonStyle.Render("LEADERBOARD")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, playButton, leaderboardButton))
	b.WriteString("\n\n")
	b.WriteString(introHintStyle.Render("arrows to select, enter to confirm, ctrl+c to quit"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		b.String(),
	)
}
