package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor)
)

// SetupModel collects the player name and the starting pilot mode.
type SetupModel struct {
	nameInput  textinput.Model
	autopilot  bool
	focusIndex int // 0: Name, 1: Pilot toggle, 2: Submit
	width      int
	height     int
}

func NewSetupModel(w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your Basilisk Name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		autopilot: true,
		width:     w,
		height:    h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		switch s {
		case "tab", "shift+tab":
			if s == "tab" {
				m.focusIndex = (m.focusIndex + 1) % 3
			} else {
				m.focusIndex = (m.focusIndex + 2) % 3
			}
			if m.focusIndex == 0 {
				m.nameInput.Focus()
			} else {
				m.nameInput.Blur()
			}
			return m, nil

		case "enter":
			switch m.focusIndex {
			case 0:
				m.focusIndex = 1
				m.nameInput.Blur()
				return m, nil
			case 1:
				m.autopilot = !m.autopilot
				return m, nil
			default:
				name := strings.TrimSpace(m.nameInput.Value())
				if name == "" {
					name = "anonymous"
				}
				autopilot := m.autopilot
				return m, func() tea.Msg {
					return SetupSubmitMsg{Name: name, Autopilot: autopilot}
				}
			}

		case " ":
			if m.focusIndex == 1 {
				m.autopilot = !m.autopilot
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(focusedStyle.Render("Who dares enter the pit?"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	pilotLabel := "Pilot: manual"
	if m.autopilot {
		pilotLabel = "Pilot: autopilot"
	}
	if m.focusIndex == 1 {
		b.WriteString(focusedStyle.Render("> " + pilotLabel))
	} else {
		b.WriteString(blurredStyle.Render("  " + pilotLabel))
	}
	b.WriteString("\n\n")

	if m.focusIndex == 2 {
		b.WriteString(submitButtonStyle.Render("START"))
	} else {
		b.WriteString(blurredButtonStyle.Render("START"))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab to move, enter/space to toggle, enter on START to play"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		b.String(),
	)
}
