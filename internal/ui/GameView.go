package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/basilisk/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Styling Definitions ---

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
	bodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	foodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// Player head runes based on direction
	headRunes = map[game.Direction]string{
		game.DirUp:    "▲",
		game.DirDown:  "▼",
		game.DirLeft:  "◀",
		game.DirRight: "▶",
	}
)

type gameScreenState int

const (
	playingState gameScreenState = iota
	gameOverState
	leaderboardState
)

// GameModel renders one game session and routes its key presses.
type GameModel struct {
	gameManager *game.GameManager
	highScores  *game.HighScoreService
	playerName  string

	state      gameScreenState
	gameOver   GameOverState
	scoreSaved bool

	ScreenWidth  int
	ScreenHeight int
}

func NewGameModel(gm *game.GameManager, highScores *game.HighScoreService, playerName string, screenWidth, screenHeight int) GameModel {
	return GameModel{
		gameManager: gm,
		highScores:  highScores,
		playerName:  playerName,
		state:       playingState,
		gameOver: GameOverState{
			HighScores:   highScores,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m GameModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameModel) listenForGameUpdates() tea.Cmd {
	return func() tea.Msg {
		return <-m.gameManager.UpdateChannel
	}
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case game.GameTickMsg:
		return m, m.listenForGameUpdates()

	case game.GameOverMsg:
		m.state = gameOverState
		m.gameOver.FinalLength = msg.FinalLength
		m.gameOver.FoodEaten = msg.FoodEaten
		m.saveScore(msg)
		return m, m.listenForGameUpdates()

	case ShowLeaderboardMsg:
		m.state = leaderboardState
		m.gameOver.loadScores()
		return m, nil
	}

	return m, nil
}

func (m *GameModel) saveScore(msg game.GameOverMsg) {
	if m.scoreSaved || m.highScores == nil || m.playerName == "" {
		return
	}
	m.scoreSaved = true
	err := m.highScores.SaveScore(m.playerName, msg.FinalLength, msg.FoodEaten, msg.Autopilot)
	if err != nil {
		log.Error("high score persist failed", "player", m.playerName, "error", err)
	}
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case playingState:
		switch msg.String() {
		case "up", "w":
			return m.steer(game.DirUp)
		case "down", "s":
			return m.steer(game.DirDown)
		case "left", "a":
			return m.steer(game.DirLeft)
		case "right", "d":
			return m.steer(game.DirRight)
		case "p":
			m.gameManager.ToggleAutopilot()
			return m, nil
		case "q":
			m.gameManager.Stop()
			return m, tea.Quit
		}

	case gameOverState:
		switch msg.String() {
		case "left", "right", "tab":
			m.gameOver.SelectedButton = 1 - m.gameOver.SelectedButton
			return m, nil
		case "r":
			m.state = playingState
			m.scoreSaved = false
			m.gameManager.Reset()
			return m, nil
		case "enter":
			if m.gameOver.SelectedButton == 0 {
				return m, func() tea.Msg { return QuitGameMsg{} }
			}
			m.state = leaderboardState
			m.gameOver.loadScores()
			return m, nil
		}

	case leaderboardState:
		switch msg.String() {
		case "esc", "q", "enter":
			if m.playerName == "" {
				// Leaderboard was opened straight from the intro.
				return m, func() tea.Msg { return QuitGameMsg{} }
			}
			m.state = gameOverState
			return m, nil
		}
	}

	return m, nil
}

// steer takes manual control: a human key press always disengages the pilot.
func (m GameModel) steer(dir game.Direction) (tea.Model, tea.Cmd) {
	m.gameManager.SetAutopilot(false)
	m.gameManager.DirectionChannel <- dir
	return m, nil
}

func (m GameModel) View() string {
	switch m.state {
	case gameOverState:
		return m.gameOver.RenderGameOverScreen()
	case leaderboardState:
		return m.gameOver.RenderLeaderboard()
	}

	// The loop goroutine owns the live state; render from a copy.
	snap := m.gameManager.Snapshot()
	mapViewBox := mapViewStyle.Render(m.renderMapView(snap))
	statusPanelViewBox := statusPanelStyle.Render(m.renderStatusPanel(snap))
	board := lipgloss.JoinHorizontal(lipgloss.Top, mapViewBox, " ", statusPanelViewBox)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center, board)
}

func (m GameModel) renderMapView(snap game.Snapshot) string {
	var mapView strings.Builder

	for y := 0; y < snap.Grid.Height; y++ {
		for x := 0; x < snap.Grid.Width; x++ {
			cell := game.Cell{X: x, Y: y}
			switch {
			case cell == snap.Body.Head():
				mapView.WriteString(bodyStyle.Render(headRunes[snap.Heading]))
			case snap.Body.Occupies(cell, false):
				mapView.WriteString(bodyStyle.Render("○"))
			case cell == snap.Food:
				mapView.WriteString(foodStyle.Render("◆"))
			default:
				mapView.WriteString(voidStyle.Render("·"))
			}
		}
		if y < snap.Grid.Height-1 {
			mapView.WriteString("\n")
		}
	}

	return mapView.String()
}

func (m GameModel) renderStatusPanel(snap game.Snapshot) string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Basilisk ---") + "\n")
	if m.playerName != "" {
		statusContent.WriteString(fmt.Sprintf("Player: %s\n", m.playerName))
	}
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(snap.Body)))
	statusContent.WriteString(fmt.Sprintf("Food eaten: %d\n", snap.FoodEaten))
	statusContent.WriteString(fmt.Sprintf("Tick: %d\n", snap.TickCount))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Pilot ---") + "\n")
	if snap.AutopilotOn {
		statusContent.WriteString("Mode: autopilot\n")
		if snap.LastReason != "" {
			statusContent.WriteString(fmt.Sprintf("Doing: %s\n", snap.LastReason))
		}
	} else {
		statusContent.WriteString("Mode: manual\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString("WASD / Arrows: steer (takes control)\n")
	statusContent.WriteString("P: toggle autopilot\n")
	statusContent.WriteString("Q: quit\n")

	return statusContent.String()
}
