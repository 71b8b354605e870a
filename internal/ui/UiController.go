package ui

import (
	"github.com/Mshel/basilisk/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Play, 1 for Leaderboard
type SetupSubmitMsg struct {
	Name      string
	Autopilot bool
}

type ShowLeaderboardMsg struct{}
type QuitGameMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	GameManager   *game.GameManager
	HighScores    *game.HighScoreService

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(gameManager *game.GameManager, highScores *game.HighScoreService, screenWidth, screenHeight int) ControllerModel {
	return ControllerModel{
		GameManager:   gameManager,
		HighScores:    highScores,
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewSetupModel(screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game loading..."
	default:
		return "Unknown screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.GameManager.Stop()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		}
		// Straight to the leaderboard, no game attached yet.
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(m.GameManager, m.HighScores, "", m.ScreenWidth, m.ScreenHeight)
		return m, func() tea.Msg { return ShowLeaderboardMsg{} }

	case SetupSubmitMsg:
		m.CurrentScreen = GameScreen
		m.GameManager.SetAutopilot(msg.Autopilot)
		m.GameManager.Reset()
		m.GameModel = NewGameModel(m.GameManager, m.HighScores, msg.Name, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
