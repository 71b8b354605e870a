package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/basilisk/internal/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const leaderboardPageSize = 10

// GameOverState holds the data and local state for rendering the game over screens.
type GameOverState struct {
	HighScores     *game.HighScoreService
	FinalLength    int
	FoodEaten      int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int

	scores []game.Score
}

// Styles for Game Over/Leaderboard
var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

func (g *GameOverState) loadScores() {
	scores, err := g.HighScores.GetHighScores(leaderboardPageSize, 0)
	if err != nil {
		log.Error("leaderboard load failed", "error", err)
		g.scores = nil
		return
	}
	g.scores = scores
}

// RenderGameOverScreen draws the death message and buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(2, 5).
		Align(lipgloss.Center).
		Width(g.ScreenWidth - 4)

	title := messageStyle.Render("💀 G A M E   O V E R 💀")

	stats := fmt.Sprintf("\nFinal Stats:\nSnake Length: %d\nFood Eaten: %d\n\nPress R to play again\n", g.FinalLength, g.FoodEaten)

	exitButton := gameOverButtonStyle.Render("EXIT (Enter)")
	leaderboardButton := gameOverButtonStyle.Render("LEADERBOARD")

	if g.SelectedButton == 0 {
		exitButton = selectedButtonStyle.Render("EXIT (Enter)")
	} else {
		leaderboardButton = selectedButtonStyle.Render("LEADERBOARD")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, exitButton, leaderboardButton)

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}

// RenderLeaderboard draws the persisted high score table.
func (g *GameOverState) RenderLeaderboard() string {
	var tableContent strings.Builder

	nameWidth := 15
	lengthWidth := 8
	foodWidth := 6
	pilotWidth := 7

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(3).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(lengthWidth).Render("Length"),
		leaderboardHeaderStyle.Width(foodWidth).Render("Food"),
		leaderboardHeaderStyle.Width(pilotWidth).Render("Pilot"),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range g.scores {
		pilot := "no"
		if score.Autopilot {
			pilot = "yes"
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leaderboardRowStyle.Width(3).Render(strconv.Itoa(i+1)),
			leaderboardRowStyle.Width(nameWidth).Render(score.PlayerName),
			leaderboardRowStyle.Width(lengthWidth).Render(strconv.Itoa(score.FinalLength)),
			leaderboardRowStyle.Width(foodWidth).Render(strconv.Itoa(score.FoodEaten)),
			leaderboardRowStyle.Width(pilotWidth).Render(pilot),
		)

		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	if len(g.scores) == 0 {
		tableContent.WriteString(leaderboardRowStyle.Render("No games recorded yet.") + "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 HIGH SCORES 👑")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to return.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		instruction,
	)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
