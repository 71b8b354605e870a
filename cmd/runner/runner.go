package main

import (
	"fmt"
	"os"

	"github.com/Mshel/basilisk/internal/game"
	"github.com/Mshel/basilisk/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Local terminal entry point, no SSH involved. Handy for development.
func main() {
	gameManager, err := game.NewGameManager(game.DefaultMapColCount, game.DefaultMapRowCount)
	if err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
	go gameManager.StartGameLoop()

	dbPath := os.Getenv("BASILISK_DB_PATH")
	if dbPath == "" {
		dbPath = "basilisk.db"
	}
	highScores, err := game.NewHighScoreService(dbPath)
	if err != nil {
		log.Error("Could not open high score store", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer highScores.Close()

	p := tea.NewProgram(ui.NewControllerModel(gameManager, highScores, 120, 40), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
