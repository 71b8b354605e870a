package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/basilisk/internal/game"
	"github.com/Mshel/basilisk/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	host string = "0.0.0.0"
	port string = "6996"

	maxConnectionsPerIP = 2

	defaultScoreDBName = "basilisk.db"
)

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex

	// Shared across sessions; sqlite serializes writes for us.
	highScores *game.HighScoreService

	// Optional Lua strategy source loaded at startup. Each session gets its
	// own LuaStrategy since the fallback pilot keeps per-game history.
	scriptName   string
	scriptSource string
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

func incrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]++
}

func decrementIP(ip string) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
}

func getCount(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	return ipCounter[ip]
}

func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		currentCount := getCount(ip)

		if currentCount >= maxConnectionsPerIP {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", currentCount+1, "current_limit", maxConnectionsPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, maxConnectionsPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		incrementIP(ip)

		log.Info("Connection accepted", "ip", ip, "current_count", getCount(ip), "limit", maxConnectionsPerIP)
		next(s)
		decrementIP(ip)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", getCount(ip))
	}
}

func loadScriptedStrategy() {
	scriptPath := os.Getenv("BASILISK_STRATEGY_SCRIPT")
	if scriptPath == "" {
		return
	}
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Error("Could not read strategy script, running built-in pilot", "path", scriptPath, "error", err)
		return
	}
	scriptName = filepath.Base(scriptPath)
	scriptSource = string(source)
	log.Info("Loaded scripted strategy", "name", scriptName)
}

func main() {
	log.SetLevel(log.DebugLevel)

	sshPKeyPath := os.Getenv("BASILISK_PRIVATE_KEY_PATH")

	dbPath := os.Getenv("BASILISK_DB_PATH")
	if dbPath == "" {
		dbPath = defaultScoreDBName
	}
	var scoreErr error
	highScores, scoreErr = game.NewHighScoreService(dbPath)
	if scoreErr != nil {
		log.Fatal("Failed to open high score store", "path", dbPath, "error", scoreErr)
	}
	defer highScores.Close()

	loadScriptedStrategy()

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(host+":"+port),
		wish.WithHostKeyPath(sshPKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)

	if serverCreateErr != nil {
		log.Error("Failed to start ssh server", "error", serverCreateErr)
	}
	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", host, "port", port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer func() { cancel() }()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

func viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	gameManager, err := game.NewGameManager(game.DefaultMapColCount, game.DefaultMapRowCount)
	if err != nil {
		log.Error("Could not create game session", "error", err)
		wish.Fatalln(sshSession, "could not create game session:", err)
		return nil, nil
	}
	if scriptSource != "" {
		gameManager.Scripted = game.NewLuaStrategy(scriptName, scriptSource, game.NewAutoPilot())
	}
	go gameManager.StartGameLoop()

	controllerModel := ui.NewControllerModel(gameManager, highScores, pty.Window.Width, pty.Window.Height)

	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}
