package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type GameTickMsg struct{}

type GameOverMsg struct {
	FinalLength int
	FoodEaten   int
	Autopilot   bool
}

// GameManager owns one game session: the board, the snake, the food and the
// tick loop. The autopilot only ever sees snapshots; all mutation happens
// here, one tick at a time. The UI runs on its own goroutine, so every field
// below is guarded by mu: views read through Snapshot, control changes go
// through SetAutopilot/ToggleAutopilot/Reset/Stop.
type GameManager struct {
	mu sync.Mutex

	Grid      Grid
	Body      Body
	Food      Cell
	Heading   Direction
	FoodEaten int
	TickCount int

	AutopilotOn bool
	LastReason  Reason
	Pilot       *AutoPilot
	// Scripted overrides the built-in pilot when a Lua strategy is loaded.
	Scripted Strategy

	DirectionChannel chan Direction
	UpdateChannel    chan tea.Msg
	IsRunning        bool
	GameOver         bool

	rng *rand.Rand
}

func NewGameManager(width, height int) (*GameManager, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	if width < 5 || height < 5 {
		return nil, fmt.Errorf("board %dx%d too small to play on", width, height)
	}

	gm := &GameManager{
		Grid:             grid,
		Pilot:            NewAutoPilot(),
		AutopilotOn:      true,
		DirectionChannel: make(chan Direction, 10),
		UpdateChannel:    make(chan tea.Msg, 16),
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	gm.Reset()
	return gm, nil
}

// Reset restores the starting position and clears every strategy's history,
// the scripted fallback's included. The session keeps its channels, so a
// running UI survives a restart.
func (gm *GameManager) Reset() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	cx, cy := gm.Grid.Width/2, gm.Grid.Height/2
	gm.Body = Body{
		{X: cx, Y: cy},
		{X: cx - 1, Y: cy},
		{X: cx - 2, Y: cy},
	}
	gm.Heading = DirRight
	gm.FoodEaten = 0
	gm.TickCount = 0
	gm.GameOver = false
	gm.LastReason = ""
	gm.Pilot.Reset()
	if r, ok := gm.Scripted.(interface{ Reset() }); ok {
		r.Reset()
	}
	gm.spawnFood()
}

func (gm *GameManager) StartGameLoop() {
	gm.mu.Lock()
	if gm.IsRunning {
		gm.mu.Unlock()
		return
	}
	gm.IsRunning = true
	gm.mu.Unlock()
	log.Debug("game loop started", "board", fmt.Sprintf("%dx%d", gm.Grid.Width, gm.Grid.Height))

	ticker := time.NewTicker(GameTickDuration)
	defer ticker.Stop()

	for gm.running() {
		select {
		case <-ticker.C:
			gm.processGameTick()
		case dir := <-gm.DirectionChannel:
			gm.UpdateDirection(dir)
		}
	}
	log.Debug("game loop stopped")
}

func (gm *GameManager) running() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.IsRunning
}

func (gm *GameManager) Stop() {
	gm.mu.Lock()
	gm.IsRunning = false
	gm.mu.Unlock()
}

// SetAutopilot hands control to the pilot or takes it away. Manual steering
// calls this with false before queueing its direction.
func (gm *GameManager) SetAutopilot(on bool) {
	gm.mu.Lock()
	gm.AutopilotOn = on
	gm.mu.Unlock()
}

func (gm *GameManager) ToggleAutopilot() {
	gm.mu.Lock()
	gm.AutopilotOn = !gm.AutopilotOn
	gm.mu.Unlock()
}

// UpdateDirection applies manual steering. Reversing into the neck is always
// fatal, so 180-degree turns are dropped here just like in the pilot.
func (gm *GameManager) UpdateDirection(dir Direction) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	if dir.IsOpposite(gm.Heading) {
		return
	}
	gm.Heading = dir
}

// Snapshot is a consistent copy of the state a view renders from. Views must
// never read the live fields, which mutate on the loop goroutine.
type Snapshot struct {
	Grid        Grid
	Body        Body
	Food        Cell
	Heading     Direction
	FoodEaten   int
	TickCount   int
	AutopilotOn bool
	LastReason  Reason
	GameOver    bool
}

func (gm *GameManager) Snapshot() Snapshot {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return Snapshot{
		Grid:        gm.Grid,
		Body:        gm.Body.Clone(),
		Food:        gm.Food,
		Heading:     gm.Heading,
		FoodEaten:   gm.FoodEaten,
		TickCount:   gm.TickCount,
		AutopilotOn: gm.AutopilotOn,
		LastReason:  gm.LastReason,
		GameOver:    gm.GameOver,
	}
}

// processGameTick advances the game by one move: ask the active strategy (or
// keep the manual heading), step the head, handle food and growth, detect
// terminal collision.
func (gm *GameManager) processGameTick() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.GameOver {
		return
	}

	dir := gm.Heading
	if strategy := gm.activeStrategy(); strategy != nil {
		next, reason, err := strategy.NextDirection(gm.Grid, gm.Body.Clone(), gm.Food, gm.Heading)
		if err != nil {
			log.Error("strategy failed, keeping heading", "error", err)
		} else {
			dir = next
			gm.LastReason = reason
		}
	}

	nextHead := gm.Body.Head().Step(dir)
	grows := nextHead == gm.Food

	legal := gm.Grid.InBounds(nextHead) && !gm.Body.Occupies(nextHead, !grows)
	if !legal {
		gm.GameOver = true
		gm.send(GameOverMsg{FinalLength: len(gm.Body), FoodEaten: gm.FoodEaten, Autopilot: gm.AutopilotOn})
		return
	}

	gm.Body = SimulateMove(gm.Body, nextHead, grows)
	gm.Heading = dir
	gm.TickCount++

	if grows {
		gm.FoodEaten++
		if !gm.spawnFood() {
			// Board full, nothing left to eat.
			gm.GameOver = true
			gm.send(GameOverMsg{FinalLength: len(gm.Body), FoodEaten: gm.FoodEaten, Autopilot: gm.AutopilotOn})
			return
		}
	}

	gm.send(GameTickMsg{})
}

func (gm *GameManager) activeStrategy() Strategy {
	if !gm.AutopilotOn {
		return nil
	}
	if gm.Scripted != nil {
		return gm.Scripted
	}
	return gm.Pilot
}

// spawnFood places food on a uniformly random free cell. By contract it never
// lands on the body; the pilot still re-validates defensively. Returns false
// when no free cell remains.
func (gm *GameManager) spawnFood() bool {
	free := make([]Cell, 0, gm.Grid.CellCount()-len(gm.Body))
	for y := 0; y < gm.Grid.Height; y++ {
		for x := 0; x < gm.Grid.Width; x++ {
			c := Cell{X: x, Y: y}
			if !gm.Body.Occupies(c, false) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return false
	}
	gm.Food = free[gm.rng.Intn(len(free))]
	return true
}

func (gm *GameManager) send(msg tea.Msg) {
	select {
	case gm.UpdateChannel <- msg:
	default:
		// UI not draining; drop rather than stall the tick.
	}
}
