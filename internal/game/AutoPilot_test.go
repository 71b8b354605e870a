package game

import (
	"math/rand"
	"testing"
)

// stepPilot advances one tick through the pilot, failing the test on any
// illegal or reversing move, and returns the new body and whether food was
// eaten.
func stepPilot(t *testing.T, g Grid, pilot *AutoPilot, body Body, food Cell, heading Direction) (Body, Direction, bool) {
	t.Helper()

	dir, reason, err := pilot.NextDirection(g, body.Clone(), food, heading)
	if err != nil {
		t.Fatalf("pilot failed: %v", err)
	}
	if dir.IsOpposite(heading) {
		t.Fatalf("pilot reversed the heading %v (reason %q)", heading, reason)
	}

	nextHead := body.Head().Step(dir)
	grows := nextHead == food
	if !g.InBounds(nextHead) || body.Occupies(nextHead, !grows) {
		t.Fatalf("pilot chose illegal move %v to %v (reason %q, body %v)",
			dir, nextHead, reason, body)
	}

	return SimulateMove(body, nextHead, grows), dir, grows
}

func TestAutoPilotReachesNearbyFood(t *testing.T) {
	// Scenario: short snake on an open board, food three cells to the right.
	g, _ := NewGrid(20, 20)
	pilot := NewAutoPilot()
	body := Body{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	food := Cell{X: 8, Y: 5}
	heading := DirRight

	for tick := 0; tick < 20; tick++ {
		var ate bool
		body, heading, ate = stepPilot(t, g, pilot, body, food, heading)
		if ate {
			t.Logf("food reached after %d ticks", tick+1)
			return
		}
	}
	t.Fatalf("food not reached within 20 ticks, head at %v", body.Head())
}

func TestAutoPilotTakesTheTailExit(t *testing.T) {
	// Scenario: the head sits at the mouth of a chamber holding the food.
	// Entering is fatal; the only safe move is out over the vacating tail.
	g, body, food, heading := chamberBoard()
	pilot := NewAutoPilot()

	dir, reason, err := pilot.NextDirection(g, body, food, heading)
	if err != nil {
		t.Fatalf("pilot failed: %v", err)
	}
	if dir != DirUp {
		t.Errorf("pilot chose %v (reason %q), want up toward the tail exit", dir, reason)
	}
	if reason != ReasonFollowingTail {
		t.Errorf("reason = %q, want %q", reason, ReasonFollowingTail)
	}
}

func TestAutoPilotDetoursToFoodBehind(t *testing.T) {
	// Scenario: food directly behind the snake. Reversing is illegal, so the
	// route has to hook around the body.
	g, _ := NewGrid(20, 20)
	pilot := NewAutoPilot()
	body := Body{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	food := Cell{X: 7, Y: 10}
	heading := DirRight

	first, reason, err := pilot.NextDirection(g, body.Clone(), food, heading)
	if err != nil {
		t.Fatalf("pilot failed: %v", err)
	}
	if first == DirLeft {
		t.Fatalf("pilot reversed into its own neck (reason %q)", reason)
	}

	for tick := 0; tick < 15; tick++ {
		var ate bool
		body, heading, ate = stepPilot(t, g, pilot, body, food, heading)
		if ate {
			return
		}
	}
	t.Fatalf("food behind the snake not reached within 15 ticks, head at %v", body.Head())
}

func TestAutoPilotTrappedKeepsHeading(t *testing.T) {
	g, _ := NewGrid(10, 10)
	// Head boxed into the corner with no legal move left.
	body := Body{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	pilot := NewAutoPilot()

	dir, reason, err := pilot.NextDirection(g, body, Cell{X: 5, Y: 5}, DirUp)
	if err != nil {
		t.Fatalf("pilot failed: %v", err)
	}
	if dir != DirUp {
		t.Errorf("trapped pilot must keep its heading, got %v", dir)
	}
	if reason != ReasonTrapped {
		t.Errorf("reason = %q, want %q", reason, ReasonTrapped)
	}
}

func TestAutoPilotBreaksLoops(t *testing.T) {
	g, _ := NewGrid(10, 10)
	// Food on a body segment: a legal input with no path, so food pursuit
	// yields and the revisited state triggers the loop breaker.
	body := Body{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}, {X: 6, Y: 7}}
	food := Cell{X: 5, Y: 6}
	pilot := NewAutoPilot()
	pilot.History.RecordAndCheckLoop(Fingerprint(body, food))

	dir, reason, err := pilot.NextDirection(g, body.Clone(), food, DirUp)
	if err != nil {
		t.Fatalf("pilot failed: %v", err)
	}
	if reason != ReasonBreakingLoop {
		t.Errorf("reason = %q, want %q", reason, ReasonBreakingLoop)
	}
	nextHead := body.Head().Step(dir)
	if !g.IsFree(nextHead, body, true) {
		t.Errorf("loop-breaking move %v is illegal", dir)
	}
}

func TestAutoPilotRejectsMalformedInput(t *testing.T) {
	g, _ := NewGrid(10, 10)
	pilot := NewAutoPilot()

	if _, _, err := pilot.NextDirection(g, Body{}, Cell{X: 1, Y: 1}, DirRight); err == nil {
		t.Error("empty body must be rejected")
	}
	if _, _, err := pilot.NextDirection(Grid{}, Body{{X: 0, Y: 0}}, Cell{X: 1, Y: 1}, DirRight); err == nil {
		t.Error("zero-dimension grid must be rejected")
	}
	// A rejected call records nothing.
	if pilot.History.Contains(Fingerprint(Body{}, Cell{X: 1, Y: 1})) {
		t.Error("malformed call must not record a fingerprint")
	}
	if len(pilot.History.headings) != 0 {
		t.Error("malformed call must not record a heading")
	}
}

func TestAutoPilotSoak(t *testing.T) {
	// 1,500 ticks on a 20x20 board with food respawned on every meal. The
	// pilot must never make an illegal or reversing move and must keep
	// eating.
	g, _ := NewGrid(20, 20)
	pilot := NewAutoPilot()
	rng := rand.New(rand.NewSource(7))

	body := Body{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	heading := DirRight

	spawnFood := func() (Cell, bool) {
		free := make([]Cell, 0, g.CellCount())
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := Cell{X: x, Y: y}
				if !body.Occupies(c, false) {
					free = append(free, c)
				}
			}
		}
		if len(free) == 0 {
			return Cell{}, false
		}
		return free[rng.Intn(len(free))], true
	}

	food, _ := spawnFood()
	eaten := 0
	for tick := 0; tick < 1500; tick++ {
		var ate bool
		body, heading, ate = stepPilot(t, g, pilot, body, food, heading)
		if ate {
			eaten++
			var ok bool
			if food, ok = spawnFood(); !ok {
				t.Logf("board filled after %d ticks", tick+1)
				break
			}
		}
	}

	if eaten < 2 {
		t.Errorf("pilot ate %d food in 1500 ticks, want at least 2", eaten)
	}
	t.Logf("soak finished: length %d, %d food eaten", len(body), eaten)
}
