package game

import "testing"

func TestLuaStrategyReturnsScriptedDirection(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	strategy := NewLuaStrategy("go-up", `
		function getNextDirection(state)
			return {Dx=0, Dy=-1}
		end
	`, nil)

	dir, reason, err := strategy.NextDirection(g, body, Cell{X: 8, Y: 8}, DirRight)
	if err != nil {
		t.Fatalf("scripted strategy failed: %v", err)
	}
	if dir != DirUp {
		t.Errorf("dir = %v, want up", dir)
	}
	if reason != ReasonScripted {
		t.Errorf("reason = %q, want %q", reason, ReasonScripted)
	}
}

func TestLuaStrategyReadsState(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	// Chase the food naively on the X axis.
	strategy := NewLuaStrategy("chase-x", `
		function getNextDirection(state)
			if state.food.X > state.head.X then
				return {Dx=1, Dy=0}
			end
			return {Dx=0, Dy=1}
		end
	`, nil)

	dir, _, err := strategy.NextDirection(g, body, Cell{X: 8, Y: 5}, DirRight)
	if err != nil {
		t.Fatalf("scripted strategy failed: %v", err)
	}
	if dir != DirRight {
		t.Errorf("dir = %v, want right toward the food", dir)
	}
}

func TestLuaStrategyIllegalMoveFallsBack(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	// The script reverses into the neck; the fallback pilot must decide.
	strategy := NewLuaStrategy("reverse", `
		function getNextDirection(state)
			return {Dx=-1, Dy=0}
		end
	`, NewAutoPilot())

	dir, reason, err := strategy.NextDirection(g, body, Cell{X: 8, Y: 5}, DirRight)
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if dir.IsOpposite(DirRight) {
		t.Error("illegal scripted reversal must not pass through")
	}
	if reason == ReasonScripted {
		t.Error("fallback decision must not be tagged as scripted")
	}
}

func TestLuaStrategyBrokenScriptErrorsWithoutFallback(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 5, Y: 5}, {X: 4, Y: 5}}

	broken := NewLuaStrategy("broken", `this is not lua`, nil)
	if _, _, err := broken.NextDirection(g, body, Cell{X: 8, Y: 8}, DirRight); err == nil {
		t.Error("broken script without fallback must error")
	}

	missing := NewLuaStrategy("missing", `x = 1`, nil)
	if _, _, err := missing.NextDirection(g, body, Cell{X: 8, Y: 8}, DirRight); err == nil {
		t.Error("script without getNextDirection must error")
	}
}
