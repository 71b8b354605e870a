package game

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LuaStrategy runs a user-supplied Lua script as the per-tick strategy. The
// script must define
//
//	function getNextDirection(state)
//	    return {Dx=1, Dy=0}
//	end
//
// where state carries head, food, heading, body and the board dimensions.
// Scripts are untrusted: a broken script or an illegal return never kills the
// snake, the configured fallback strategy decides instead.
type LuaStrategy struct {
	Name     string
	Source   string
	Fallback Strategy
}

func NewLuaStrategy(name, source string, fallback Strategy) *LuaStrategy {
	return &LuaStrategy{Name: name, Source: source, Fallback: fallback}
}

// Reset clears the fallback's per-session history when the game restarts.
// The script itself is stateless, a fresh lua state runs every tick.
func (s *LuaStrategy) Reset() {
	if r, ok := s.Fallback.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (s *LuaStrategy) NextDirection(g Grid, body Body, food Cell, heading Direction) (Direction, Reason, error) {
	dir, err := s.runScript(g, body, food, heading)
	if err == nil && s.legal(g, body, food, heading, dir) {
		return dir, ReasonScripted, nil
	}

	if s.Fallback != nil {
		return s.Fallback.NextDirection(g, body, food, heading)
	}
	if err == nil {
		err = fmt.Errorf("lua strategy %q returned illegal direction %v", s.Name, dir)
	}
	return heading, "", err
}

func (s *LuaStrategy) runScript(g Grid, body Body, food Cell, heading Direction) (Direction, error) {
	luaState := lua.NewState()
	defer luaState.Close()

	if err := luaState.DoString(s.Source); err != nil {
		return Direction{}, fmt.Errorf("could not parse lua strategy definition: %w", err)
	}

	fn := luaState.GetGlobal("getNextDirection")
	if fn.Type() != lua.LTFunction {
		return Direction{}, errors.New("lua strategy does not define getNextDirection")
	}

	luaState.Push(fn)
	luaState.Push(buildStateTable(luaState, g, body, food, heading))
	if err := luaState.PCall(1, 1, nil); err != nil {
		return Direction{}, fmt.Errorf("could not execute lua strategy definition: %w", err)
	}

	luaReturn := luaState.Get(-1)
	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return Direction{}, fmt.Errorf("lua return value was type %s, expected table", luaReturn.Type())
	}

	dir := convertLuaDirectionTableToGoStruct(luaTable)
	luaState.Pop(1)
	return dir, nil
}

// legal mirrors the evaluator's candidate filter: cardinal unit step, no
// reversal, resulting cell free (tail kept when the move eats food).
func (s *LuaStrategy) legal(g Grid, body Body, food Cell, heading Direction, dir Direction) bool {
	unit := (dir.Dx == 0) != (dir.Dy == 0) &&
		dir.Dx >= -1 && dir.Dx <= 1 && dir.Dy >= -1 && dir.Dy <= 1
	if !unit || dir.IsOpposite(heading) {
		return false
	}
	nextHead := body.Head().Step(dir)
	grows := nextHead == food
	return g.InBounds(nextHead) && !body.Occupies(nextHead, !grows)
}

func buildStateTable(luaState *lua.LState, g Grid, body Body, food Cell, heading Direction) *lua.LTable {
	cellTable := func(c Cell) *lua.LTable {
		t := luaState.NewTable()
		t.RawSetString("X", lua.LNumber(c.X))
		t.RawSetString("Y", lua.LNumber(c.Y))
		return t
	}

	state := luaState.NewTable()
	state.RawSetString("width", lua.LNumber(g.Width))
	state.RawSetString("height", lua.LNumber(g.Height))
	state.RawSetString("head", cellTable(body.Head()))
	state.RawSetString("food", cellTable(food))

	headingTable := luaState.NewTable()
	headingTable.RawSetString("Dx", lua.LNumber(heading.Dx))
	headingTable.RawSetString("Dy", lua.LNumber(heading.Dy))
	state.RawSetString("heading", headingTable)

	bodyTable := luaState.NewTable()
	for i, c := range body {
		bodyTable.RawSetInt(i+1, cellTable(c))
	}
	state.RawSetString("body", bodyTable)

	return state
}

func convertLuaDirectionTableToGoStruct(luaTbl *lua.LTable) Direction {
	result := Direction{}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}
		switch lua.LVAsString(key) {
		case "Dy":
			result.Dy = int(lua.LVAsNumber(value))
		case "Dx":
			result.Dx = int(lua.LVAsNumber(value))
		}
	})
	return result
}
