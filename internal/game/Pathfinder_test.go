package game

import "testing"

// bruteDistance computes graph distance by label-correcting relaxation, an
// intentionally different algorithm than the BFS under test.
func bruteDistance(g Grid, start, goal Cell, body Body) int {
	const inf = 1 << 30
	dist := make([]int, g.CellCount())
	for i := range dist {
		dist[i] = inf
	}
	dist[g.Index(start)] = 0

	for changed := true; changed; {
		changed = false
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := Cell{X: x, Y: y}
				if dist[g.Index(c)] == inf {
					continue
				}
				for _, dir := range directions {
					n := c.Step(dir)
					if !g.IsFree(n, body, true) {
						continue
					}
					if dist[g.Index(c)]+1 < dist[g.Index(n)] {
						dist[g.Index(n)] = dist[g.Index(c)] + 1
						changed = true
					}
				}
			}
		}
	}

	if dist[g.Index(goal)] == inf {
		return -1
	}
	return dist[g.Index(goal)]
}

func assertValidPath(t *testing.T, g Grid, start, goal Cell, body Body, path []Cell) {
	t.Helper()
	prev := start
	for i, c := range path {
		if getManhattanDistance(prev, c) != 1 {
			t.Fatalf("path step %d: %v not adjacent to %v", i, c, prev)
		}
		if !g.IsFree(c, body, true) {
			t.Fatalf("path step %d: %v not free", i, c)
		}
		prev = c
	}
	if len(path) > 0 && path[len(path)-1] != goal {
		t.Fatalf("path ends at %v, want %v", path[len(path)-1], goal)
	}
}

func TestShortestPathOpenGrid(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 0, Y: 0}}

	path := ShortestPath(g, Cell{X: 0, Y: 0}, Cell{X: 4, Y: 3}, body)
	if path == nil {
		t.Fatal("expected a path on an open grid")
	}
	assertValidPath(t, g, Cell{X: 0, Y: 0}, Cell{X: 4, Y: 3}, body, path)
	if len(path) != 7 {
		t.Errorf("path length = %d, want 7 (Manhattan distance)", len(path))
	}
}

func TestShortestPathOptimality(t *testing.T) {
	g, _ := NewGrid(12, 9)
	// A wall with a single gap forces a detour.
	body := Body{
		{X: 6, Y: 0}, {X: 6, Y: 1}, {X: 6, Y: 2}, {X: 6, Y: 3},
		{X: 6, Y: 5}, {X: 6, Y: 6}, {X: 6, Y: 7}, {X: 6, Y: 8},
	}
	start := Cell{X: 2, Y: 1}
	goal := Cell{X: 10, Y: 7}

	path := ShortestPath(g, start, goal, body)
	if path == nil {
		t.Fatal("expected a path through the gap")
	}
	assertValidPath(t, g, start, goal, body, path)

	want := bruteDistance(g, start, goal, body)
	if len(path) != want {
		t.Errorf("BFS path length = %d, brute-force distance = %d", len(path), want)
	}
}

func TestShortestPathNoPath(t *testing.T) {
	g, _ := NewGrid(10, 10)
	// Goal sealed in the corner. A long tail keeps the tail exclusion from
	// opening a hole in the wall.
	body := Body{
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0},
		{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0},
	}
	if path := ShortestPath(g, Cell{X: 5, Y: 5}, Cell{X: 0, Y: 0}, body); path != nil {
		t.Errorf("expected no path to the sealed corner, got %v", path)
	}
}

func TestShortestPathGoalOccupied(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 4, Y: 4}, {X: 4, Y: 5}, {X: 4, Y: 6}}

	if path := ShortestPath(g, Cell{X: 0, Y: 0}, Cell{X: 4, Y: 5}, body); path != nil {
		t.Errorf("goal on a body segment must be a no-path outcome, got %v", path)
	}
	// The tail cell is a legal destination.
	if path := ShortestPath(g, Cell{X: 0, Y: 0}, Cell{X: 4, Y: 6}, body); path == nil {
		t.Error("tail cell should be reachable")
	}
}

func TestShortestPathTieBreakOrder(t *testing.T) {
	g, _ := NewGrid(10, 10)
	body := Body{{X: 9, Y: 9}}

	// Two equal-length routes from (2,2) to (3,3). The fixed visitation
	// order (up, down, left, right) makes down win the first step.
	path := ShortestPath(g, Cell{X: 2, Y: 2}, Cell{X: 3, Y: 3}, body)
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2", len(path))
	}
	if path[0] != (Cell{X: 2, Y: 3}) {
		t.Errorf("tie-break first step = %v, want (2,3) (down before right)", path[0])
	}
}

func TestFoodPathMatchesShortestPathLength(t *testing.T) {
	g, _ := NewGrid(14, 14)
	scenarios := []struct {
		name  string
		body  Body
		start Cell
		goal  Cell
	}{
		{
			name:  "open grid",
			body:  Body{{X: 0, Y: 13}},
			start: Cell{X: 1, Y: 1},
			goal:  Cell{X: 12, Y: 10},
		},
		{
			name: "around a wall",
			body: Body{
				{X: 7, Y: 2}, {X: 7, Y: 3}, {X: 7, Y: 4}, {X: 7, Y: 5},
				{X: 7, Y: 6}, {X: 7, Y: 7}, {X: 7, Y: 8}, {X: 7, Y: 9},
			},
			start: Cell{X: 3, Y: 5},
			goal:  Cell{X: 11, Y: 5},
		},
		{
			name: "sealed goal",
			body: Body{
				{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
				{X: 0, Y: 2}, {X: 0, Y: 3}, {X: 1, Y: 3},
			},
			start: Cell{X: 8, Y: 8},
			goal:  Cell{X: 0, Y: 0},
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			bfs := ShortestPath(g, sc.start, sc.goal, sc.body)
			astar := FoodPath(g, sc.start, sc.goal, sc.body)

			if (bfs == nil) != (astar == nil) {
				t.Fatalf("existence mismatch: bfs=%v astar=%v", bfs, astar)
			}
			if bfs == nil {
				return
			}
			if len(bfs) != len(astar) {
				t.Errorf("length mismatch: bfs=%d astar=%d", len(bfs), len(astar))
			}
			assertValidPath(t, g, sc.start, sc.goal, sc.body, astar)
		})
	}
}
