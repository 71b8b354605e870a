package game

// ReachableCount flood fills from start over free cells (tail excluded) and
// returns how many cells the fill touched, start included when free. Used as
// a fitness score after simulated moves and as an advisory enclosure signal;
// the authoritative safety veto remains the tail oracle.
func ReachableCount(g Grid, start Cell, body Body) int {
	return len(ReachableSet(g, start, body))
}

// ReachableSet returns every cell reachable from start through free space.
// Fill order does not matter, only membership.
func ReachableSet(g Grid, start Cell, body Body) map[Cell]struct{} {
	reached := make(map[Cell]struct{})
	if !g.IsFree(start, body, true) {
		return reached
	}

	visited := make([]bool, g.CellCount())
	visited[g.Index(start)] = true
	reached[start] = struct{}{}
	queue := []Cell{start}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, dir := range directions {
			next := curr.Step(dir)
			if !g.IsFree(next, body, true) {
				continue
			}
			if visited[g.Index(next)] {
				continue
			}
			visited[g.Index(next)] = true
			reached[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return reached
}
