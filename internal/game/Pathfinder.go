package game

import "container/heap"

// ShortestPath runs a breadth-first search from start to goal, treating every
// body segment except the tail as a wall. The tail is excluded because it will
// have vacated by the time the head could reach it.
//
// The returned path runs from the step after start up to and including goal,
// so its length is the number of moves. A nil result means no path exists; a
// goal cell that is itself occupied is a legal no-path outcome, never an
// error. Ties between equal-length paths are broken by the package-wide
// neighbor order.
func ShortestPath(g Grid, start, goal Cell, body Body) []Cell {
	if !g.InBounds(start) {
		return nil
	}
	if !g.IsFree(goal, body, true) {
		return nil
	}
	if start == goal {
		return []Cell{}
	}

	visited := make([]bool, g.CellCount())
	prev := make([]int32, g.CellCount())
	for i := range prev {
		prev[i] = -1
	}

	startIdx := int32(g.Index(start))
	visited[startIdx] = true
	queue := []int32{startIdx}

	for len(queue) > 0 {
		currIdx := queue[0]
		queue = queue[1:]
		curr := g.cellAt(int(currIdx))

		for _, dir := range directions {
			next := curr.Step(dir)
			if !g.IsFree(next, body, true) {
				continue
			}
			nextIdx := int32(g.Index(next))
			if visited[nextIdx] {
				continue
			}
			visited[nextIdx] = true
			prev[nextIdx] = currIdx
			if next == goal {
				return g.reconstructPath(prev, startIdx, nextIdx)
			}
			queue = append(queue, nextIdx)
		}
	}

	return nil
}

// FoodPath is the goal-directed variant of ShortestPath used only when
// chasing food. A* with a Manhattan heuristic explores fewer cells but the
// heuristic is admissible on a unit-cost grid, so the returned path length
// always matches the BFS result. It must never substitute for the tail
// oracle, which only needs path existence.
func FoodPath(g Grid, start, goal Cell, body Body) []Cell {
	if !g.InBounds(start) {
		return nil
	}
	if !g.IsFree(goal, body, true) {
		return nil
	}
	if start == goal {
		return []Cell{}
	}

	const unvisited = int32(-1)
	dist := make([]int32, g.CellCount())
	prev := make([]int32, g.CellCount())
	for i := range dist {
		dist[i] = unvisited
		prev[i] = -1
	}

	startIdx := int32(g.Index(start))
	dist[startIdx] = 0

	open := &cellHeap{}
	heap.Init(open)
	heap.Push(open, cellNode{
		idx:      startIdx,
		priority: int32(getManhattanDistance(start, goal)),
	})

	for open.Len() > 0 {
		node := heap.Pop(open).(cellNode)
		curr := g.cellAt(int(node.idx))
		if curr == goal {
			return g.reconstructPath(prev, startIdx, node.idx)
		}

		for _, dir := range directions {
			next := curr.Step(dir)
			if !g.IsFree(next, body, true) {
				continue
			}
			nextIdx := int32(g.Index(next))
			nextDist := dist[node.idx] + 1
			if dist[nextIdx] != unvisited && dist[nextIdx] <= nextDist {
				continue
			}
			dist[nextIdx] = nextDist
			prev[nextIdx] = node.idx
			heap.Push(open, cellNode{
				idx:      nextIdx,
				priority: nextDist + int32(getManhattanDistance(next, goal)),
			})
		}
	}

	return nil
}

func (g Grid) cellAt(idx int) Cell {
	return Cell{X: idx % g.Width, Y: idx / g.Width}
}

// reconstructPath walks the predecessor arena back from goal to start and
// reverses the result. The start cell itself is not included.
func (g Grid) reconstructPath(prev []int32, startIdx, goalIdx int32) []Cell {
	var path []Cell
	for idx := goalIdx; idx != startIdx; idx = prev[idx] {
		path = append(path, g.cellAt(int(idx)))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// cellNode is an A* open-list entry. order keeps pops stable so equal-cost
// frontiers expand in insertion order.
type cellNode struct {
	idx      int32
	priority int32
	order    int32
}

type cellHeap struct {
	nodes  []cellNode
	pushed int32
}

func (h *cellHeap) Len() int { return len(h.nodes) }

func (h *cellHeap) Less(i, j int) bool {
	if h.nodes[i].priority != h.nodes[j].priority {
		return h.nodes[i].priority < h.nodes[j].priority
	}
	return h.nodes[i].order < h.nodes[j].order
}

func (h *cellHeap) Swap(i, j int) { h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i] }

func (h *cellHeap) Push(x any) {
	node := x.(cellNode)
	node.order = h.pushed
	h.pushed++
	h.nodes = append(h.nodes, node)
}

func (h *cellHeap) Pop() any {
	old := h.nodes
	n := len(old)
	node := old[n-1]
	h.nodes = old[:n-1]
	return node
}
