package game

// TailReachable is the core safety invariant: as long as the head can reach
// the tail through free space, the snake can stall behind its own tail
// forever and can never be forced into a dead end.
//
// The check must run on the post-move body: grown by one if the move ate
// food, or shifted by one (old tail vacated) if it did not. Callers build
// that simulated body with SimulateMove.
func TailReachable(g Grid, body Body) bool {
	// A body this short cannot trap itself under unit moves.
	if len(body) < shortBodyLength {
		return true
	}
	return ShortestPath(g, body.Head(), body.Tail(), body) != nil
}

// SimulateMove returns the body as it would be after the head steps to
// nextHead. A growing move keeps the current tail; a plain move drops it.
func SimulateMove(body Body, nextHead Cell, grows bool) Body {
	simulated := make(Body, 0, len(body)+1)
	simulated = append(simulated, nextHead)
	if grows {
		simulated = append(simulated, body...)
	} else {
		simulated = append(simulated, body[:len(body)-1]...)
	}
	return simulated
}
