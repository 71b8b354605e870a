package game

import "errors"

// AutoPilot implements the Strategy interface. Moves are chosen by a strict
// priority hierarchy; every branch that commits to food first proves, by
// exact search, that the tail stays reachable afterwards.
type AutoPilot struct {
	History *History
}

func NewAutoPilot() *AutoPilot {
	return &AutoPilot{History: NewHistory(HistoryCapacity)}
}

// Reset clears the per-session history. Called on game restart.
func (p *AutoPilot) Reset() {
	p.History.Reset()
}

// NextDirection decides one move. Priorities, first match wins:
//
//	P1: no legal candidate -> keep the current heading; the game loop will
//	    report the collision.
//	P2: a shortest path to food exists and its first step is legal -> take it
//	    when the body is too short to trap itself, or when walking the whole
//	    route (with growth at the end) leaves the tail reachable, or when at
//	    least the first step alone does.
//	P3: the recent history shows a loop or oscillation -> best tail-safe
//	    candidate that is not itself a revisit.
//	P4: follow the tail: the first step of the head-to-tail path if legal,
//	    else the tail-safe candidate that closes the gap to the tail.
//	P5: no tail-safe candidate exists -> highest score regardless.
//
// The history is appended to exactly once per decided tick; malformed calls
// record nothing.
func (p *AutoPilot) NextDirection(g Grid, body Body, food Cell, heading Direction) (Direction, Reason, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return heading, "", errors.New("autopilot: grid has non-positive dimensions")
	}
	if len(body) == 0 {
		return heading, "", errors.New("autopilot: empty body")
	}

	candidates := EvaluateMoves(g, body, food, heading, p.History)

	choose := func(dir Direction, reason Reason) (Direction, Reason, error) {
		p.History.RecordAndCheckLoop(Fingerprint(body, food))
		p.History.RecordHeading(dir)
		return dir, reason, nil
	}

	// P1: trapped.
	if len(candidates) == 0 {
		return choose(heading, ReasonTrapped)
	}

	head := body.Head()

	// P2: pursue food when provably safe.
	if foodPath := FoodPath(g, head, food, body); len(foodPath) > 0 {
		if cand := findCandidate(candidates, foodPath[0]); cand != nil {
			switch {
			case len(body) < shortBodyLength:
				return choose(cand.Dir, ReasonPursuingFood)
			case p.foodRouteSafe(g, body, foodPath):
				return choose(cand.Dir, ReasonPursuingFood)
			case cand.TailReachable:
				// Relaxed fallback: the full route was not provably safe but
				// this single step keeps the tail reachable.
				return choose(cand.Dir, ReasonPursuingFood)
			}
		}
	}

	// P3: break detected loops.
	looping := p.History.Contains(Fingerprint(body, food)) ||
		p.History.Oscillating(OscillationWindowSize)
	if looping {
		var best *CandidateMove
		for i := range candidates {
			cand := &candidates[i]
			if !cand.TailReachable || cand.Looping {
				continue
			}
			if best == nil || cand.Score > best.Score {
				best = cand
			}
		}
		if best != nil {
			return choose(best.Dir, ReasonBreakingLoop)
		}
	}

	// P4: retreat toward the tail.
	if dir, ok := p.tailChase(g, body, candidates); ok {
		return choose(dir, ReasonFollowingTail)
	}

	// P5: emergency, every candidate loses the tail. Take the best anyway.
	best := &candidates[0]
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > best.Score {
			best = &candidates[i]
		}
	}
	return choose(best.Dir, ReasonEmergency)
}

// tailChase picks among tail-safe candidates: the exact first step of the
// head-to-tail path when it is one of them, otherwise the candidate that
// strictly shrinks the Manhattan distance to the tail, ties broken by score
// and then by food progress.
func (p *AutoPilot) tailChase(g Grid, body Body, candidates []CandidateMove) (Direction, bool) {
	tailSafe := make([]*CandidateMove, 0, len(candidates))
	for i := range candidates {
		if candidates[i].TailReachable {
			tailSafe = append(tailSafe, &candidates[i])
		}
	}
	if len(tailSafe) == 0 {
		return Direction{}, false
	}

	tail := body.Tail()
	if tp := ShortestPath(g, body.Head(), tail, body); len(tp) > 0 {
		for _, cand := range tailSafe {
			if cand.NextHead == tp[0] {
				return cand.Dir, true
			}
		}
	}

	currentDist := getManhattanDistance(body.Head(), tail)
	best := tailSafe[0]
	for _, cand := range tailSafe[1:] {
		if betterTailCandidate(cand, best, tail, currentDist) {
			best = cand
		}
	}
	return best.Dir, true
}

func betterTailCandidate(a, b *CandidateMove, tail Cell, currentDist int) bool {
	aCloses := getManhattanDistance(a.NextHead, tail) < currentDist
	bCloses := getManhattanDistance(b.NextHead, tail) < currentDist
	if aCloses != bCloses {
		return aCloses
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.TowardFood && !b.TowardFood
}

// foodRouteSafe walks the body along the whole path to food, growing on the
// final step, and checks that every step stays legal against the moving body
// and that the tail is still reachable after the growth.
func (p *AutoPilot) foodRouteSafe(g Grid, body Body, path []Cell) bool {
	sim := body.Clone()
	for i, step := range path {
		grows := i == len(path)-1
		if grows {
			if !g.InBounds(step) || sim.Occupies(step, false) {
				return false
			}
		} else if !g.IsFree(step, sim, true) {
			return false
		}
		sim = SimulateMove(sim, step, grows)
	}
	return TailReachable(g, sim)
}

func findCandidate(candidates []CandidateMove, nextHead Cell) *CandidateMove {
	for i := range candidates {
		if candidates[i].NextHead == nextHead {
			return &candidates[i]
		}
	}
	return nil
}
