package game

// CandidateMove is one legal non-reversing direction with every signal the
// decision policy scores on. Candidates are rebuilt from scratch each tick;
// the body changes every tick so nothing here is worth caching.
type CandidateMove struct {
	Dir            Direction
	NextHead       Cell
	Simulated      Body
	Grows          bool
	TailReachable  bool
	ReachableSpace int
	TowardFood     bool
	Looping        bool
	Score          int
}

// EvaluateMoves simulates each of the up to three non-reversing directions
// and scores the survivors.
//
// Legality: a growing move (onto food) must avoid every body segment, since
// growth does not vacate the tail; a plain move may enter the tail cell.
//
// Score = reachable space, plus a dominant bonus when the tail stays
// reachable, plus a small bonus for closing in on food, minus a penalty for
// revisiting a recorded state. The penalty can suppress a looping move but
// never drops a tail-safe move below a tail-unsafe one.
func EvaluateMoves(g Grid, body Body, food Cell, heading Direction, hist *History) []CandidateMove {
	currentFoodDist := getManhattanDistance(body.Head(), food)
	candidates := make([]CandidateMove, 0, 3)

	for _, dir := range directions {
		if dir.IsOpposite(heading) {
			continue
		}

		nextHead := body.Head().Step(dir)
		grows := nextHead == food

		if grows {
			if !g.InBounds(nextHead) || body.Occupies(nextHead, false) {
				continue
			}
		} else if !g.IsFree(nextHead, body, true) {
			continue
		}

		simulated := SimulateMove(body, nextHead, grows)
		cand := CandidateMove{
			Dir:            dir,
			NextHead:       nextHead,
			Simulated:      simulated,
			Grows:          grows,
			TailReachable:  TailReachable(g, simulated),
			ReachableSpace: ReachableCount(g, nextHead, simulated),
			TowardFood:     getManhattanDistance(nextHead, food) < currentFoodDist,
			Looping:        hist != nil && hist.Contains(Fingerprint(simulated, food)),
		}

		cand.Score = cand.ReachableSpace
		if cand.TailReachable {
			cand.Score += tailReachableBonus
		}
		if cand.TowardFood {
			cand.Score += towardFoodBonus
		}
		if cand.Looping {
			cand.Score -= loopPenalty
		}

		candidates = append(candidates, cand)
	}

	return candidates
}
