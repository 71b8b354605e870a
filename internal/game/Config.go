package game

import "time"

const (
	GameTickDuration = 100 * time.Millisecond

	DefaultMapColCount = 40
	DefaultMapRowCount = 20

	// History sizing. Fingerprints cover roughly the last few hundred ticks;
	// the heading window only needs to catch short back-and-forth stutters.
	HistoryCapacity       = 256
	HeadingHistoryLength  = 16
	OscillationWindowSize = 8

	// Scoring weights. Only the ordering is load bearing: the tail bonus must
	// dominate every other term combined, the loop penalty may suppress but
	// never flip a tail-safe move below a tail-unsafe one, and food progress
	// is a small tiebreak on top of reachable space.
	tailReachableBonus = 1_000_000
	loopPenalty        = 400_000
	towardFoodBonus    = 250

	// Bodies shorter than this cannot trap themselves under unit moves, so
	// the pilot chases food without simulating the whole route first.
	shortBodyLength = 3
)
