package game

// Reason is a short diagnostic tag explaining a strategy's choice. Purely
// observational; nothing branches on it.
type Reason string

const (
	ReasonPursuingFood  Reason = "pursuing food"
	ReasonFollowingTail Reason = "following tail"
	ReasonBreakingLoop  Reason = "breaking loop"
	ReasonEmergency     Reason = "emergency"
	ReasonTrapped       Reason = "trapped"
	ReasonScripted      Reason = "scripted"
)

// Strategy picks the snake's next heading once per tick. Implementations
// receive an immutable snapshot of the board and must return a legal,
// non-reversing direction whenever one exists. An error means the call was
// malformed (caller bug), not a game condition.
type Strategy interface {
	NextDirection(g Grid, body Body, food Cell, heading Direction) (Direction, Reason, error)
}
