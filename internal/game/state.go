package game

// RoundStatus represents the lifecycle phase of a round
type RoundStatus string

const (
	StatusIdle     RoundStatus = "IDLE"
	StatusActive   RoundStatus = "ROUND_ACTIVE"
	StatusComplete RoundStatus = "ROUND_COMPLETE"
)

// Presenter events
const (
	EventRoundStarted  = "round_started"
	EventScore         = "score"
	EventTargetHit     = "target_hit"
	EventRoundComplete = "round_complete"
	EventRoundReset    = "round_reset"
	EventRoundAborted  = "round_aborted"
	EventState         = "state"
)
