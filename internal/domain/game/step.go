package game

// Fault identifies why a step could not proceed normally. Expected game
// conditions are carried as values so callers can branch on them instead
// of recovering from panics.
type Fault int

const (
	// FaultNone means the step completed normally.
	FaultNone Fault = iota
	// FaultInvalidAction means the action index was out of range or that
	// kind was no longer in the acting hand.
	FaultInvalidAction
	// FaultNoLegalMoves means the acting side had no card left to play.
	FaultNoLegalMoves
	// FaultTerminal means Step was called after the episode ended.
	FaultTerminal
)

// String returns the fault name.
func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultInvalidAction:
		return "invalid_action"
	case FaultNoLegalMoves:
		return "no_legal_moves"
	case FaultTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// InvalidActionReward is the penalty for playing an illegal action. The
// episode terminates immediately; invalid moves are never silently
// ignored, the agent is meant to learn they are catastrophic.
const InvalidActionReward = -5.0

// StepResult is the outcome of a single environment step.
type StepResult struct {
	// Reward is the immediate scalar reward.
	Reward float64

	// Done reports whether the episode ended on this step.
	Done bool

	// Opponent is the kind the opposing side played. Only meaningful
	// when Fault is FaultNone.
	Opponent Kind

	// Fault explains an abnormal step; FaultNone on a normal one.
	Fault Fault
}
