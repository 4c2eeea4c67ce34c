package env

import (
	"fmt"
	"math/rand"

	"github.com/ZachBeta/neural-rps/internal/domain/game"
	"github.com/ZachBeta/neural-rps/internal/domain/rl"
)

// DuelEnv is the two-player variant: both sides hold dealt hands, the
// acting side alternates each step, and exactly one card leaves play per
// step. The acting play is scored against the opposing side's most
// recent play; the opening step, with nothing to compare against, ties.
type DuelEnv struct {
	encoding rl.Encoding
	rng      *rand.Rand

	hands    [2]game.Hand
	lastPlay [2]game.Kind
	played   [2]bool
	acting   int
	done     bool
}

// NewDuelEnv creates a two-player environment in its reset state.
func NewDuelEnv(encoding rl.Encoding, rng *rand.Rand) *DuelEnv {
	e := &DuelEnv{encoding: encoding, rng: rng}
	e.Reset()
	return e
}

// Reset deals both hands, clears the play history, and hands the move to
// side 0.
func (e *DuelEnv) Reset() {
	e.hands[0] = game.NewHand()
	e.hands[1] = game.NewHand()
	e.lastPlay[0] = game.Rock
	e.lastPlay[1] = game.Rock
	e.played[0] = false
	e.played[1] = false
	e.acting = 0
	e.done = false
}

// Acting returns the index of the side to move.
func (e *DuelEnv) Acting() int {
	return e.acting
}

// State encodes the position from the acting side's perspective.
func (e *DuelEnv) State() []float64 {
	return encodeState(e.encoding, e.hands[e.acting], e.lastPlay[e.acting], e.lastPlay[1-e.acting])
}

// ValidActions returns the kind indices playable by the acting side.
func (e *DuelEnv) ValidActions() []int {
	kinds := e.hands[e.acting].Kinds()
	actions := make([]int, len(kinds))
	for i, k := range kinds {
		actions[i] = int(k)
	}
	return actions
}

// Done reports whether the full deal has been played out.
func (e *DuelEnv) Done() bool {
	return e.done
}

// Step plays one card for the acting side and passes the move. Total
// remaining cards across both hands drop by exactly one per step; the
// episode ends when the full deal is exhausted.
func (e *DuelEnv) Step(action int) (game.StepResult, error) {
	if e.done {
		return game.StepResult{Done: true, Fault: game.FaultTerminal},
			fmt.Errorf("step on finished episode")
	}

	hand := &e.hands[e.acting]
	if hand.Remaining() == 0 {
		e.done = true
		return game.StepResult{
			Reward: game.InvalidActionReward,
			Done:   true,
			Fault:  game.FaultNoLegalMoves,
		}, nil
	}

	kind := game.Kind(action)
	if !hand.Remove(kind) {
		e.done = true
		return game.StepResult{
			Reward: game.InvalidActionReward,
			Done:   true,
			Fault:  game.FaultInvalidAction,
		}, nil
	}

	opponent := 1 - e.acting
	var reward float64
	opp := e.lastPlay[opponent]
	if e.played[opponent] {
		reward = game.Outcome(kind, opp)
	}

	e.lastPlay[e.acting] = kind
	e.played[e.acting] = true
	e.done = e.hands[0].Remaining()+e.hands[1].Remaining() == 0
	e.acting = opponent

	return game.StepResult{
		Reward:   reward,
		Done:     e.done,
		Opponent: opp,
	}, nil
}
