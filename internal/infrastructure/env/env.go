package env

import (
	"fmt"
	"math/rand"

	"github.com/ZachBeta/neural-rps/internal/domain/game"
	"github.com/ZachBeta/neural-rps/internal/domain/rl"
)

// Environment is the rollout surface the trainer drives. Step reports
// expected game conditions through StepResult.Fault; the returned error
// fires only on a precondition violation (stepping a finished episode).
type Environment interface {
	Reset()
	Step(action int) (game.StepResult, error)
	State() []float64
	ValidActions() []int
	Done() bool
}

// New builds the environment variant named by the config, drawing all
// randomness from rng.
func New(cfg rl.TrainConfig, rng *rand.Rand) Environment {
	if cfg.Opponent == rl.OpponentDealt {
		return NewDuelEnv(cfg.Encoding, rng)
	}
	return NewSoloEnv(cfg.Encoding, rng)
}

// SoloEnv is the single-agent variant: one dealt hand, and the opposing
// play is drawn uniformly from all three kinds each step.
type SoloEnv struct {
	encoding rl.Encoding
	rng      *rand.Rand

	hand    game.Hand
	lastOwn game.Kind
	lastOpp game.Kind
	done    bool
}

// NewSoloEnv creates a single-agent environment in its reset state.
func NewSoloEnv(encoding rl.Encoding, rng *rand.Rand) *SoloEnv {
	e := &SoloEnv{encoding: encoding, rng: rng}
	e.Reset()
	return e
}

// Reset deals a fresh hand and clears the play history.
func (e *SoloEnv) Reset() {
	e.hand = game.NewHand()
	e.lastOwn = game.Rock
	e.lastOpp = game.Rock
	e.done = false
}

// State encodes the current position. It is a pure function of the hand
// and play history.
func (e *SoloEnv) State() []float64 {
	return encodeState(e.encoding, e.hand, e.lastOwn, e.lastOpp)
}

// ValidActions returns the kind indices still playable from the hand.
func (e *SoloEnv) ValidActions() []int {
	kinds := e.hand.Kinds()
	actions := make([]int, len(kinds))
	for i, k := range kinds {
		actions[i] = int(k)
	}
	return actions
}

// Done reports whether the episode has ended.
func (e *SoloEnv) Done() bool {
	return e.done
}

// IsValidAction reports whether action is a legal kind index with at
// least one card remaining.
func (e *SoloEnv) IsValidAction(action int) bool {
	return e.hand.Has(game.Kind(action))
}

// Step plays one card. An illegal action terminates the episode with a
// fixed large penalty rather than being ignored.
func (e *SoloEnv) Step(action int) (game.StepResult, error) {
	if e.done {
		return game.StepResult{Done: true, Fault: game.FaultTerminal},
			fmt.Errorf("step on finished episode")
	}

	if !e.IsValidAction(action) {
		e.done = true
		return game.StepResult{
			Reward: game.InvalidActionReward,
			Done:   true,
			Fault:  game.FaultInvalidAction,
		}, nil
	}

	kind := game.Kind(action)
	e.hand.Remove(kind)
	e.lastOwn = kind

	opp := game.Kind(e.rng.Intn(game.NumKinds))
	e.lastOpp = opp

	e.done = e.hand.Remaining() == 0

	return game.StepResult{
		Reward:   game.Outcome(kind, opp),
		Done:     e.done,
		Opponent: opp,
	}, nil
}
