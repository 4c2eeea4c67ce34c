// Package advisor provides model-backed move selection for the board game.
package advisor

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ZachBeta/neural-rps/internal/domain/game"
	"github.com/ZachBeta/neural-rps/internal/infrastructure/policy"
)

// HiddenSize is the hidden-layer width of the advisor model.
const HiddenSize = 16

// Advisor picks a (card, position) move for a serialized board state,
// using a trained network when one is available and a uniform-random
// legal move otherwise.
type Advisor struct {
	log *logrus.Logger
	rng *rand.Rand
}

// New creates an advisor drawing fallback randomness from rng.
func New(log *logrus.Logger, rng *rand.Rand) *Advisor {
	return &Advisor{log: log, rng: rng}
}

// ChooseMove parses stateStr and selects a legal move. With an empty
// modelPath the choice is uniform-random over the legal moves. A model
// that fails to load is logged and degrades to the same random choice;
// the fallback is deliberate, a broken model file must not take the
// caller down with it.
func (a *Advisor) ChooseMove(modelPath, stateStr string) (game.Move, error) {
	state, err := game.ParseBoardState(stateStr)
	if err != nil {
		return game.Move{}, fmt.Errorf("error parsing game state: %w", err)
	}

	moves := state.ValidMoves()
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("no valid moves available")
	}

	if modelPath == "" {
		return moves[a.rng.Intn(len(moves))], nil
	}

	move, err := a.bestMove(modelPath, state, moves)
	if err != nil {
		a.log.WithError(err).Warn("model unavailable, falling back to random move")
		return moves[a.rng.Intn(len(moves))], nil
	}
	return move, nil
}

// bestMove scores the legal moves with the loaded network and returns
// the highest-probability placement.
func (a *Advisor) bestMove(modelPath string, state game.BoardState, moves []game.Move) (game.Move, error) {
	if len(moves) == 1 {
		return moves[0], nil
	}

	network := policy.NewNetwork(game.BoardInputSize, HiddenSize, game.BoardSize, a.rng)
	if err := network.LoadWeights(modelPath); err != nil {
		return game.Move{}, fmt.Errorf("failed to load model: %w", err)
	}

	probs, err := network.Forward(state.Features())
	if err != nil {
		return game.Move{}, err
	}

	best := moves[0]
	bestScore := -1.0
	for _, move := range moves {
		if score := probs[move.Position]; score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best, nil
}
