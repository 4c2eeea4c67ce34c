// Package env provides game environment infrastructure.
package env

import (
	"github.com/ZachBeta/neural-rps/internal/domain/game"
	"github.com/ZachBeta/neural-rps/internal/domain/rl"
)

// encodeState builds the state vector for one side. lastOwn and lastOpp
// are the most recent plays by the acting side and its opponent; both
// default to Rock on a fresh episode, matching the reference behavior.
func encodeState(enc rl.Encoding, hand game.Hand, lastOwn, lastOpp game.Kind) []float64 {
	state := make([]float64, enc.Dims())

	// One-hot of the acting side's last play.
	state[int(lastOwn)] = 1

	if enc == rl.EncodingCompact {
		// Has-at-least-one indicator per kind.
		for k := game.Rock; k < game.NumKinds; k++ {
			if hand.Has(k) {
				state[game.NumKinds+int(k)] = 1
			}
		}
		return state
	}

	// Hand counts normalized by the initial per-kind count.
	for k := game.Rock; k < game.NumKinds; k++ {
		state[game.NumKinds+int(k)] = float64(hand[k]) / game.InitialCount
	}

	// One-hot of the opponent's last play.
	state[2*game.NumKinds+int(lastOpp)] = 1

	return state
}
