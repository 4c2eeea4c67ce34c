package game

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the number of positions on the placement board.
const BoardSize = 9

// BoardInputSize is the length of the feature vector the advisor model
// consumes: one slot per (position, kind) pair.
const BoardInputSize = BoardSize * NumKinds

// BoardState is the parsed form of a serialized board-game state. Cards
// are single-character codes: R/P/S for player 1, r/p/s for player 2,
// '.' for an empty board position.
type BoardState struct {
	Board         string
	Hand1         string
	Hand2         string
	CurrentPlayer int
}

// Move is a card placement: an index into the current player's hand and
// a board position.
type Move struct {
	CardIndex int
	Position  int
}

// ParseBoardState parses a state string of key:value pairs joined by
// '|', for example "Board:R.s......|Hand1:PS|Hand2:rp|Current:1".
func ParseBoardState(s string) (BoardState, error) {
	parts := make(map[string]string)
	for _, part := range strings.Split(s, "|") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			parts[kv[0]] = kv[1]
		}
	}

	if parts["Board"] == "" || parts["Hand1"] == "" || parts["Hand2"] == "" || parts["Current"] == "" {
		return BoardState{}, fmt.Errorf("missing required game state fields")
	}

	current, err := strconv.Atoi(parts["Current"])
	if err != nil {
		return BoardState{}, fmt.Errorf("invalid current player: %w", err)
	}
	if current != 1 && current != 2 {
		return BoardState{}, fmt.Errorf("current player must be 1 or 2, got %d", current)
	}

	return BoardState{
		Board:         parts["Board"],
		Hand1:         parts["Hand1"],
		Hand2:         parts["Hand2"],
		CurrentPlayer: current,
	}, nil
}

// CurrentHand returns the hand string of the player to move.
func (b BoardState) CurrentHand() string {
	if b.CurrentPlayer == 1 {
		return b.Hand1
	}
	return b.Hand2
}

// ValidMoves enumerates every legal (card, position) placement for the
// player to move: any card in hand onto any empty position.
func (b BoardState) ValidMoves() []Move {
	hand := b.CurrentHand()

	var moves []Move
	for pos := 0; pos < BoardSize && pos < len(b.Board); pos++ {
		if b.Board[pos] != '.' {
			continue
		}
		for card := 0; card < len(hand); card++ {
			moves = append(moves, Move{CardIndex: card, Position: pos})
		}
	}
	return moves
}

// Features encodes the board as a BoardInputSize-long vector: +1 for a
// player-1 card, -1 for a player-2 card, in the slot of its kind.
func (b BoardState) Features() []float64 {
	features := make([]float64, BoardInputSize)

	for i, c := range b.Board {
		if i >= BoardSize || c == '.' {
			continue
		}

		var kind Kind
		switch c {
		case 'R', 'r':
			kind = Rock
		case 'P', 'p':
			kind = Paper
		case 'S', 's':
			kind = Scissors
		default:
			continue
		}

		val := 1.0
		if c >= 'a' {
			val = -1.0
		}
		features[i*NumKinds+int(kind)] = val
	}

	return features
}
