package game

import (
	"strings"
	"testing"
)

func TestParseBoardState(t *testing.T) {
	state, err := ParseBoardState("Board:R.s......|Hand1:PS|Hand2:rp|Current:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Board != "R.s......" {
		t.Errorf("board = %q", state.Board)
	}
	if state.Hand1 != "PS" || state.Hand2 != "rp" {
		t.Errorf("hands = %q, %q", state.Hand1, state.Hand2)
	}
	if state.CurrentPlayer != 1 {
		t.Errorf("current player = %d, want 1", state.CurrentPlayer)
	}
	if state.CurrentHand() != "PS" {
		t.Errorf("current hand = %q, want PS", state.CurrentHand())
	}
}

func TestParseBoardStateMissingFields(t *testing.T) {
	cases := []string{
		"",
		"Board:.........",
		"Board:.........|Hand1:RPS|Current:1",
		"Hand1:RPS|Hand2:rps|Current:1",
	}
	for _, c := range cases {
		if _, err := ParseBoardState(c); err == nil {
			t.Errorf("ParseBoardState(%q) should fail", c)
		}
	}
}

func TestParseBoardStateBadCurrentPlayer(t *testing.T) {
	if _, err := ParseBoardState("Board:.........|Hand1:R|Hand2:r|Current:x"); err == nil {
		t.Error("non-numeric current player should fail")
	}
	if _, err := ParseBoardState("Board:.........|Hand1:R|Hand2:r|Current:3"); err == nil {
		t.Error("out-of-range current player should fail")
	}
}

func TestValidMoves(t *testing.T) {
	state, err := ParseBoardState("Board:R.s......|Hand1:PS|Hand2:rp|Current:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	moves := state.ValidMoves()
	// 7 empty positions x 2 cards in hand.
	if len(moves) != 14 {
		t.Fatalf("got %d moves, want 14", len(moves))
	}

	for _, m := range moves {
		if state.Board[m.Position] != '.' {
			t.Errorf("move targets occupied position %d", m.Position)
		}
		if m.CardIndex < 0 || m.CardIndex >= len(state.Hand1) {
			t.Errorf("card index %d out of hand range", m.CardIndex)
		}
	}
}

func TestValidMovesFullBoard(t *testing.T) {
	state, err := ParseBoardState("Board:" + strings.Repeat("R", BoardSize) + "|Hand1:P|Hand2:p|Current:2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moves := state.ValidMoves(); len(moves) != 0 {
		t.Errorf("full board should have no moves, got %d", len(moves))
	}
}

func TestBoardFeatures(t *testing.T) {
	state, err := ParseBoardState("Board:R.s......|Hand1:PS|Hand2:rp|Current:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	features := state.Features()
	if len(features) != BoardInputSize {
		t.Fatalf("got %d features, want %d", len(features), BoardInputSize)
	}

	// Position 0 holds player 1's Rock.
	if features[0*NumKinds+int(Rock)] != 1 {
		t.Error("player 1 Rock at position 0 not encoded")
	}
	// Position 2 holds player 2's Scissors.
	if features[2*NumKinds+int(Scissors)] != -1 {
		t.Error("player 2 Scissors at position 2 not encoded")
	}

	// Everything else stays zero.
	var nonZero int
	for _, f := range features {
		if f != 0 {
			nonZero++
		}
	}
	if nonZero != 2 {
		t.Errorf("got %d non-zero features, want 2", nonZero)
	}
}
