// Package game provides domain types for the rock-paper-scissors card game.
package game

// Kind is one of the three card kinds in the cyclic dominance relation.
type Kind int

const (
	// Rock beats Scissors.
	Rock Kind = iota
	// Paper beats Rock.
	Paper
	// Scissors beats Paper.
	Scissors

	// NumKinds is the number of card kinds.
	NumKinds = 3
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the three card kinds.
func (k Kind) Valid() bool {
	return k >= Rock && k < NumKinds
}

// Outcome scores kind a against kind b: 0 on a tie, +1 when a beats b,
// -1 when b beats a.
func Outcome(a, b Kind) float64 {
	if a == b {
		return 0
	}
	if beats(a) == b {
		return 1
	}
	return -1
}

// beats returns the kind that k defeats.
func beats(k Kind) Kind {
	// Rock > Scissors, Paper > Rock, Scissors > Paper.
	return (k + 2) % NumKinds
}

// InitialCount is the number of cards of each kind dealt per side.
const InitialCount = 3

// Hand tracks the remaining count of each card kind for one side.
type Hand [NumKinds]int

// NewHand returns a freshly dealt hand with InitialCount of each kind.
func NewHand() Hand {
	return Hand{InitialCount, InitialCount, InitialCount}
}

// Remaining returns the total number of cards left in the hand.
func (h Hand) Remaining() int {
	return h[Rock] + h[Paper] + h[Scissors]
}

// Has reports whether at least one card of kind k remains.
func (h Hand) Has(k Kind) bool {
	return k.Valid() && h[k] > 0
}

// Remove plays one card of kind k. It reports false if none remain;
// counts never go negative.
func (h *Hand) Remove(k Kind) bool {
	if !h.Has(k) {
		return false
	}
	h[k]--
	return true
}

// Kinds returns the kinds that still have at least one card, in kind order.
func (h Hand) Kinds() []Kind {
	kinds := make([]Kind, 0, NumKinds)
	for k := Rock; k < NumKinds; k++ {
		if h[k] > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
