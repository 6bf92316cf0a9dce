package blackjack

import (
	"strings"

	"github.com/lazharichir/blackjack/cards"
)

// blackjackTarget is the score a hand aims for without going over
const blackjackTarget = 21

// Hand is the ordered sequence of cards held by one participant
type Hand []cards.Card

// HandFromStack creates a hand from a stack of cards
func HandFromStack(stack cards.Stack) Hand {
	return Hand(stack)
}

// Add returns a new hand with the card appended. The receiver is not
// modified so snapshots of earlier hands stay valid.
func (h Hand) Add(card cards.Card) Hand {
	out := make(Hand, len(h)+1)
	copy(out, h)
	out[len(h)] = card
	return out
}

// Score computes the best total of the hand: every ace counts 11, then
// one ace at a time is downgraded to 1 while the total exceeds 21.
// A busted hand reports its minimal total above 21.
func (h Hand) Score() int {
	score := 0
	aces := 0

	for _, card := range h {
		score += card.Points()
		if card.IsAce() {
			aces++
		}
	}

	for score > blackjackTarget && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// IsBust checks if the hand's score exceeds 21
func (h Hand) IsBust() bool {
	return h.Score() > blackjackTarget
}

// IsBlackjack checks if the hand is a natural: 21 from the first two cards
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Score() == blackjackTarget
}

// Stack returns the hand as a card stack
func (h Hand) Stack() cards.Stack {
	return cards.Stack(h)
}

// String returns the string representation of the hand
func (h Hand) String() string {
	return strings.Join(cards.Stack(h).Strings(), " ")
}
