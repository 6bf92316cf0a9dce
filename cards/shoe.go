package cards

import "errors"

// ErrShoeExhausted is returned when a draw is requested from an empty shoe
var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe holds the cards still available to be dealt in one game,
// consumed front to back. It is never reshuffled or refilled.
type Shoe struct {
	Cards Stack `json:"cards"`
}

// NewShoe creates a shoe holding one shuffled 52-card deck
func NewShoe() Shoe {
	return Shoe{Cards: ShuffleCards(NewDeck())}
}

// ShoeFromStack creates a shoe with a predetermined draw order
func ShoeFromStack(stack Stack) Shoe {
	return Shoe{Cards: stack}
}

// Draw removes the front card and returns it with the reduced shoe
func (s Shoe) Draw() (Card, Shoe, error) {
	if len(s.Cards) == 0 {
		return Card{}, s, ErrShoeExhausted
	}
	return s.Cards[0], Shoe{Cards: s.Cards[1:]}, nil
}

// Remaining returns the number of cards left in the shoe
func (s Shoe) Remaining() int {
	return len(s.Cards)
}
