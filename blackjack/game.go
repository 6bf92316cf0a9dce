package blackjack

import "github.com/lazharichir/blackjack/cards"

// Status represents the lifecycle state of a game
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusPlayerWon  Status = "player_won"
	StatusDealerWon  Status = "dealer_won"
	StatusPush       Status = "push"
)

// Terminal checks if the status is final. Terminal games are never reopened.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// Action represents a move available to the player
type Action string

const (
	ActionHit   Action = "hit"
	ActionStand Action = "stand"
)

// dealerStandValue is the total the dealer stands on. The dealer hits
// every total below it, soft or hard.
const dealerStandValue = 17

// Game holds one blackjack game's table state: the remaining shoe, both
// hands and the current status. Game values are immutable; transitions
// return the successor state.
type Game struct {
	Shoe       cards.Shoe
	PlayerHand Hand
	DealerHand Hand
	Status     Status
}

// Deal starts a game from the given shoe: two cards each, dealt
// alternately player, dealer, player, dealer. Naturals resolve the game
// immediately without further draws.
func Deal(shoe cards.Shoe) (Game, error) {
	game := Game{Shoe: shoe, Status: StatusInProgress}

	for i := 0; i < 2; i++ {
		card, remaining, err := game.Shoe.Draw()
		if err != nil {
			return game, err
		}
		game.PlayerHand = game.PlayerHand.Add(card)
		game.Shoe = remaining

		card, remaining, err = game.Shoe.Draw()
		if err != nil {
			return game, err
		}
		game.DealerHand = game.DealerHand.Add(card)
		game.Shoe = remaining
	}

	switch {
	case game.PlayerHand.IsBlackjack() && game.DealerHand.IsBlackjack():
		game.Status = StatusPush
	case game.PlayerHand.IsBlackjack():
		game.Status = StatusPlayerWon
	case game.DealerHand.IsBlackjack():
		game.Status = StatusDealerWon
	}

	return game, nil
}

// Apply runs a player action against the game
func (g Game) Apply(action Action) (Game, error) {
	switch action {
	case ActionHit:
		return g.Hit()
	case ActionStand:
		return g.Stand()
	default:
		return g, ErrInvalidAction
	}
}

// Hit draws one card into the player's hand. A bust hands the game to
// the dealer; otherwise the game stays in progress.
func (g Game) Hit() (Game, error) {
	if g.Status.Terminal() {
		return g, ErrGameFinished
	}

	card, remaining, err := g.Shoe.Draw()
	if err != nil {
		return g, err
	}

	g.PlayerHand = g.PlayerHand.Add(card)
	g.Shoe = remaining

	if g.PlayerHand.IsBust() {
		g.Status = StatusDealerWon
	}

	return g, nil
}

// Stand ends the player's turn and runs the dealer's automatic play:
// the dealer draws until reaching dealerStandValue, then the final
// scores are compared.
func (g Game) Stand() (Game, error) {
	if g.Status.Terminal() {
		return g, ErrGameFinished
	}

	for g.DealerHand.Score() < dealerStandValue {
		card, remaining, err := g.Shoe.Draw()
		if err != nil {
			return g, err
		}
		g.DealerHand = g.DealerHand.Add(card)
		g.Shoe = remaining
	}

	playerScore := g.PlayerHand.Score()
	dealerScore := g.DealerHand.Score()

	switch {
	case g.DealerHand.IsBust():
		g.Status = StatusPlayerWon
	case playerScore > dealerScore:
		g.Status = StatusPlayerWon
	case playerScore < dealerScore:
		g.Status = StatusDealerWon
	default:
		g.Status = StatusPush
	}

	return g, nil
}
