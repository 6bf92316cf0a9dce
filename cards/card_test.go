package cards

import (
	"testing"
)

func TestCardFromString(t *testing.T) {
	cases := map[string]Card{
		"10♠": {Suit: Spades, Value: Ten},
		"A♥":  {Suit: Hearts, Value: Ace},
		"Q♦":  {Suit: Diamonds, Value: Queen},
		"2♣":  {Suit: Clubs, Value: Two},
		"Ah":  {Suit: Hearts, Value: Ace},
		"Kd":  {Suit: Diamonds, Value: King},
		"10S": {Suit: Spades, Value: Ten},
		"Jc":  {Suit: Clubs, Value: Jack},
	}

	for shorthand, want := range cases {
		card, err := CardFromString(shorthand)
		if err != nil {
			t.Fatalf("Unexpected error for %s: %v", shorthand, err)
		}
		if !card.Equals(want) {
			t.Errorf("Expected %s, got %s", want, card)
		}
	}

	if _, err := CardFromString("Xs"); err == nil {
		t.Error("Expected error for invalid value")
	}

	if _, err := CardFromString("A"); err == nil {
		t.Error("Expected error for missing suit")
	}

	if _, err := CardFromString("♠"); err == nil {
		t.Error("Expected error for missing value")
	}
}

func TestCardPoints(t *testing.T) {
	cases := map[string]int{
		"2♠": 2, "5♦": 5, "9♣": 9, "10♥": 10,
		"J♠": 10, "Q♦": 10, "K♣": 10, "A♥": 11,
	}

	for shorthand, want := range cases {
		card, err := CardFromString(shorthand)
		if err != nil {
			t.Fatalf("Unexpected error for %s: %v", shorthand, err)
		}
		if got := card.Points(); got != want {
			t.Errorf("Expected %s to be worth %d points, got %d", shorthand, want, got)
		}
	}
}

func TestCardIsAce(t *testing.T) {
	ace := Card{Suit: Spades, Value: Ace}
	if !ace.IsAce() {
		t.Error("Expected A♠ to be an ace")
	}

	king := Card{Suit: Spades, Value: King}
	if king.IsAce() {
		t.Error("Expected K♠ not to be an ace")
	}
}

func TestCardString(t *testing.T) {
	card := Card{Suit: Diamonds, Value: Queen}
	if card.String() != "Q♦" {
		t.Errorf("Expected Q♦, got %s", card)
	}
}
