package cards

// Stack represents an ordered pile of cards
type Stack []Card

// NewStack creates a new stack with the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// MustStack builds a stack from card shorthands, panicking on bad input.
// Intended for tests and fixtures, e.g. MustStack("A♠", "K♥").
func MustStack(shorthands ...string) Stack {
	stack := make(Stack, 0, len(shorthands))
	for _, s := range shorthands {
		card, err := CardFromString(s)
		if err != nil {
			panic(err)
		}
		stack = append(stack, card)
	}
	return stack
}

// Strings returns the shorthand representation of every card in the stack
func (s Stack) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.String()
	}
	return out
}
