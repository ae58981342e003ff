package game

import (
	"fmt"
	"sort"
)

// DiscardPile is an unordered multiset of discarded cards keyed by kind.
type DiscardPile struct {
	counts map[Card]int
}

func NewDiscardPile() *DiscardPile {
	return &DiscardPile{counts: make(map[Card]int)}
}

// Push adds one card to the pile.
func (p *DiscardPile) Push(card Card) {
	p.counts[card]++
}

// Extract removes one instance of the given kind. Asking for an absent kind
// is an invalid-state error: effect preconditions should have ruled it out.
func (p *DiscardPile) Extract(card Card) error {
	if p.counts[card] == 0 {
		return fmt.Errorf("card %s not present in the discard pile", card)
	}
	p.counts[card]--
	if p.counts[card] == 0 {
		delete(p.counts, card)
	}
	return nil
}

// Kinds returns the distinct kinds present, sorted for stable prompts.
func (p *DiscardPile) Kinds() []Card {
	kinds := make([]Card, 0, len(p.counts))
	for c := range p.counts {
		kinds = append(kinds, c)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Count returns how many cards of the given kind the pile holds.
func (p *DiscardPile) Count(card Card) int {
	return p.counts[card]
}

// Empty reports whether the pile holds no cards at all.
func (p *DiscardPile) Empty() bool {
	return len(p.counts) == 0
}
