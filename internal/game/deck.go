package game

import (
	"fmt"
	"math/rand"
)

// Deck is the ordered draw pile. Index 0 is the next card drawn.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from the given cards, copying the slice.
func NewDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Draw removes and returns the front card. Drawing from an empty deck is a
// contract violation: a well-formed game stops before the deck runs out of
// exploding kittens.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		panic("game: draw from empty deck")
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Insert places a card at the given offset; 0 means on top (next draw).
func (d *Deck) Insert(card Card, offset int) {
	if offset < 0 || offset > len(d.cards) {
		panic(fmt.Sprintf("game: insert offset %d out of range [0,%d]", offset, len(d.cards)))
	}
	d.cards = append(d.cards, 0)
	copy(d.cards[offset+1:], d.cards[offset:])
	d.cards[offset] = card
}

// Shuffle randomizes the deck order in place.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Peek returns the cards in [from, to), clamped to the deck size, in draw
// order: index 0 of the result is the next card drawn.
func (d *Deck) Peek(from, to int) []Card {
	if to > len(d.cards) {
		to = len(d.cards)
	}
	var peeked []Card
	for i := from; i < to; i++ {
		peeked = append(peeked, d.cards[i])
	}
	return peeked
}

// ExplodingCount returns how many exploding kittens remain in the deck.
func (d *Deck) ExplodingCount() int {
	count := 0
	for _, c := range d.cards {
		if c == CardExplodingKitten {
			count++
		}
	}
	return count
}

// ExplodingOdds returns the probability that the next draw explodes.
func (d *Deck) ExplodingOdds() float64 {
	if len(d.cards) == 0 {
		return 0
	}
	return float64(d.ExplodingCount()) / float64(len(d.cards))
}
