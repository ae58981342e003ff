package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

const (
	// InitialHandSize is the hand size after dealing: one guaranteed
	// defuse plus seven drawn cards.
	InitialHandSize = 8

	// MaxPlayerCount bounds the table size.
	MaxPlayerCount = 5
)

// BaseDeck builds the standard card set for the given table size: four
// of each normal action and cat card, five nopes and see-the-futures,
// 6-n defuses, and n-1 exploding kittens.
func BaseDeck(playerCount int) []Card {
	var cards []Card
	for i := 0; i < 4; i++ {
		cards = append(cards,
			CardAttack, CardSkip, CardFavor, CardShuffle,
			CardTacocat, CardBeardCat, CardCattermelon,
			CardHairyPotatoCat, CardRainbowRalphingCat)
	}
	for i := 0; i < 5; i++ {
		cards = append(cards, CardNope, CardSeeTheFuture)
	}
	for i := 0; i < 6-playerCount; i++ {
		cards = append(cards, CardDefuse)
	}
	for i := 0; i < playerCount-1; i++ {
		cards = append(cards, CardExplodingKitten)
	}
	return cards
}

// LoadDeckFile reads a custom deck description from a JSON file mapping
// card names to counts and validates it for the table size.
func LoadDeckFile(path string, playerCount int) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	return ParseDeck(data, playerCount)
}

// ParseDeck validates a JSON deck description. The deck must hold enough
// cards for every hand plus the kittens, at least one defuse per player,
// and at least n-1 exploding kittens; any extra kittens are dropped so
// exactly n-1 remain.
func ParseDeck(data []byte, playerCount int) ([]Card, error) {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse deck file: %w", err)
	}

	counts := make(map[Card]int, len(raw))
	total := 0
	for name, count := range raw {
		card, err := ParseCard(name)
		if err != nil {
			return nil, fmt.Errorf("invalid card in deck file: %w", err)
		}
		if count < 0 {
			return nil, fmt.Errorf("negative count %d for card %s", count, card)
		}
		counts[card] += count
		total += count
	}

	if total < (playerCount+1)*InitialHandSize-1 {
		return nil, fmt.Errorf("not enough cards in the deck (%d)", total)
	}
	if counts[CardDefuse] < playerCount {
		return nil, fmt.Errorf("not enough defuse cards (%d)", counts[CardDefuse])
	}
	if counts[CardExplodingKitten] < playerCount-1 {
		return nil, fmt.Errorf("not enough exploding kittens (%d)", counts[CardExplodingKitten])
	}
	counts[CardExplodingKitten] = playerCount - 1

	var cards []Card
	for _, card := range Catalog() {
		for i := 0; i < counts[card]; i++ {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// Deal distributes initial hands and returns the remaining deck. Every
// player receives one defuse on top of the card set plus seven safe
// cards; kittens and defuses never land in an initial hand. The
// remainder is reshuffled.
func Deal(players []*Player, cards []Card) *Deck {
	pool := make([]Card, len(cards))
	copy(pool, cards)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for _, p := range players {
		p.AddCard(CardDefuse)
		dealt := 0
		for i := 0; i < len(pool) && dealt < InitialHandSize-1; {
			if pool[i] == CardExplodingKitten || pool[i] == CardDefuse {
				i++
				continue
			}
			p.AddCard(pool[i])
			pool = append(pool[:i], pool[i+1:]...)
			dealt++
		}
	}

	deck := NewDeck(pool)
	deck.Shuffle()
	return deck
}
