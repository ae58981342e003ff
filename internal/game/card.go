package game

import (
	"fmt"
	"strings"
)

// Card identifies one of the fixed card kinds. Cards are pure values: two
// cards of the same kind are indistinguishable.
type Card int

const (
	CardAttack Card = iota
	CardBeardCat
	CardCattermelon
	CardDefuse
	CardExplodingKitten
	CardFavor
	CardHairyPotatoCat
	CardNope
	CardRainbowRalphingCat
	CardSeeTheFuture
	CardShuffle
	CardSkip
	CardTacocat
)

var cardNames = [...]string{
	CardAttack:             "ATTACK",
	CardBeardCat:           "BEARD_CAT",
	CardCattermelon:        "CATTERMELON",
	CardDefuse:             "DEFUSE",
	CardExplodingKitten:    "EXPLODING_KITTEN",
	CardFavor:              "FAVOR",
	CardHairyPotatoCat:     "HAIRY_POTATO_CAT",
	CardNope:               "NOPE",
	CardRainbowRalphingCat: "RAINBOW_RALPHING_CAT",
	CardSeeTheFuture:       "SEE_THE_FUTURE",
	CardShuffle:            "SHUFFLE",
	CardSkip:               "SKIP",
	CardTacocat:            "TACOCAT",
}

func (c Card) String() string {
	if c < 0 || int(c) >= len(cardNames) {
		return "UNKNOWN"
	}
	return cardNames[c]
}

// Catalog returns every card kind in declaration order.
func Catalog() []Card {
	catalog := make([]Card, len(cardNames))
	for i := range catalog {
		catalog[i] = Card(i)
	}
	return catalog
}

// ParseCard maps a kind name to its Card. Spaces are accepted in place of
// underscores and the match is case-insensitive.
func ParseCard(name string) (Card, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	for i, n := range cardNames {
		if n == normalized {
			return Card(i), nil
		}
	}
	return 0, fmt.Errorf("unknown card kind %q", name)
}
