package game

import "context"

// EffectKind identifies an effect category in the history. EffectNone
// marks a turn boundary: a turn ended without a combo, breaking attack
// chains.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectAttack
	EffectSkip
	EffectShuffle
	EffectFavor
	EffectSeeTheFuture
	EffectStealRandom
	EffectStealNamed
	EffectDiscardDraw
)

var effectNames = [...]string{
	"NONE",
	"ATTACK",
	"SKIP",
	"SHUFFLE",
	"FAVOR",
	"SEE_THE_FUTURE",
	"STEAL_RANDOM",
	"STEAL_NAMED",
	"DISCARD_DRAW",
}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectNames) {
		return "UNKNOWN"
	}
	return effectNames[k]
}

// ComboEffect is the resolved meaning of a played card selection. Apply
// runs on the engine goroutine and may block on controller decisions.
type ComboEffect interface {
	Kind() EffectKind
	Apply(ctx context.Context, state *GameState) error
	String() string
}

// EffectFor classifies a card selection into its effect. The second
// return is false when the selection forms no valid combo: a single
// non-action card, two or three cards of differing kinds, four cards,
// five cards with a repeat, or six and more.
func EffectFor(cards []Card) (ComboEffect, bool) {
	switch len(cards) {
	case 1:
		switch cards[0] {
		case CardAttack:
			return attackEffect{}, true
		case CardSkip:
			return skipEffect{}, true
		case CardShuffle:
			return shuffleEffect{}, true
		case CardFavor:
			return favorEffect{}, true
		case CardSeeTheFuture:
			return seeTheFutureEffect{}, true
		}
		return nil, false
	case 2:
		if cards[0] == cards[1] {
			return stealRandomEffect{}, true
		}
		return nil, false
	case 3:
		if cards[0] == cards[1] && cards[1] == cards[2] {
			return stealNamedEffect{}, true
		}
		return nil, false
	case 5:
		seen := make(map[Card]bool, 5)
		for _, c := range cards {
			if seen[c] {
				return nil, false
			}
			seen[c] = true
		}
		return discardDrawEffect{}, true
	}
	return nil, false
}
