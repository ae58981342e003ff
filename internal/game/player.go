package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterkuimelis/kittens/internal/log"
)

// Controller is the decision-making capability contract every player kind
// (human, AI, remote) implements. From the engine's point of view each call
// blocks until answered; AskForNope is the one exception, raced against a
// deadline through the shared NopeRace.
type Controller interface {
	// SelectCardKind picks one kind from the full catalog (named steals).
	SelectCardKind(ctx context.Context) (Card, error)

	// SelectPlayer picks one player from the candidate set.
	SelectPlayer(ctx context.Context, candidates []*Player) (*Player, error)

	// SelectCardOf picks one card belonging to the target player. The
	// second return is false when the target's hand is empty.
	SelectCardOf(ctx context.Context, target *Player) (Card, bool, error)

	// SelectCardsFrom picks a sublist of the given cards. An empty result
	// means "pass". Implementations must not pick the same position twice.
	SelectCardsFrom(ctx context.Context, cards []Card) ([]Card, error)

	// ReinsertOffset chooses where a defused kitten goes back into the
	// deck, in [0, deckSize]; 0 is the top.
	ReinsertOffset(ctx context.Context, deckSize int) (int, error)

	// AskForNope optionally submits a veto of the described action into
	// the race before its deadline. Declining is silent.
	AskForNope(ctx context.Context, self *Player, action string, race *NopeRace)

	// Notify delivers a game event. Fire-and-forget.
	Notify(event log.GameEvent)
}

// Player pairs an immutable identity and a hand with the Controller that
// makes its decisions.
type Player struct {
	Name       string
	Controller Controller

	hand []Card
}

func NewPlayer(name string, controller Controller) *Player {
	return &Player{Name: name, Controller: controller}
}

func (p *Player) String() string {
	return "Player " + p.Name
}

// Hand returns a copy of the player's hand.
func (p *Player) Hand() []Card {
	hand := make([]Card, len(p.hand))
	copy(hand, p.hand)
	return hand
}

func (p *Player) HandSize() int {
	return len(p.hand)
}

func (p *Player) AddCard(card Card) {
	p.hand = append(p.hand, card)
}

// RemoveCard removes one instance of the given kind from the hand.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.hand {
		if c == card {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) HasCard(card Card) bool {
	for _, c := range p.hand {
		if c == card {
			return true
		}
	}
	return false
}

// FormatHand renders the hand as a numbered list, one card per line.
func (p *Player) FormatHand() string {
	names := make([]string, len(p.hand))
	for i, c := range p.hand {
		names[i] = c.String()
	}
	return formatNumbered(names)
}

// formatNumbered renders items as a 1-based numbered list.
func formatNumbered(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, item)
	}
	return sb.String()
}
