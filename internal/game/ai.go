package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/log"
)

// DefaultAIDelay paces AI decisions so humans at the table can follow
// what happens.
const DefaultAIDelay = 750 * time.Millisecond

// AIController plays without human input. Decisions are random but
// legal; pacing comes from a fixed pause before each decision.
type AIController struct {
	Delay time.Duration
}

// NewAIPlayer builds a player driven by an AIController. A zero delay
// means DefaultAIDelay.
func NewAIPlayer(name string, delay time.Duration) *Player {
	if delay == 0 {
		delay = DefaultAIDelay
	}
	return NewPlayer(name, &AIController{Delay: delay})
}

func (c *AIController) pause(ctx context.Context) error {
	timer := time.NewTimer(c.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AIController) SelectCardKind(ctx context.Context) (Card, error) {
	if err := c.pause(ctx); err != nil {
		return 0, err
	}
	catalog := Catalog()
	return catalog[rand.Intn(len(catalog))], nil
}

func (c *AIController) SelectPlayer(ctx context.Context, candidates []*Player) (*Player, error) {
	if err := c.pause(ctx); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("no candidate players")
	}
	return candidates[rand.Intn(len(candidates))], nil
}

func (c *AIController) SelectCardOf(ctx context.Context, target *Player) (Card, bool, error) {
	if err := c.pause(ctx); err != nil {
		return 0, false, err
	}
	hand := target.Hand()
	if len(hand) == 0 {
		return 0, false, nil
	}
	return hand[rand.Intn(len(hand))], true, nil
}

// SelectCardsFrom sometimes passes outright; otherwise it picks a random
// card and plays as many copies as it can, capped at a three-card combo.
func (c *AIController) SelectCardsFrom(ctx context.Context, cards []Card) ([]Card, error) {
	if err := c.pause(ctx); err != nil {
		return nil, err
	}
	if len(cards) == 0 || rand.Intn(2) == 0 {
		return nil, nil
	}
	return aiCombo(cards, cards[rand.Intn(len(cards))]), nil
}

// aiCombo expands a chosen card into the selection to play: a combo of
// up to three copies when duplicates are held, a single card otherwise.
func aiCombo(cards []Card, choice Card) []Card {
	count := 0
	for _, card := range cards {
		if card == choice {
			count++
		}
	}
	if count > 3 {
		count = 3
	}
	combo := make([]Card, count)
	for i := range combo {
		combo[i] = choice
	}
	return combo
}

// ReinsertOffset picks a random deck position for the defused kitten.
func (c *AIController) ReinsertOffset(ctx context.Context, deckSize int) (int, error) {
	if deckSize <= 1 {
		return 0, nil
	}
	return rand.Intn(deckSize), nil
}

// AskForNope vetoes about half the time when a nope is held, after a
// short pause so remote humans get a chance too.
func (c *AIController) AskForNope(ctx context.Context, self *Player, action string, race *NopeRace) {
	if !self.HasCard(CardNope) || rand.Intn(2) == 0 {
		return
	}
	if err := c.pause(ctx); err != nil {
		return
	}
	if race.Offer(self) {
		logrus.WithFields(logrus.Fields{"player": self.Name, "action": action}).Info("ai noped")
	}
}

func (c *AIController) Notify(event log.GameEvent) {
	logrus.WithField("event", event.String()).Debug("ai notified")
}
