package game

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/log"
)

// UserInterface is what a HumanController talks to: a terminal for local
// players, a network session for remote ones. Query methods block until
// the human answers; QueryNumber re-prompts until the answer is a number
// in [min, max].
type UserInterface interface {
	Notify(event log.GameEvent)
	Query(prompt string) (string, error)
	QueryNumber(prompt string, min, max int) (int, error)
	QueryNumberTimeout(prompt string, min, max int, timeout time.Duration, fallback int) (int, error)
	QueryNumbers(prompt string, max int) ([]int, error)
	Close() error
}

// nopeReplyMargin is shaved off the veto window so a reply sent at the
// last moment still reaches the race before it closes.
const nopeReplyMargin = 500 * time.Millisecond

// HumanController turns engine decisions into UI prompts.
type HumanController struct {
	UI UserInterface
}

func NewHumanPlayer(name string, ui UserInterface) *Player {
	return NewPlayer(name, &HumanController{UI: ui})
}

func (c *HumanController) SelectCardKind(ctx context.Context) (Card, error) {
	catalog := Catalog()
	names := make([]string, len(catalog))
	for i, card := range catalog {
		names[i] = card.String()
	}
	prompt := fmt.Sprintf("Choose a card:\n%s", formatNumbered(names))
	choice, err := c.UI.QueryNumber(prompt, 1, len(catalog))
	if err != nil {
		return 0, err
	}
	return catalog[choice-1], nil
}

func (c *HumanController) SelectPlayer(ctx context.Context, candidates []*Player) (*Player, error) {
	sorted := make([]*Player, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.Name
	}
	prompt := fmt.Sprintf("Select an opponent: \n%s", formatNumbered(names))
	choice, err := c.UI.QueryNumber(prompt, 1, len(sorted))
	if err != nil {
		return nil, err
	}
	return sorted[choice-1], nil
}

func (c *HumanController) SelectCardOf(ctx context.Context, target *Player) (Card, bool, error) {
	hand := target.Hand()
	if len(hand) == 0 {
		return 0, false, nil
	}
	prompt := fmt.Sprintf("Player has %d cards, choose 1-%d:\n", len(hand), len(hand))
	choice, err := c.UI.QueryNumber(prompt, 1, len(hand))
	if err != nil {
		return 0, false, err
	}
	return hand[choice-1], true, nil
}

// SelectCardsFrom shows the numbered choices with a leading pass option.
// An empty reply or a 0 anywhere passes; duplicate indices collapse so a
// card cannot be played twice from one copy.
func (c *HumanController) SelectCardsFrom(ctx context.Context, cards []Card) ([]Card, error) {
	names := make([]string, len(cards))
	for i, card := range cards {
		names[i] = card.String()
	}
	prompt := "0. PICK CARD\n" + formatNumbered(names) + "\n>"
	indices, err := c.UI.QueryNumbers(prompt, len(cards))
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, nil
	}
	seen := make(map[int]bool, len(indices))
	var selection []Card
	for _, idx := range indices {
		if idx == 0 {
			return nil, nil
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		selection = append(selection, cards[idx-1])
	}
	return selection, nil
}

func (c *HumanController) ReinsertOffset(ctx context.Context, deckSize int) (int, error) {
	prompt := fmt.Sprintf("Where do you want to reinsert it? (Range 0-%d)", deckSize)
	return c.UI.QueryNumber(prompt, 0, deckSize)
}

// AskForNope asks the human whether to veto, leaving a reply margin so
// the answer still lands inside the window. No answer means no veto.
func (c *HumanController) AskForNope(ctx context.Context, self *Player, action string, race *NopeRace) {
	if !self.HasCard(CardNope) {
		c.UI.Notify(log.Info("You cannot NOPE :("))
		return
	}
	timeout := race.Remaining() - nopeReplyMargin
	if timeout <= 0 {
		return
	}
	prompt := action + " is about to be happen. Do you want to nope? (0 - NO / 1 - YES)"
	answer, err := c.UI.QueryNumberTimeout(prompt, 0, 1, timeout, 0)
	if err != nil {
		logrus.WithError(err).WithField("player", self.Name).Warn("nope query failed")
		return
	}
	if answer == 1 {
		race.Offer(self)
	}
}

func (c *HumanController) Notify(event log.GameEvent) {
	c.UI.Notify(event)
}
