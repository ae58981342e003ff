package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterkuimelis/kittens/internal/log"
)

type attackEffect struct{}

func (attackEffect) Kind() EffectKind { return EffectAttack }
func (attackEffect) String() string   { return "ATTACK" }

// Apply ends the attacker's turn and gives the next player 2k+1 extra
// turns, where k counts the consecutive attacks already in the history.
// The attacker's own pending extra turns collapse: the turn order is
// drained of leading duplicates before the victim is charged.
func (attackEffect) Apply(ctx context.Context, state *GameState) error {
	attacker := state.CurrentPlayer()
	for state.CurrentPlayer() == attacker {
		state.NextTurn()
		if len(state.ActivePlayers()) == 0 {
			return nil
		}
	}
	k := state.ConsecutiveEffects(EffectAttack)
	extra := 2*k + 1
	victim := state.CurrentPlayer()
	state.AddTurns(extra)
	state.OnEvent(log.Info(fmt.Sprintf("%s has %d more turns", victim, extra)))
	return nil
}

type skipEffect struct{}

func (skipEffect) Kind() EffectKind { return EffectSkip }
func (skipEffect) String() string   { return "SKIP" }

func (skipEffect) Apply(ctx context.Context, state *GameState) error {
	state.NextTurn()
	state.OnEvent(log.Info(fmt.Sprintf("%s skipped a turn", state.CurrentPlayer())))
	return nil
}

type shuffleEffect struct{}

func (shuffleEffect) Kind() EffectKind { return EffectShuffle }
func (shuffleEffect) String() string   { return "SHUFFLE" }

func (shuffleEffect) Apply(ctx context.Context, state *GameState) error {
	state.ShuffleDeck()
	state.OnEvent(log.Info("The deck has been shuffled"))
	return nil
}

type seeTheFutureEffect struct{}

func (seeTheFutureEffect) Kind() EffectKind { return EffectSeeTheFuture }
func (seeTheFutureEffect) String() string   { return "SEE_THE_FUTURE" }

// Apply shows the top three deck cards to the actor only; opponents just
// learn that the future was seen.
func (seeTheFutureEffect) Apply(ctx context.Context, state *GameState) error {
	actor := state.CurrentPlayer()
	top := state.PeekDeck(0, 3)
	state.OnEvent(log.Info(formatFuture(top)), actor)
	state.OnEvent(log.Info(fmt.Sprintf("%s\tsaw the future...", actor)), state.Opponents()...)
	return nil
}

func formatFuture(top []Card) string {
	if len(top) == 1 {
		return fmt.Sprintf("The top card on the deck is %s", top[0])
	}
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.String()
	}
	return fmt.Sprintf("The top %d cards on the deck are %s", len(top), strings.Join(names, ", "))
}

type favorEffect struct{}

func (favorEffect) Kind() EffectKind { return EffectFavor }
func (favorEffect) String() string   { return "FAVOR" }

// Apply lets the actor pick a target; the target then chooses which of
// its own cards to hand over. Only the two participants learn the card's
// identity.
func (favorEffect) Apply(ctx context.Context, state *GameState) error {
	actor := state.CurrentPlayer()
	target, err := actor.Controller.SelectPlayer(ctx, state.ActiveOpponents())
	if err != nil {
		return err
	}
	card, ok, err := target.Controller.SelectCardOf(ctx, target)
	if err != nil {
		return err
	}
	if !ok {
		state.OnEvent(log.Info(fmt.Sprintf("The target opponent %s has no cards", target)))
		return nil
	}
	if err := state.TransferCard(target, actor, card); err != nil {
		return err
	}
	base := fmt.Sprintf("Card transferred from %s to %s", target, actor)
	state.OnEvent(log.Info(base+": "+card.String()), actor, target)
	state.OnEvent(log.Info(base), except(state.Players(), actor, target)...)
	return nil
}

type stealRandomEffect struct{}

func (stealRandomEffect) Kind() EffectKind { return EffectStealRandom }
func (stealRandomEffect) String() string   { return "TWO_CARDS" }

// Apply lets the actor take a blind pick from the target's hand: the
// actor's controller chooses a position without seeing the cards.
func (stealRandomEffect) Apply(ctx context.Context, state *GameState) error {
	actor := state.CurrentPlayer()
	target, err := actor.Controller.SelectPlayer(ctx, state.ActiveOpponents())
	if err != nil {
		return err
	}
	card, ok, err := actor.Controller.SelectCardOf(ctx, target)
	if err != nil {
		return err
	}
	if !ok {
		state.OnEvent(log.Info(fmt.Sprintf("The target player %s has no cards", target)))
		return nil
	}
	if err := state.TransferCard(target, actor, card); err != nil {
		return err
	}
	state.OnEvent(log.Info(fmt.Sprintf("%s stole %s from %s", actor, card, target)), actor, target)
	state.OnEvent(log.Info(fmt.Sprintf("%s stole a card from %s", actor, target)), except(state.Players(), actor, target)...)
	return nil
}

type stealNamedEffect struct{}

func (stealNamedEffect) Kind() EffectKind { return EffectStealNamed }
func (stealNamedEffect) String() string   { return "THREE_CARDS" }

// Apply lets the actor name a card kind and a target. The steal succeeds
// only when the target holds such a card; a miss is announced to everyone
// and the combo is still spent.
func (stealNamedEffect) Apply(ctx context.Context, state *GameState) error {
	actor := state.CurrentPlayer()
	kind, err := actor.Controller.SelectCardKind(ctx)
	if err != nil {
		return err
	}
	target, err := actor.Controller.SelectPlayer(ctx, state.ActiveOpponents())
	if err != nil {
		return err
	}
	if !target.HasCard(kind) {
		state.OnEvent(log.Info(fmt.Sprintf("%s does not have the card %s", target, kind)))
		return nil
	}
	if err := state.TransferCard(target, actor, kind); err != nil {
		return err
	}
	state.OnEvent(log.Info(fmt.Sprintf("%s transferred from %s", kind, target)))
	return nil
}

type discardDrawEffect struct{}

func (discardDrawEffect) Kind() EffectKind { return EffectDiscardDraw }
func (discardDrawEffect) String() string   { return "FIVE_CARDS" }

// Apply lets the actor recover any one card from the discard pile. The
// selection re-runs until a card is chosen; the first pick wins.
func (discardDrawEffect) Apply(ctx context.Context, state *GameState) error {
	actor := state.CurrentPlayer()
	if state.DiscardPileEmpty() {
		state.OnEvent(log.Info("The five-card effect was played, but the discard pile has no cards"))
		return nil
	}
	var picked []Card
	for len(picked) == 0 {
		state.OnEvent(log.Info("Select a card. The first option (0) will be considered invalid"), actor)
		var err error
		picked, err = actor.Controller.SelectCardsFrom(ctx, state.DiscardedKinds())
		if err != nil {
			return err
		}
	}
	if err := state.TransferFromPile(actor, picked[0]); err != nil {
		return err
	}
	base := fmt.Sprintf("Card transferred from the discard pile to %s", actor)
	state.OnEvent(log.Info(base+": "+picked[0].String()), actor)
	state.OnEvent(log.Info(base), except(state.Players(), actor)...)
	return nil
}

// except filters the excluded players out of the list, preserving order.
func except(players []*Player, excluded ...*Player) []*Player {
	var kept []*Player
	for _, p := range players {
		skip := false
		for _, e := range excluded {
			if p == e {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, p)
		}
	}
	return kept
}
