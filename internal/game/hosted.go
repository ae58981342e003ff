package game

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/log"
)

// EndOfGameMarker is the final system event of every game. Remote clients
// watch for it to know the session is over.
const EndOfGameMarker = "GAME_ENDED"

// GameConfig carries the knobs a hosted game honors. Zero values fall
// back to defaults: a nil Logger means no event recording, a zero
// NopeWindow means DefaultNopeWindow, a nil Scoreboard skips score
// persistence.
type GameConfig struct {
	Logger     log.EventLogger
	NopeWindow time.Duration
	Scoreboard *Scoreboard
}

// HostedGame drives a game to completion on the caller's goroutine.
// Controllers may live on other machines; the engine only ever talks to
// them through the Controller interface.
type HostedGame struct {
	state      *GameState
	nopeWindow time.Duration
	scoreboard *Scoreboard
}

func NewHostedGame(state *GameState, cfg GameConfig) *HostedGame {
	if cfg.Logger != nil {
		state.AttachLogger(cfg.Logger)
	}
	window := cfg.NopeWindow
	if window == 0 {
		window = DefaultNopeWindow
	}
	logrus.WithField("players", len(state.Players())).Info("game initialized")
	return &HostedGame{
		state:      state,
		nopeWindow: window,
		scoreboard: cfg.Scoreboard,
	}
}

// Run plays the game until one player remains and returns the winner.
// A context cancellation aborts mid-game with the context's error.
func (g *HostedGame) Run(ctx context.Context) (*Player, error) {
	g.showInitialHands()
	for len(g.state.ActivePlayers()) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.doTurn(ctx); err != nil {
			return nil, err
		}
	}

	winner := g.state.ActivePlayers()[0]
	g.state.OnEvent(log.Info("Congratulations, you won!"), winner)
	g.state.OnEvent(log.Info(fmt.Sprintf("You lost!\t%s won", winner)), except(g.state.Players(), winner)...)

	if g.scoreboard != nil {
		g.scoreboard.Add(winner.Name, len(g.state.ActivePlayers()))
		if err := g.scoreboard.Write(); err != nil {
			logrus.WithError(err).Error("failed to write scoreboard")
		}
		g.state.OnEvent(log.System(g.scoreboard.Render()))
	}
	g.state.OnEvent(log.System(EndOfGameMarker))
	return winner, nil
}

func (g *HostedGame) showInitialHands() {
	for _, p := range g.state.Players() {
		g.state.OnEvent(log.Info("Your initial hand is \n"+p.FormatHand()), p)
	}
}

// doTurn runs one player's turn. Effects may end the turn early (skip,
// attack) or the player ends it by drawing; either way the loop exits
// when the current player changes.
func (g *HostedGame) doTurn(ctx context.Context) error {
	current := g.state.CurrentPlayer()
	g.state.OnEvent(log.System(fmt.Sprintf("%s\tis currently playing", current)))
	for current == g.state.CurrentPlayer() {
		g.state.OnEvent(log.Info("Select a card to play"), current)
		selection, err := current.Controller.SelectCardsFrom(ctx, current.Hand())
		if err != nil {
			return err
		}
		if len(selection) == 0 {
			if err := g.endTurn(ctx); err != nil {
				return err
			}
		} else if err := g.onCardsPlayed(ctx, selection); err != nil {
			return err
		}
	}
	return nil
}

// endTurn draws the turn-ending card and handles a drawn kitten. A
// defused explosion still ends the turn; an undefused one eliminates the
// player.
func (g *HostedGame) endTurn(ctx context.Context) error {
	current := g.state.CurrentPlayer()
	card := g.state.DrawCard()
	g.state.OnEvent(log.System(fmt.Sprintf("%s\tdrawn", card)), current)
	g.state.OnEvent(log.System(fmt.Sprintf("%s\tdrew a card", current)), g.state.Opponents()...)

	exploded, err := g.resolveExplosion(ctx, current, card)
	if err != nil {
		return err
	}
	if exploded {
		logrus.WithField("player", current.Name).Info("player exploded")
		g.state.OnEvent(log.Error(fmt.Sprintf("%s\tExploded", current)), g.state.ActivePlayers()...)
		if g.scoreboard != nil {
			g.scoreboard.Add(current.Name, len(g.state.ActivePlayers()))
		}
		for _, c := range current.Hand() {
			if err := g.state.Discard(current, c); err != nil {
				return err
			}
		}
		g.state.RemoveFromGame(current)
		return nil
	}

	g.state.OnEvent(log.System(fmt.Sprintf(
		"\n%d Cards left in the deck! \n%.2f%% chance of drawing an exploding kitten\n",
		g.state.DeckSize(), g.state.ExplodingOdds()*100)))
	g.state.RecordEffect(EffectNone)
	g.state.NextTurn()
	return nil
}

// resolveExplosion reports whether the drawn card eliminates the player.
// Holding a defuse converts the explosion into a forced reinsertion of
// the kitten at an offset of the player's choosing.
func (g *HostedGame) resolveExplosion(ctx context.Context, player *Player, card Card) (bool, error) {
	if card != CardExplodingKitten {
		return false, nil
	}
	g.state.OnEvent(log.Error(fmt.Sprintf("%s\tPicked an exploding kitten!", player)), g.state.ActivePlayers()...)
	if !player.HasCard(CardDefuse) {
		return true, nil
	}

	logrus.WithField("player", player.Name).Info("explosion defused")
	g.state.OnEvent(log.System(fmt.Sprintf("%s\tDefused the explosion!", player)), g.state.ActivePlayers()...)
	if err := g.state.Discard(player, CardDefuse); err != nil {
		return false, err
	}
	offset, err := player.Controller.ReinsertOffset(ctx, g.state.DeckSize())
	if err != nil {
		return false, err
	}
	if err := g.state.ReinsertCard(player, CardExplodingKitten, offset); err != nil {
		return false, err
	}
	return false, nil
}

// onCardsPlayed classifies the selection, opens a veto window, and
// applies the effect when it survives. An invalid selection costs
// nothing: it is rejected before any card is discarded.
func (g *HostedGame) onCardsPlayed(ctx context.Context, cards []Card) error {
	current := g.state.CurrentPlayer()
	effect, ok := EffectFor(cards)
	if !ok {
		g.state.OnEvent(log.Error("Invalid card selection"), current)
		return nil
	}
	g.state.OnEvent(log.System(fmt.Sprintf("%v\tis about to be played by %s", cards, current)))
	for _, card := range cards {
		if err := g.state.Discard(current, card); err != nil {
			return err
		}
	}
	noped, err := g.isNoped(ctx, current, effect.String())
	if err != nil {
		return err
	}
	if noped {
		g.state.OnEvent(log.System(fmt.Sprintf("%s\thas been NOPE'd!", effect)))
		return nil
	}
	if err := effect.Apply(ctx, g.state); err != nil {
		return err
	}
	g.state.RecordEffect(effect.Kind())
	return nil
}

// isNoped runs the veto chain. Each round opens a fresh race among the
// active players, excluding only the most recent vetoer; a NOPE flips
// the outcome, and a NOPE on a NOPE flips it back. The chain ends when a
// round passes with no veto.
func (g *HostedGame) isNoped(ctx context.Context, actor *Player, action string) (bool, error) {
	noped := false
	excluded := actor
	for {
		race := NewNopeRace(g.nopeWindow)
		for _, p := range except(g.state.ActivePlayers(), excluded) {
			go p.Controller.AskForNope(ctx, p, action, race)
		}
		vetoer := race.Wait(ctx)
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if vetoer == nil {
			logrus.WithField("action", action).Debug("action not noped")
			return noped, nil
		}
		if err := g.state.Discard(vetoer, CardNope); err != nil {
			return false, err
		}
		g.state.OnEvent(log.Info(fmt.Sprintf("%s\tHas been noped by %s.", action, vetoer)))
		noped = !noped
		excluded = vetoer
		action = "NOPE on " + action
	}
}
