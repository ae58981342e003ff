package game

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/peterkuimelis/kittens/internal/log"
)

// ScriptedController follows a predefined script of decisions. Used in
// tests to deterministically drive the engine.
type ScriptedController struct {
	t    *testing.T
	name string

	mu sync.Mutex

	// For SelectCardsFrom prompts; a nil entry means pass
	plays   [][]Card
	playPos int

	// For SelectPlayer prompts, matched by name
	targets   []string
	targetPos int

	// For SelectCardKind prompts
	kinds   []Card
	kindPos int

	// For SelectCardOf prompts, matched by kind in the target's hand
	picks   []Card
	pickPos int

	// For ReinsertOffset prompts
	offsets   []int
	offsetPos int

	// For AskForNope prompts
	nopes   []bool
	nopePos int

	events []log.GameEvent
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddPlay(cards ...Card) *ScriptedController {
	sc.plays = append(sc.plays, cards)
	return sc
}

func (sc *ScriptedController) AddPass() *ScriptedController {
	sc.plays = append(sc.plays, nil)
	return sc
}

func (sc *ScriptedController) AddTarget(name string) *ScriptedController {
	sc.targets = append(sc.targets, name)
	return sc
}

func (sc *ScriptedController) AddKind(card Card) *ScriptedController {
	sc.kinds = append(sc.kinds, card)
	return sc
}

func (sc *ScriptedController) AddPick(card Card) *ScriptedController {
	sc.picks = append(sc.picks, card)
	return sc
}

func (sc *ScriptedController) AddOffset(offset int) *ScriptedController {
	sc.offsets = append(sc.offsets, offset)
	return sc
}

func (sc *ScriptedController) AddNope(answer bool) *ScriptedController {
	sc.nopes = append(sc.nopes, answer)
	return sc
}

// SelectCardsFrom consumes the next scripted play. Once the script runs
// out the controller always passes, so games drain to a finish by
// drawing.
func (sc *ScriptedController) SelectCardsFrom(ctx context.Context, cards []Card) ([]Card, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.playPos >= len(sc.plays) {
		return nil, nil
	}
	play := sc.plays[sc.playPos]
	sc.playPos++
	return play, nil
}

func (sc *ScriptedController) SelectPlayer(ctx context.Context, candidates []*Player) (*Player, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.targetPos < len(sc.targets) {
		name := sc.targets[sc.targetPos]
		sc.targetPos++
		for _, p := range candidates {
			if p.Name == name {
				return p, nil
			}
		}
		sc.t.Fatalf("[%s] scripted target %q not among candidates", sc.name, name)
	}
	return candidates[0], nil
}

func (sc *ScriptedController) SelectCardKind(ctx context.Context) (Card, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.kindPos < len(sc.kinds) {
		kind := sc.kinds[sc.kindPos]
		sc.kindPos++
		return kind, nil
	}
	return CardAttack, nil
}

func (sc *ScriptedController) SelectCardOf(ctx context.Context, target *Player) (Card, bool, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	hand := target.Hand()
	if len(hand) == 0 {
		return 0, false, nil
	}
	if sc.pickPos < len(sc.picks) {
		want := sc.picks[sc.pickPos]
		sc.pickPos++
		for _, c := range hand {
			if c == want {
				return c, true, nil
			}
		}
		sc.t.Fatalf("[%s] scripted pick %s not in target hand", sc.name, want)
	}
	return hand[0], true, nil
}

func (sc *ScriptedController) ReinsertOffset(ctx context.Context, deckSize int) (int, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.offsetPos < len(sc.offsets) {
		offset := sc.offsets[sc.offsetPos]
		sc.offsetPos++
		return offset, nil
	}
	return 0, nil
}

func (sc *ScriptedController) AskForNope(ctx context.Context, self *Player, action string, race *NopeRace) {
	sc.mu.Lock()
	answer := false
	if sc.nopePos < len(sc.nopes) {
		answer = sc.nopes[sc.nopePos]
		sc.nopePos++
	}
	sc.mu.Unlock()
	if answer {
		race.Offer(self)
	}
}

func (sc *ScriptedController) Notify(event log.GameEvent) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.events = append(sc.events, event)
}

// Events returns the notifications delivered to this controller so far.
func (sc *ScriptedController) Events() []log.GameEvent {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	events := make([]log.GameEvent, len(sc.events))
	copy(events, sc.events)
	return events
}

func (sc *ScriptedController) sawDescription(substr string) bool {
	for _, e := range sc.Events() {
		if strings.Contains(e.Description, substr) {
			return true
		}
	}
	return false
}

// scriptedPlayer pairs a player with its scripted controller, handing a
// deterministic hand to the player.
func scriptedPlayer(t *testing.T, name string, hand ...Card) (*Player, *ScriptedController) {
	t.Helper()
	sc := NewScriptedController(t, name)
	p := NewPlayer(name, sc)
	for _, c := range hand {
		p.AddCard(c)
	}
	return p, sc
}

// runGameToCompletion runs a hosted game with a tiny veto window and
// returns the winner plus the event log for inspection.
func runGameToCompletion(t *testing.T, players []*Player, deck *Deck, scoreboard *Scoreboard) (*Player, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g := NewHostedGame(NewGameState(players, deck), GameConfig{
		Logger:     logger,
		NopeWindow: 20 * time.Millisecond,
		Scoreboard: scoreboard,
	})
	winner, err := g.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("game error: %v", err)
	}
	return winner, logger
}
