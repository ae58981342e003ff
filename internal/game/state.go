package game

import (
	"fmt"

	"github.com/peterkuimelis/kittens/internal/log"
)

// GameState owns everything a running game mutates: the fixed player list,
// the rotating turn order of still-active players, the deck, the discard
// pile, and the effect history. It is mutated only by the engine goroutine;
// effects receive it by reference and call its mutation methods.
type GameState struct {
	players []*Player
	turns   []*Player // front = current player; duplicates encode extra turns
	deck    *Deck
	pile    *DiscardPile
	history []EffectKind // most recent first
	logger  log.EventLogger
}

// NewGameState builds the state for an already-dealt player list and deck.
func NewGameState(players []*Player, deck *Deck) *GameState {
	s := &GameState{
		players: make([]*Player, len(players)),
		turns:   make([]*Player, len(players)),
		deck:    deck,
		pile:    NewDiscardPile(),
	}
	copy(s.players, players)
	copy(s.turns, players)
	return s
}

// AttachLogger records every broadcast event in the given logger.
func (s *GameState) AttachLogger(l log.EventLogger) {
	s.logger = l
}

// Players returns the full player list, eliminated players included.
func (s *GameState) Players() []*Player {
	players := make([]*Player, len(s.players))
	copy(players, s.players)
	return players
}

// ActivePlayers returns the distinct players still in turn order,
// preserving turn order.
func (s *GameState) ActivePlayers() []*Player {
	seen := make(map[*Player]bool, len(s.turns))
	var active []*Player
	for _, p := range s.turns {
		if !seen[p] {
			seen[p] = true
			active = append(active, p)
		}
	}
	return active
}

// CurrentPlayer returns the head of the turn order. Calling it with an
// empty turn order is a contract violation: the engine loop stops while at
// least one player remains.
func (s *GameState) CurrentPlayer() *Player {
	if len(s.turns) == 0 {
		panic("game: current player requested on empty turn order")
	}
	return s.turns[0]
}

// Opponents returns every player except the current one, eliminated
// players included (they still receive events).
func (s *GameState) Opponents() []*Player {
	current := s.CurrentPlayer()
	var opponents []*Player
	for _, p := range s.players {
		if p != current {
			opponents = append(opponents, p)
		}
	}
	return opponents
}

// ActiveOpponents returns the still-active players except the current one.
func (s *GameState) ActiveOpponents() []*Player {
	current := s.CurrentPlayer()
	var opponents []*Player
	for _, p := range s.ActivePlayers() {
		if p != current {
			opponents = append(opponents, p)
		}
	}
	return opponents
}

// NextTurn removes the head of the turn order. The removed player is
// re-enqueued at the tail only when the new head is a different player:
// duplicated heads are pending extra turns being consumed.
func (s *GameState) NextTurn() {
	current := s.turns[0]
	s.turns = s.turns[1:]
	if len(s.turns) > 0 && s.turns[0] != current {
		s.turns = append(s.turns, current)
	}
}

// AddTurns duplicates the current head n times at the front, imposing n
// extra turns on that player.
func (s *GameState) AddTurns(n int) {
	head := s.CurrentPlayer()
	for i := 0; i < n; i++ {
		s.turns = append([]*Player{head}, s.turns...)
	}
}

// RemoveFromGame purges every occurrence of the player from the turn
// order. Idempotent. The player stays in the static player list for
// end-of-game accounting.
func (s *GameState) RemoveFromGame(player *Player) {
	kept := s.turns[:0]
	for _, p := range s.turns {
		if p != player {
			kept = append(kept, p)
		}
	}
	s.turns = kept
}

// DrawCard pops the deck front into the current player's hand.
func (s *GameState) DrawCard() Card {
	card := s.deck.Draw()
	s.CurrentPlayer().AddCard(card)
	return card
}

func (s *GameState) DeckSize() int {
	return s.deck.Size()
}

// PeekDeck returns the deck cards in [from, to) in draw order.
func (s *GameState) PeekDeck(from, to int) []Card {
	return s.deck.Peek(from, to)
}

func (s *GameState) ExplodingOdds() float64 {
	return s.deck.ExplodingOdds()
}

// ShuffleDeck randomizes the deck order in place.
func (s *GameState) ShuffleDeck() {
	s.deck.Shuffle()
}

// Discard moves a card from the player's hand onto the discard pile.
func (s *GameState) Discard(player *Player, card Card) error {
	if !player.RemoveCard(card) {
		return fmt.Errorf("%s does not hold %s", player.Name, card)
	}
	s.pile.Push(card)
	return nil
}

// TransferCard moves a card from one player's hand to another's.
func (s *GameState) TransferCard(from, to *Player, card Card) error {
	if !from.RemoveCard(card) {
		return fmt.Errorf("%s does not hold %s", from.Name, card)
	}
	to.AddCard(card)
	return nil
}

// TransferFromPile moves one card of the given kind from the discard pile
// into the player's hand.
func (s *GameState) TransferFromPile(player *Player, card Card) error {
	if err := s.pile.Extract(card); err != nil {
		return err
	}
	player.AddCard(card)
	return nil
}

// ReinsertCard moves a card from the player's hand back into the deck at
// the given offset.
func (s *GameState) ReinsertCard(player *Player, card Card, offset int) error {
	if !player.RemoveCard(card) {
		return fmt.Errorf("%s does not hold %s", player.Name, card)
	}
	s.deck.Insert(card, offset)
	return nil
}

// DiscardedKinds returns the distinct kinds currently in the discard pile.
func (s *GameState) DiscardedKinds() []Card {
	return s.pile.Kinds()
}

// DiscardPileEmpty reports whether the discard pile holds no cards.
func (s *GameState) DiscardPileEmpty() bool {
	return s.pile.Empty()
}

// DiscardedCount returns how many cards of the kind the pile holds.
func (s *GameState) DiscardedCount(card Card) int {
	return s.pile.Count(card)
}

// RecordEffect appends an effect kind to the history, most recent first.
func (s *GameState) RecordEffect(kind EffectKind) {
	s.history = append([]EffectKind{kind}, s.history...)
}

// History returns the effect history, most recent first.
func (s *GameState) History() []EffectKind {
	history := make([]EffectKind, len(s.history))
	copy(history, s.history)
	return history
}

// ConsecutiveEffects counts how many entries at the front of the history
// are of the given kind, stopping at the first mismatch.
func (s *GameState) ConsecutiveEffects(kind EffectKind) int {
	count := 0
	for _, k := range s.history {
		if k != kind {
			break
		}
		count++
	}
	return count
}

// OnEvent fans an event out to the given players, or to every player when
// no targets are named. Events also land in the attached logger, once.
func (s *GameState) OnEvent(event log.GameEvent, targets ...*Player) {
	if s.logger != nil {
		s.logger.Log(event)
	}
	if len(targets) == 0 {
		targets = s.players
	}
	for _, p := range targets {
		p.Controller.Notify(event)
	}
}
