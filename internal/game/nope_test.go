package game

import (
	"context"
	"testing"
	"time"
)

func TestNopeRaceFirstOfferWins(t *testing.T) {
	alice, _ := scriptedPlayer(t, "alice")
	bob, _ := scriptedPlayer(t, "bob")

	race := NewNopeRace(time.Second)
	if !race.Offer(alice) {
		t.Fatal("first offer should win")
	}
	if race.Offer(bob) {
		t.Fatal("second offer should lose")
	}
	if got := race.Wait(context.Background()); got != alice {
		t.Fatalf("winner = %v, want alice", got)
	}
}

func TestNopeRaceTimeout(t *testing.T) {
	race := NewNopeRace(10 * time.Millisecond)
	if got := race.Wait(context.Background()); got != nil {
		t.Fatalf("winner = %v, want none", got)
	}
}

func TestNopeRaceClosedAfterWait(t *testing.T) {
	alice, _ := scriptedPlayer(t, "alice")

	race := NewNopeRace(time.Millisecond)
	race.Wait(context.Background())
	if race.Offer(alice) {
		t.Fatal("offer after the window closed should be discarded")
	}
}

func TestNopeRaceContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	race := NewNopeRace(time.Minute)
	if got := race.Wait(ctx); got != nil {
		t.Fatalf("winner = %v, want none on cancellation", got)
	}
}

// nope parity through the hosted game: the veto chain flips the outcome
// on each link.
func TestNopeParity(t *testing.T) {
	cases := []struct {
		name       string
		bobNopes   bool
		aliceNopes bool
		bobAgain   bool
		skipped    bool
	}{
		{"unanswered skip resolves", false, false, false, true},
		{"single nope cancels", true, false, false, false},
		{"nope on a nope restores", true, true, false, true},
		{"third nope cancels again", true, true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aliceHand := []Card{CardSkip}
			if tc.aliceNopes {
				aliceHand = append(aliceHand, CardNope)
			}
			alice, aliceSC := scriptedPlayer(t, "alice", aliceHand...)
			bobHand := []Card{}
			if tc.bobNopes {
				bobHand = append(bobHand, CardNope)
			}
			if tc.bobAgain {
				bobHand = append(bobHand, CardNope)
			}
			bob, bobSC := scriptedPlayer(t, "bob", bobHand...)

			aliceSC.AddPlay(CardSkip)
			bobSC.AddNope(tc.bobNopes)
			if tc.bobNopes {
				aliceSC.AddNope(tc.aliceNopes)
			}
			if tc.aliceNopes {
				bobSC.AddNope(tc.bobAgain)
			}

			state := NewGameState([]*Player{alice, bob}, NewDeck(nil))
			g := NewHostedGame(state, GameConfig{NopeWindow: 20 * time.Millisecond})
			if err := g.onCardsPlayed(context.Background(), []Card{CardSkip}); err != nil {
				t.Fatalf("onCardsPlayed: %v", err)
			}

			skipResolved := state.CurrentPlayer() == bob
			if skipResolved != tc.skipped {
				t.Fatalf("skip resolved = %v, want %v", skipResolved, tc.skipped)
			}
			if tc.skipped != aliceSC.sawDescription("skipped a turn") {
				t.Fatalf("skip announcement mismatch")
			}
		})
	}
}

// the nope card is spent even when the veto itself gets vetoed
func TestNopeCardsAreDiscarded(t *testing.T) {
	alice, aliceSC := scriptedPlayer(t, "alice", CardSkip, CardNope)
	bob, bobSC := scriptedPlayer(t, "bob", CardNope)

	aliceSC.AddPlay(CardSkip)
	bobSC.AddNope(true)
	aliceSC.AddNope(true)
	bobSC.AddNope(false)

	state := NewGameState([]*Player{alice, bob}, NewDeck(nil))
	g := NewHostedGame(state, GameConfig{NopeWindow: 20 * time.Millisecond})
	if err := g.onCardsPlayed(context.Background(), []Card{CardSkip}); err != nil {
		t.Fatalf("onCardsPlayed: %v", err)
	}

	if alice.HasCard(CardNope) || bob.HasCard(CardNope) {
		t.Fatal("nope cards should be discarded after the chain")
	}
	if got := state.DiscardedCount(CardNope); got != 2 {
		t.Fatalf("discarded nopes = %d, want 2", got)
	}
}
