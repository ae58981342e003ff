package game

import "testing"

func TestDeckDrawOrder(t *testing.T) {
	d := NewDeck([]Card{CardAttack, CardSkip, CardNope})
	if got := d.Draw(); got != CardAttack {
		t.Fatalf("first draw = %s, want ATTACK", got)
	}
	if got := d.Draw(); got != CardSkip {
		t.Fatalf("second draw = %s, want SKIP", got)
	}
	if d.Size() != 1 {
		t.Fatalf("size after two draws = %d, want 1", d.Size())
	}
}

func TestDeckInsert(t *testing.T) {
	d := NewDeck([]Card{CardAttack, CardSkip})

	d.Insert(CardExplodingKitten, 0)
	if got := d.Peek(0, 1); got[0] != CardExplodingKitten {
		t.Fatalf("top card = %s, want EXPLODING_KITTEN", got[0])
	}

	d.Insert(CardNope, d.Size())
	if got := d.Peek(d.Size()-1, d.Size()); got[0] != CardNope {
		t.Fatalf("bottom card = %s, want NOPE", got[0])
	}
}

func TestDeckInsertOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range insert")
		}
	}()
	d := NewDeck([]Card{CardAttack})
	d.Insert(CardNope, 5)
}

func TestDeckPeekClamped(t *testing.T) {
	d := NewDeck([]Card{CardAttack, CardSkip})
	top := d.Peek(0, 3)
	if len(top) != 2 {
		t.Fatalf("peek past the end returned %d cards, want 2", len(top))
	}
	if top[0] != CardAttack || top[1] != CardSkip {
		t.Fatalf("peek = %v, want draw order", top)
	}
	if d.Size() != 2 {
		t.Fatalf("peek consumed cards: size = %d", d.Size())
	}
}

func TestDeckExplodingOdds(t *testing.T) {
	d := NewDeck([]Card{CardExplodingKitten, CardAttack, CardSkip, CardNope})
	if got := d.ExplodingOdds(); got != 0.25 {
		t.Fatalf("odds = %v, want 0.25", got)
	}
	empty := NewDeck(nil)
	if got := empty.ExplodingOdds(); got != 0 {
		t.Fatalf("odds of empty deck = %v, want 0", got)
	}
}

func TestDiscardPileExtract(t *testing.T) {
	p := NewDiscardPile()
	p.Push(CardNope)
	p.Push(CardNope)
	p.Push(CardAttack)

	if err := p.Extract(CardNope); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := p.Count(CardNope); got != 1 {
		t.Fatalf("count after extract = %d, want 1", got)
	}
	if err := p.Extract(CardSkip); err == nil {
		t.Fatal("expected error extracting absent kind")
	}
}

func TestDiscardPileKindsSorted(t *testing.T) {
	p := NewDiscardPile()
	p.Push(CardSkip)
	p.Push(CardAttack)
	p.Push(CardSkip)

	kinds := p.Kinds()
	if len(kinds) != 2 || kinds[0] != CardAttack || kinds[1] != CardSkip {
		t.Fatalf("kinds = %v, want [ATTACK SKIP]", kinds)
	}
}
