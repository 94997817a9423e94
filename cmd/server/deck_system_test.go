package main

import (
	"testing"
)

func newTestDeck() (*GameState, *DeckSystem) {
	state := NewGameState()
	return state, NewDeckSystem(state, &MockLogger{})
}

func drawAllAces(t *testing.T, deck *DeckSystem) {
	t.Helper()
	for _, suit := range Suits {
		if err := deck.UpdateDeckState(RankAce, suit, DeckActionDraw); err != nil {
			t.Fatalf("Failed to draw ace of %s: %v", suit, err)
		}
	}
}

func TestIsRankAvailable_AcesDrawFirst(t *testing.T) {
	_, deck := newTestDeck()

	if !deck.IsRankAvailable(RankAce) {
		t.Error("Expected aces to be available at game start")
	}
	if deck.IsRankAvailable(2) {
		t.Error("Expected rank 2 to be blocked while aces remain")
	}
	if deck.IsRankAvailable(RankJack) {
		t.Error("Expected Jack to be blocked while aces remain")
	}
}

func TestIsRankAvailable_AcesNeverReturnOnceExhausted(t *testing.T) {
	state, deck := newTestDeck()
	drawAllAces(t, deck)

	if state.AcesRemaining != 0 {
		t.Fatalf("Expected 0 aces remaining, got %d", state.AcesRemaining)
	}
	if deck.IsRankAvailable(RankAce) {
		t.Error("Expected rank 1 to be unavailable after the fourth ace")
	}
	if !deck.IsRankAvailable(2) {
		t.Error("Expected rank 2 to open up once aces are exhausted")
	}
}

func TestIsRankAvailable_AllFourSuitsDrawn(t *testing.T) {
	_, deck := newTestDeck()
	drawAllAces(t, deck)

	for _, suit := range Suits {
		if err := deck.UpdateDeckState(2, suit, DeckActionDraw); err != nil {
			t.Fatalf("Failed to draw 2 of %s: %v", suit, err)
		}
	}
	if deck.IsRankAvailable(2) {
		t.Error("Expected rank 2 to be unavailable with all four suits drawn")
	}

	if err := deck.UpdateDeckState(2, Spades, DeckActionReturn); err != nil {
		t.Fatalf("Failed to return 2 of Spades: %v", err)
	}
	if !deck.IsRankAvailable(2) {
		t.Error("Expected rank 2 to be available again after a return")
	}
}

func TestIsSuitAvailable_DrawnAndKnownBottomBlocked(t *testing.T) {
	_, deck := newTestDeck()
	drawAllAces(t, deck)

	if err := deck.UpdateDeckState(3, Hearts, DeckActionDraw); err != nil {
		t.Fatalf("Failed to draw: %v", err)
	}
	if deck.IsSuitAvailable(3, Hearts) {
		t.Error("Expected drawn card to be unavailable")
	}
	if !deck.IsSuitAvailable(3, Clubs) {
		t.Error("Expected undrawn suit of same rank to be available")
	}

	if err := deck.UpdateDeckState(3, Hearts, DeckActionReturn); err != nil {
		t.Fatalf("Failed to return: %v", err)
	}
	if deck.IsSuitAvailable(3, Hearts) {
		t.Error("Expected known bottom-stack card to be unavailable before a shuffle")
	}

	deck.ShuffleThreatDeck()
	if !deck.IsSuitAvailable(3, Hearts) {
		t.Error("Expected card to be available again after the shuffle merge")
	}
}

func TestIsSuitAvailable_CountingWithIdentifiedCards(t *testing.T) {
	state, deck := newTestDeck()
	state.AcesRemaining = 0
	state.ClassicSetup = false
	state.MiddleStack = emptyRankCounts()
	state.UnknownThreatCards = map[int]int{RankUnknownNumber: 1, RankJack: 0, RankQueen: 0, RankKing: 0}
	state.UnknownBottomStack = map[int]int{RankUnknownNumber: 0, RankJack: 0, RankQueen: 0, RankKing: 0}

	// one face-down number card, nothing identified: any number suit could be it
	if !deck.IsSuitAvailable(7, Spades) {
		t.Error("Expected 7 of Spades to be possible with one unknown card")
	}

	// identify the unknown card as the 7 of Hearts without drawing it
	state.IdentifiedCards["7-Hearts"] = true
	if !deck.IsSuitAvailable(7, Hearts) {
		t.Error("Expected identified card to stay available")
	}
	if deck.IsSuitAvailable(7, Spades) {
		t.Error("Expected no open slot for 7 of Spades once the only unknown is identified")
	}
}

func TestUpdateDeckState_ReturnUnknownGoesToUnknownBottom(t *testing.T) {
	state, deck := newTestDeck()
	state.ClassicSetup = false
	state.UnknownThreatCards[RankQueen] = 1

	if err := deck.UpdateDeckState(RankQueen, SuitUnknown, DeckActionDraw); err != nil {
		t.Fatalf("Failed to draw: %v", err)
	}
	if state.UnknownThreatCards[RankQueen] != 0 {
		t.Errorf("Expected unknown Queen pool drained, got %d", state.UnknownThreatCards[RankQueen])
	}

	if err := deck.UpdateDeckState(RankQueen, SuitUnknown, DeckActionReturn); err != nil {
		t.Fatalf("Failed to return: %v", err)
	}
	if state.UnknownBottomStack[RankQueen] != 1 {
		t.Errorf("Expected unknown Queen in bottom pool, got %d", state.UnknownBottomStack[RankQueen])
	}
	if len(state.KnownBottomStackCards) != 0 {
		t.Error("Expected no position knowledge for an unknown return")
	}
}

func TestUpdateDeckState_InvalidAction(t *testing.T) {
	_, deck := newTestDeck()
	if err := deck.UpdateDeckState(2, Spades, DeckAction("discard")); err == nil {
		t.Error("Expected error for invalid action")
	}
}

func TestAddNextReserve_ClassicQueueOrderAndThreshold(t *testing.T) {
	state, deck := newTestDeck()

	for i := 0; i < 4; i++ {
		if deck.AddNextReserve() {
			t.Fatalf("Expected no endgame trigger on reserve add %d", i+1)
		}
	}
	if state.BottomStack[5] != 4 {
		t.Errorf("Expected four 5s added first, got %d", state.BottomStack[5])
	}

	for i := 4; i < 12; i++ {
		if deck.AddNextReserve() {
			t.Fatalf("Expected no endgame trigger on reserve add %d", i+1)
		}
	}
	if !deck.AddNextReserve() {
		t.Error("Expected the thirteenth reserve add to trigger the endgame")
	}
	if state.CardsAddedFromReserve != 13 {
		t.Errorf("Expected 13 cards added, got %d", state.CardsAddedFromReserve)
	}
	if len(state.ReserveQueue) != 10 {
		t.Errorf("Expected 10 cards left in the queue, got %d", len(state.ReserveQueue))
	}
}

func TestAddNextReserve_EmptyQueueIsNoOp(t *testing.T) {
	state, deck := newTestDeck()
	state.ReserveQueue = nil

	if deck.AddNextReserve() {
		t.Error("Expected no trigger from an empty queue")
	}
	if state.CardsAddedFromReserve != 0 {
		t.Errorf("Expected counter unchanged, got %d", state.CardsAddedFromReserve)
	}
}

func TestAddNextReserve_HiddenPools(t *testing.T) {
	state, deck := newTestDeck()
	state.ClassicSetup = false
	state.ReserveQueue = nil
	state.UnknownReserveCards = 2

	deck.AddNextReserve()
	if state.UnknownReserveCards != 1 {
		t.Errorf("Expected 1 unknown reserve left, got %d", state.UnknownReserveCards)
	}
	if state.UnknownBottomStack[RankUnknownNumber] != 1 {
		t.Errorf("Expected unknown card in bottom pool, got %d", state.UnknownBottomStack[RankUnknownNumber])
	}
}

func TestShuffleThreatDeck_SweepsTableAndMergesBottom(t *testing.T) {
	state, deck := newTestDeck()
	drawAllAces(t, deck)

	if err := deck.UpdateDeckState(2, Spades, DeckActionDraw); err != nil {
		t.Fatalf("Failed to draw: %v", err)
	}
	state.VisibleCards = []*LivePlayCard{NewLivePlayCard(2, Spades)}
	state.SelectedCardID = "2-Spades"
	state.BottomStack[5] = 2

	deck.ShuffleThreatDeck()

	if len(state.VisibleCards) != 0 {
		t.Errorf("Expected empty table, got %d cards", len(state.VisibleCards))
	}
	if state.SelectedCardID != "" {
		t.Error("Expected selection cleared")
	}
	if state.MiddleStack[2] != 4 {
		t.Errorf("Expected the 2 back in the middle stack (4 total), got %d", state.MiddleStack[2])
	}
	if state.MiddleStack[5] != 2 || state.BottomStack[5] != 0 {
		t.Errorf("Expected bottom 5s merged into middle, got middle=%d bottom=%d",
			state.MiddleStack[5], state.BottomStack[5])
	}
	if state.DrawnCards["2-Spades"] {
		t.Error("Expected returned card out of the drawn set")
	}
}

func TestTrophyPile_SetTopAndShuffle(t *testing.T) {
	state, deck := newTestDeck()
	seven := NewLivePlayCard(7, Hearts)
	three := NewLivePlayCard(3, Clubs)
	state.TrophyPile = []*LivePlayCard{seven, three}

	deck.SetTrophyTop(3)
	if state.TrophyTop != three {
		t.Error("Expected the 3 on top")
	}
	if state.IsTrophyTopRandomized {
		t.Error("Expected manual top to clear the randomized flag")
	}

	deck.ShuffleTrophyPile()
	if !state.IsTrophyTopRandomized {
		t.Error("Expected shuffle to set the randomized flag")
	}
	if state.TrophyTop != seven && state.TrophyTop != three {
		t.Error("Expected the top to be a pile member")
	}
}

func TestAddCardToTrophyPile_BecomesTop(t *testing.T) {
	state, deck := newTestDeck()
	deck.AddCardToTrophyPile(NewLivePlayCard(4, Diamonds))

	if len(state.TrophyPile) != 1 || state.TrophyTop == nil || state.TrophyTop.Rank != 4 {
		t.Fatalf("Expected the claimed 4 on top of the pile")
	}
	if state.IsTrophyTopRandomized {
		t.Error("Expected a claimed trophy to be a known top")
	}
}

func TestRevealHiddenTen(t *testing.T) {
	state, deck := newTestDeck()
	hidden := NewLivePlayCard(10, SuitUnknown)
	state.TrophyPile = []*LivePlayCard{
		hidden,
		NewLivePlayCard(10, Spades),
		NewLivePlayCard(10, Hearts),
		NewLivePlayCard(10, Clubs),
	}

	deck.RevealHiddenTen()
	if hidden.Suit != Diamonds {
		t.Errorf("Expected hidden ten revealed as Diamonds, got %s", hidden.Suit)
	}
}

func TestRevealHiddenTen_NotEnoughInformation(t *testing.T) {
	state, deck := newTestDeck()
	hidden := NewLivePlayCard(10, SuitUnknown)
	state.TrophyPile = []*LivePlayCard{
		hidden,
		NewLivePlayCard(10, Spades),
	}

	deck.RevealHiddenTen()
	if hidden.Suit != SuitUnknown {
		t.Errorf("Expected hidden ten to stay unknown, got %s", hidden.Suit)
	}
}

func TestAddFaceCardFromReserve_SubstitutionChain(t *testing.T) {
	state, deck := newTestDeck()

	for i := 0; i < 3; i++ {
		if !deck.AddFaceCardFromReserve(RankJack) {
			t.Fatalf("Expected Jack add %d to succeed", i+1)
		}
	}
	if state.LastAddedFaceCardRank != RankJack {
		t.Errorf("Expected last added rank Jack, got %d", state.LastAddedFaceCardRank)
	}

	// Jacks exhausted: the next request substitutes a Queen
	if !deck.AddFaceCardFromReserve(RankJack) {
		t.Fatal("Expected substitution to succeed")
	}
	if state.LastAddedFaceCardRank != RankQueen {
		t.Errorf("Expected Queen substituted for Jack, got %d", state.LastAddedFaceCardRank)
	}
	if state.BottomStack[RankJack] != 3 || state.BottomStack[RankQueen] != 1 {
		t.Errorf("Expected 3 Jacks and 1 Queen in the bottom stack, got %d and %d",
			state.BottomStack[RankJack], state.BottomStack[RankQueen])
	}
}

func TestAddFaceCardFromReserve_AllExhausted(t *testing.T) {
	state, deck := newTestDeck()
	state.FaceCardReserves = map[int]int{RankJack: 0, RankQueen: 0, RankKing: 0}

	if deck.AddFaceCardFromReserve(RankKing) {
		t.Error("Expected failure with every reserve empty")
	}
}

func TestRemoveHighestFaceCardFromDeck(t *testing.T) {
	state, deck := newTestDeck()
	state.MiddleStack[RankKing] = 1 // Jack is already there from setup

	deck.RemoveHighestFaceCardFromDeck()
	if state.MiddleStack[RankKing] != 0 {
		t.Error("Expected the King removed first")
	}
	if state.RemovedFaceCards[RankKing] != 1 {
		t.Errorf("Expected removal recorded, got %v", state.RemovedFaceCards)
	}

	deck.RemoveHighestFaceCardFromDeck()
	if state.MiddleStack[RankJack] != 0 {
		t.Error("Expected the Jack removed next")
	}
}

func TestNextValidCard_AcesInSuitOrder(t *testing.T) {
	_, deck := newTestDeck()

	card := deck.NextValidCard()
	if card.Rank != RankAce || card.Suit != Spades {
		t.Errorf("Expected Ace of Spades first, got %v", card)
	}

	if err := deck.UpdateDeckState(RankAce, Spades, DeckActionDraw); err != nil {
		t.Fatalf("Failed to draw: %v", err)
	}
	card = deck.NextValidCard()
	if card.Rank != RankAce || card.Suit != Hearts {
		t.Errorf("Expected Ace of Hearts next, got %v", card)
	}
}

func TestNextValidCard_LowestMiddleRank(t *testing.T) {
	_, deck := newTestDeck()
	drawAllAces(t, deck)

	card := deck.NextValidCard()
	if card.Rank != 2 {
		t.Errorf("Expected a 2 from the middle stack, got rank %d", card.Rank)
	}
}

func TestNextValidCard_LastUnknownMustBeTheJack(t *testing.T) {
	state, deck := newTestDeck()
	state.AcesRemaining = 0
	state.ClassicSetup = false
	state.CurrentAct = 1
	state.MiddleStack = emptyRankCounts()
	state.UnknownThreatCards = map[int]int{RankUnknownNumber: 1, RankJack: 0, RankQueen: 0, RankKing: 0}

	card := deck.NextValidCard()
	if card.Rank != RankJack {
		t.Errorf("Expected the forced Jack, got rank %d", card.Rank)
	}
}

func TestNextValidCard_GenericUnknownPastActOne(t *testing.T) {
	state, deck := newTestDeck()
	state.AcesRemaining = 0
	state.ClassicSetup = false
	state.CurrentAct = 2
	state.MiddleStack = emptyRankCounts()
	state.UnknownThreatCards = map[int]int{RankUnknownNumber: 1, RankJack: 0, RankQueen: 0, RankKing: 0}

	card := deck.NextValidCard()
	if card.Rank == RankJack {
		t.Error("Expected no forced Jack outside Act 1")
	}
}

func TestAddVisibleCard_Classic(t *testing.T) {
	state, deck := newTestDeck()
	state.ManualRank = RankAce
	state.ManualSuit = Spades

	deck.AddVisibleCard()

	if len(state.VisibleCards) != 1 || state.VisibleCards[0].ID() != "1-Spades" {
		t.Fatalf("Expected Ace of Spades on the table, got %v", state.VisibleCards)
	}
	if state.AcesRemaining != 3 {
		t.Errorf("Expected 3 aces remaining, got %d", state.AcesRemaining)
	}
	if !state.DrawnCards["1-Spades"] {
		t.Error("Expected the ace in the drawn set")
	}
}

func TestAddVisibleCard_IdentifiesUnknownPlaceholderInPlace(t *testing.T) {
	state, deck := newTestDeck()
	state.AcesRemaining = 0
	state.ClassicSetup = false
	state.MiddleStack = emptyRankCounts()
	state.UnknownThreatCards = map[int]int{RankUnknownNumber: 3, RankJack: 0, RankQueen: 0, RankKing: 0}

	// draw a face-down number card
	state.ManualRank = 2
	state.ManualSuit = SuitUnknown
	deck.AddVisibleCard()
	state.SelectedCardID = state.VisibleCards[0].ID()

	if state.UnknownThreatCards[RankUnknownNumber] != 2 {
		t.Fatalf("Expected the placeholder draw debited once, got %d", state.UnknownThreatCards[RankUnknownNumber])
	}
	if state.IdentifiedCards["2-Unknown"] {
		t.Error("Expected the placeholder to stay unidentified")
	}

	// turn it over: it was the 6 of Hearts all along
	state.ManualRank = 6
	state.ManualSuit = Hearts
	deck.AddVisibleCard()

	if len(state.VisibleCards) != 1 {
		t.Fatalf("Expected the placeholder replaced, got %d cards", len(state.VisibleCards))
	}
	if state.VisibleCards[0].ID() != "6-Hearts" {
		t.Errorf("Expected 6 of Hearts on the table, got %s", state.VisibleCards[0].ID())
	}
	if state.SelectedCardID != "6-Hearts" {
		t.Errorf("Expected selection to follow the identified card, got %q", state.SelectedCardID)
	}
	if state.UnknownThreatCards[RankUnknownNumber] != 2 {
		t.Errorf("Expected identification to leave the pool alone, got %d", state.UnknownThreatCards[RankUnknownNumber])
	}
	if !state.IdentifiedCards["6-Hearts"] {
		t.Error("Expected the card marked identified")
	}
	if state.DrawnCards["2-Unknown"] || state.IdentifiedCards["2-Unknown"] {
		t.Error("Expected the placeholder ID scrubbed after identification")
	}
	if !state.DrawnCards["6-Hearts"] {
		t.Error("Expected the identified card in the drawn set")
	}
}

func TestAddVisibleCard_Joker(t *testing.T) {
	state, deck := newTestDeck()
	state.SelectedCardID = "2-Spades"
	state.ManualJoker = RedJoker

	deck.AddVisibleCard()

	if state.SelectedJoker != RedJoker {
		t.Errorf("Expected red joker active, got %q", state.SelectedJoker)
	}
	if state.SelectedCardID != "" {
		t.Error("Expected card selection displaced by the joker")
	}
}

func TestAddVisibleCard_FinalGirlFaceCardStrike(t *testing.T) {
	state, deck := newTestDeck()
	state.AcesRemaining = 0
	state.FinalGirlMode = true
	state.ManualRank = RankJack
	state.ManualSuit = Spades

	deck.AddVisibleCard()
	if state.StrikesToAssign != 1 {
		t.Errorf("Expected a strike queued for the face card, got %d", state.StrikesToAssign)
	}
}

func TestSelectCard_ClearsJoker(t *testing.T) {
	state, deck := newTestDeck()
	state.SelectedJoker = BlackJoker

	deck.SelectCard("4-Clubs")
	if state.SelectedCardID != "4-Clubs" {
		t.Errorf("Expected selection recorded, got %q", state.SelectedCardID)
	}
	if state.SelectedJoker != JokerNone {
		t.Error("Expected joker selection cleared")
	}
}
