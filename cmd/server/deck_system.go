package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// DeckAction is one of the three pool transitions the table can report.
type DeckAction string

const (
	DeckActionDraw   DeckAction = "draw"
	DeckActionAdd    DeckAction = "add"
	DeckActionReturn DeckAction = "return"
)

// DeckSystem tracks the physical card pools: the threat deck's middle and
// bottom stacks, the reserve queue, the trophy pile, and the face-card
// reserves. Because the table may play with unidentified cards, every pool
// has a known half (per-rank counts plus card IDs) and an unknown half
// (counts bucketed by face rank or the generic number key).
type DeckSystem struct {
	state  *GameState
	logger Logger
}

// NewDeckSystem creates a deck system over the shared game state.
func NewDeckSystem(state *GameState, logger Logger) *DeckSystem {
	return &DeckSystem{
		state:  state,
		logger: logger,
	}
}

// cardIDRank parses the rank out of a "<rank>-<suit>" card ID.
func cardIDRank(id string) int {
	head, _, ok := strings.Cut(id, "-")
	if !ok {
		return 0
	}
	rank, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return rank
}

// IsRankAvailable reports whether any card of the given rank can still be
// drawn from the threat deck. While Aces remain they are drawn exclusively;
// once the fourth Ace is gone the rank never comes back.
func (ds *DeckSystem) IsRankAvailable(rank int) bool {
	gs := ds.state

	if gs.AcesRemaining > 0 {
		return rank == RankAce
	}
	if rank == RankAce {
		return false
	}

	drawn := 0
	for _, suit := range Suits {
		if gs.DrawnCards[Card{Rank: rank, Suit: suit}.ID()] {
			drawn++
		}
	}
	if drawn >= len(Suits) {
		return false
	}

	if gs.MiddleStack[rank] > 0 || gs.BottomStack[rank] > 0 {
		return true
	}
	if gs.UnknownThreatCards[rank] > 0 || gs.UnknownBottomStack[rank] > 0 {
		return true
	}
	if rank <= 10 && (gs.UnknownThreatCards[RankUnknownNumber] > 0 || gs.UnknownBottomStack[RankUnknownNumber] > 0) {
		return true
	}
	return false
}

// IsSuitAvailable reports whether the specific rank/suit card can still be
// drawn. A card that has been drawn, parked in the known bottom stack, or
// removed from the game is never available; an identified card is available
// as long as its rank is. For everything else the check is a counting
// argument: the unidentified copies of a rank must leave an open slot after
// the already-identified ones are accounted for.
func (ds *DeckSystem) IsSuitAvailable(rank int, suit Suit) bool {
	gs := ds.state
	id := Card{Rank: rank, Suit: suit}.ID()

	if rank > 10 && gs.RemovedFaceCardIDs[id] {
		return false
	}
	if gs.DrawnCards[id] {
		return false
	}
	if gs.KnownBottomStackCards[id] {
		return false
	}
	if gs.IdentifiedCards[id] {
		return true
	}

	totalActive := gs.MiddleStack[rank] + gs.BottomStack[rank] +
		gs.UnknownThreatCards[rank] + gs.UnknownBottomStack[rank]
	if rank <= 10 {
		totalActive += gs.UnknownThreatCards[RankUnknownNumber] + gs.UnknownBottomStack[RankUnknownNumber]
	}

	activeIdentified := 0
	for other := range gs.IdentifiedCards {
		if cardIDRank(other) != rank {
			continue
		}
		if gs.DrawnCards[other] || gs.KnownBottomStackCards[other] {
			continue
		}
		activeIdentified++
	}

	return totalActive-activeIdentified > 0
}

// UpdateDeckState applies one reported pool transition for a card. Draws
// consume from the top-most pool that could hold the card; returns go to
// the bottom stack, with identified returns remembered by ID so they cannot
// be staged again before a shuffle.
func (ds *DeckSystem) UpdateDeckState(rank int, suit Suit, action DeckAction) error {
	if rank < 0 || rank > RankKing {
		return fmt.Errorf("invalid rank %d", rank)
	}
	gs := ds.state
	id := Card{Rank: rank, Suit: suit}.ID()

	switch action {
	case DeckActionDraw:
		gs.DrawnCards[id] = true
		switch {
		case rank == RankAce:
			if gs.AcesRemaining > 0 {
				gs.AcesRemaining--
			}
		case suit == SuitUnknown && rank > 10:
			if gs.UnknownThreatCards[rank] > 0 {
				gs.UnknownThreatCards[rank]--
			} else if gs.UnknownBottomStack[rank] > 0 {
				gs.UnknownBottomStack[rank]--
			}
		case suit == SuitUnknown:
			if gs.UnknownThreatCards[RankUnknownNumber] > 0 {
				gs.UnknownThreatCards[RankUnknownNumber]--
			} else if gs.UnknownBottomStack[RankUnknownNumber] > 0 {
				gs.UnknownBottomStack[RankUnknownNumber]--
			}
		default:
			if gs.MiddleStack[rank] > 0 {
				gs.MiddleStack[rank]--
			} else if gs.BottomStack[rank] > 0 {
				gs.BottomStack[rank]--
			}
		}

	case DeckActionAdd:
		gs.BottomStack[rank]++

	case DeckActionReturn:
		delete(gs.DrawnCards, id)
		switch {
		case rank == RankAce:
			gs.BottomStack[RankAce]++
			gs.KnownBottomStackCards[id] = true
		case suit == SuitUnknown && rank > 10:
			gs.UnknownBottomStack[rank]++
		case suit == SuitUnknown:
			gs.UnknownBottomStack[RankUnknownNumber]++
		default:
			gs.BottomStack[rank]++
			gs.KnownBottomStackCards[id] = true
		}

	default:
		return fmt.Errorf("invalid deck action %q", action)
	}

	return nil
}

// AddNextReserve moves the next reserve card into the bottom of the threat
// deck. It returns true when the move crossed the endgame threshold and
// Act 3 should begin.
func (ds *DeckSystem) AddNextReserve() bool {
	gs := ds.state

	if gs.ClassicSetup {
		if len(gs.ReserveQueue) > 0 {
			rank := gs.ReserveQueue[0]
			gs.ReserveQueue = gs.ReserveQueue[1:]
			gs.BottomStack[rank]++
			gs.CardsAddedFromReserve++
		}
	} else {
		if gs.UnknownReserveCards > 0 {
			gs.UnknownReserveCards--
			gs.UnknownBottomStack[RankUnknownNumber]++
			gs.CardsAddedFromReserve++
		}
	}

	return gs.CardsAddedFromReserve >= act3ReserveThreshold && gs.CurrentAct < 3
}

// ShuffleThreatDeck sweeps the table into the deck and merges the bottom
// stack back into the middle. Identified bottom-stack cards lose their
// position knowledge in the merge.
func (ds *DeckSystem) ShuffleThreatDeck() {
	gs := ds.state

	for _, card := range gs.VisibleCards {
		if err := ds.UpdateDeckState(card.Rank, card.Suit, DeckActionReturn); err != nil {
			ds.logger.Printf("shuffle: failed to return %s: %v", card.ID(), err)
		}
	}
	gs.VisibleCards = nil
	gs.SelectedCardID = ""

	for rank := 1; rank <= RankKing; rank++ {
		gs.MiddleStack[rank] += gs.BottomStack[rank]
		gs.BottomStack[rank] = 0
	}
	for _, rank := range []int{RankUnknownNumber, RankJack, RankQueen, RankKing} {
		gs.UnknownThreatCards[rank] += gs.UnknownBottomStack[rank]
		gs.UnknownBottomStack[rank] = 0
	}

	gs.KnownBottomStackCards = make(map[string]bool)
}

// ShuffleTrophyPile picks a random trophy-pile member as the new top card.
func (ds *DeckSystem) ShuffleTrophyPile() {
	gs := ds.state
	if len(gs.TrophyPile) == 0 {
		return
	}
	gs.TrophyTop = gs.TrophyPile[rand.Intn(len(gs.TrophyPile))]
	gs.IsTrophyTopRandomized = true
}

// SetTrophyTop records which rank the table saw on top of the trophy pile
// after a physical shuffle.
func (ds *DeckSystem) SetTrophyTop(rank int) {
	gs := ds.state
	for _, card := range gs.TrophyPile {
		if card.Rank == rank {
			gs.TrophyTop = card
			gs.IsTrophyTopRandomized = false
			return
		}
	}
}

// AddCardToTrophyPile places a claimed card on top of the trophy pile. The
// card stays in the drawn set: trophies never re-enter the threat deck.
func (ds *DeckSystem) AddCardToTrophyPile(card *LivePlayCard) {
	gs := ds.state
	gs.TrophyPile = append(gs.TrophyPile, card)
	gs.TrophyTop = card
	gs.IsTrophyTopRandomized = false
}

// RevealHiddenTen resolves the suit of the trophy pile's unidentified ten
// by elimination, once the other three tens are known.
func (ds *DeckSystem) RevealHiddenTen() {
	gs := ds.state

	var hidden *LivePlayCard
	seen := make(map[Suit]bool)
	for _, card := range gs.TrophyPile {
		if card.Rank != 10 {
			continue
		}
		if card.Suit == SuitUnknown {
			hidden = card
		} else {
			seen[card.Suit] = true
		}
	}
	if hidden == nil || len(seen) != len(Suits)-1 {
		return
	}
	for _, suit := range Suits {
		if !seen[suit] {
			hidden.Suit = suit
			return
		}
	}
}

// AddFaceCardFromReserve moves a face card from the reserves into the deck,
// walking the substitution chain when the requested rank is exhausted. It
// returns false only when every face reserve is empty.
func (ds *DeckSystem) AddFaceCardFromReserve(target int) bool {
	gs := ds.state

	for _, rank := range faceCardSubstitutions[target] {
		if gs.FaceCardReserves[rank] == 0 {
			continue
		}
		gs.FaceCardReserves[rank]--
		gs.LastAddedFaceCardRank = rank
		if gs.ClassicSetup {
			gs.BottomStack[rank]++
		} else {
			gs.UnknownBottomStack[rank]++
		}
		return true
	}
	return false
}

// RemoveHighestFaceCardFromDeck permanently removes the highest face card
// still in the threat deck, middle stack before bottom, Kings first.
func (ds *DeckSystem) RemoveHighestFaceCardFromDeck() {
	gs := ds.state
	faceRanks := []int{RankKing, RankQueen, RankJack}

	pools := []map[int]int{gs.MiddleStack, gs.BottomStack}
	if !gs.ClassicSetup {
		pools = []map[int]int{gs.UnknownThreatCards, gs.UnknownBottomStack}
	}
	for _, pool := range pools {
		for _, rank := range faceRanks {
			if pool[rank] > 0 {
				pool[rank]--
				gs.RemovedFaceCards[rank]++
				return
			}
		}
	}
}

// NextValidCard suggests the card the threat deck should produce next:
// Aces first, then the lowest known middle-stack rank with an open suit,
// then unidentified face cards, then a generic unknown. In Act 1 a last
// unidentified card must be the Jack, since the Jack is shuffled in face
// down and cannot have left the deck yet.
func (ds *DeckSystem) NextValidCard() Card {
	gs := ds.state

	if gs.AcesRemaining > 0 {
		for _, suit := range Suits {
			if !gs.DrawnCards[Card{Rank: RankAce, Suit: suit}.ID()] {
				return Card{Rank: RankAce, Suit: suit}
			}
		}
	}

	for rank := 2; rank <= RankKing; rank++ {
		if gs.MiddleStack[rank] == 0 {
			continue
		}
		for _, suit := range Suits {
			if ds.IsSuitAvailable(rank, suit) {
				return Card{Rank: rank, Suit: suit}
			}
		}
	}

	for _, rank := range []int{RankJack, RankQueen, RankKing} {
		if gs.UnknownThreatCards[rank] > 0 {
			return Card{Rank: rank, Suit: Spades}
		}
	}

	if gs.UnknownThreatCards[RankUnknownNumber] > 0 {
		if gs.CurrentAct == 1 && gs.UnknownThreatCards[RankUnknownNumber] == 1 && !ds.jackSeen() {
			return Card{Rank: RankJack, Suit: Spades}
		}
		return Card{Rank: 2, Suit: Spades}
	}

	return Card{Rank: RankAce, Suit: Spades}
}

// jackSeen reports whether any Jack has surfaced: identified, drawn, or
// sitting in a known pool.
func (ds *DeckSystem) jackSeen() bool {
	gs := ds.state
	if gs.MiddleStack[RankJack] > 0 || gs.BottomStack[RankJack] > 0 {
		return true
	}
	for _, suit := range Suits {
		id := Card{Rank: RankJack, Suit: suit}.ID()
		if gs.DrawnCards[id] || gs.IdentifiedCards[id] {
			return true
		}
	}
	return false
}

// AddVisibleCard places the staged manual card on the table. A staged joker
// displaces any card selection. When an unidentified placeholder is already
// face up, the manual card identifies it in place instead of adding a second
// card: the placeholder's draw already debited a pool slot, so identification
// only rebinds the card ID. A fresh hidden-identity draw debits the unknown
// pools unless the card was identified earlier.
func (ds *DeckSystem) AddVisibleCard() {
	gs := ds.state

	if gs.ManualJoker != JokerNone {
		gs.SelectedJoker = gs.ManualJoker
		gs.SelectedCardID = ""
		return
	}

	rank, suit := gs.ManualRank, gs.ManualSuit
	card := NewLivePlayCard(rank, suit)
	alreadyIdentified := gs.IdentifiedCards[card.ID()]

	replacedID := ""
	for i, visible := range gs.VisibleCards {
		if visible.Known() {
			continue
		}
		if gs.SelectedCardID == visible.ID() {
			gs.SelectedCardID = card.ID()
		}
		replacedID = visible.ID()
		gs.VisibleCards[i] = card
		break
	}
	if replacedID == "" {
		gs.VisibleCards = append(gs.VisibleCards, card)
	}

	if !gs.ClassicSetup && rank != RankAce {
		switch {
		case replacedID != "":
			delete(gs.DrawnCards, replacedID)
		case alreadyIdentified:
			if gs.MiddleStack[rank] > 0 {
				gs.MiddleStack[rank]--
			} else if gs.BottomStack[rank] > 0 {
				gs.BottomStack[rank]--
			}
		case rank > 10:
			if gs.UnknownThreatCards[rank] > 0 {
				gs.UnknownThreatCards[rank]--
			} else if gs.UnknownBottomStack[rank] > 0 {
				gs.UnknownBottomStack[rank]--
			}
		default:
			if gs.UnknownThreatCards[RankUnknownNumber] > 0 {
				gs.UnknownThreatCards[RankUnknownNumber]--
			} else if gs.UnknownBottomStack[RankUnknownNumber] > 0 {
				gs.UnknownBottomStack[RankUnknownNumber]--
			}
		}
		if card.Known() {
			gs.IdentifiedCards[card.ID()] = true
		}
		gs.DrawnCards[card.ID()] = true
	} else {
		if err := ds.UpdateDeckState(rank, suit, DeckActionDraw); err != nil {
			ds.logger.Printf("add visible card: %v", err)
		}
	}

	if gs.FinalGirlMode && card.IsFace() {
		gs.StrikesToAssign++
	}
}

// SelectCard marks a table card as the scene's active threat, clearing any
// joker selection.
func (ds *DeckSystem) SelectCard(id string) {
	gs := ds.state
	gs.SelectedCardID = id
	gs.SelectedJoker = JokerNone
}
