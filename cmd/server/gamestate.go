package main

import "sync"

// GameState is the authoritative record of every card pool, the character
// roster, and the phase cursor for one table session. All mutation flows
// through the deck and phase systems; presentation layers may only write the
// Manual* staging fields.
type GameState struct {
	// Core scene data
	VisibleCards   []*LivePlayCard
	SelectedCardID string
	FalloutCard    *LivePlayCard
	FalloutSuccess bool
	SelectedJoker  JokerColor

	// Game stats
	Characters      []*Character
	StrikesToAssign int
	WeaknessesFound []Suit
	IsEndgame       bool
	CurrentAct      int
	SelectedPlayset string
	CurrentPhase    Phase

	// Rules modules resolved from the selected playset at game start
	ClassicSetup  bool
	FinalGirlMode bool

	// Genre points
	TableGenrePoints    int
	PlayerGenrePoints   int
	IsGenrePointUsed    bool
	IsGenrePointAwarded bool

	// Manual-entry staging, written directly by the presentation layer
	ManualSuit  Suit
	ManualRank  int
	ManualJoker JokerColor

	// Deck pools
	AcesRemaining       int
	MiddleStack         map[int]int
	BottomStack         map[int]int
	ReserveQueue        []int
	UnknownThreatCards  map[int]int
	UnknownBottomStack  map[int]int
	UnknownReserveCards int
	FaceCardReserves    map[int]int

	// Identity knowledge
	DrawnCards            map[string]bool
	KnownBottomStackCards map[string]bool
	IdentifiedCards       map[string]bool
	RemovedFaceCardIDs    map[string]bool
	RemovedFaceCards      map[int]int
	LastAddedFaceCardRank int

	// Trophy pile
	TrophyPile            []*LivePlayCard
	TrophyTop             *LivePlayCard
	IsTrophyTopRandomized bool

	// Resolution state
	SacrificeConfirmed bool
	Dice               DiceState

	// Endgame bookkeeping
	IsEndgameInitialized  bool
	IsGameWon             bool
	IsBlackJokerRemoved   bool
	JokersAdded           bool
	CardsAddedFromReserve int

	// FIFO queue of act-setup screens still to show
	PendingActSetups []string

	Lock sync.Mutex
}

// defaultReserveQueue returns the classic-mode reserve order: 5s through 9s
// in rank order, then the three tens (the fourth ten seeds the trophy pile).
func defaultReserveQueue() []int {
	return []int{5, 5, 5, 5, 6, 6, 6, 6, 7, 7, 7, 7, 8, 8, 8, 8, 9, 9, 9, 9, 10, 10, 10}
}

// NewGameState returns a state with every pool at its documented initial
// value: four Aces up top, the 2s-4s and a single Jack in the middle stack,
// the classic reserve queue, and full face-card reserves.
func NewGameState() *GameState {
	state := &GameState{}
	state.resetAll()
	return state
}

// resetAll restores every field to its initial value. This backs FullReset;
// systems hold a pointer to the GameState, so the struct is reset in place.
func (gs *GameState) resetAll() {
	gs.VisibleCards = nil
	gs.SelectedCardID = ""
	gs.FalloutCard = nil
	gs.FalloutSuccess = false
	gs.SelectedJoker = JokerNone

	gs.Characters = NewCharacterRoster()
	gs.StrikesToAssign = 0
	gs.WeaknessesFound = nil
	gs.IsEndgame = false
	gs.CurrentAct = 1
	gs.SelectedPlayset = ""
	gs.CurrentPhase = PhaseWelcome

	gs.ClassicSetup = true
	gs.FinalGirlMode = false

	gs.TableGenrePoints = 13
	gs.PlayerGenrePoints = 0
	gs.IsGenrePointUsed = false
	gs.IsGenrePointAwarded = false

	gs.ManualSuit = Spades
	gs.ManualRank = RankAce
	gs.ManualJoker = JokerNone

	gs.AcesRemaining = 4
	gs.MiddleStack = map[int]int{
		1: 0, 2: 4, 3: 4, 4: 4, 5: 0, 6: 0, 7: 0, 8: 0, 9: 0, 10: 0, 11: 1, 12: 0, 13: 0,
	}
	gs.BottomStack = emptyRankCounts()
	gs.ReserveQueue = defaultReserveQueue()
	gs.UnknownThreatCards = map[int]int{RankUnknownNumber: 0, RankJack: 0, RankQueen: 0, RankKing: 0}
	gs.UnknownBottomStack = map[int]int{RankUnknownNumber: 0, RankJack: 0, RankQueen: 0, RankKing: 0}
	gs.UnknownReserveCards = 0
	gs.FaceCardReserves = map[int]int{RankJack: 3, RankQueen: 4, RankKing: 4}

	gs.DrawnCards = make(map[string]bool)
	gs.KnownBottomStackCards = make(map[string]bool)
	gs.IdentifiedCards = make(map[string]bool)
	gs.RemovedFaceCardIDs = make(map[string]bool)
	gs.RemovedFaceCards = map[int]int{RankJack: 0, RankQueen: 0, RankKing: 0}
	gs.LastAddedFaceCardRank = 0

	gs.TrophyPile = nil
	gs.TrophyTop = nil
	gs.IsTrophyTopRandomized = true

	gs.SacrificeConfirmed = false
	gs.Dice.Clear()

	gs.IsEndgameInitialized = false
	gs.IsGameWon = false
	gs.IsBlackJokerRemoved = false
	gs.JokersAdded = false
	gs.CardsAddedFromReserve = 0

	gs.PendingActSetups = nil
}

func emptyRankCounts() map[int]int {
	counts := make(map[int]int, 13)
	for r := 1; r <= 13; r++ {
		counts[r] = 0
	}
	return counts
}

// ActiveCard returns the single card being resolved this scene. During
// fallout the persisted fallout card wins (the mandatory face-card shuffle
// has already swept the table); an active joker displaces any table card.
func (gs *GameState) ActiveCard() *LivePlayCard {
	if gs.CurrentPhase == PhaseFallout {
		return gs.FalloutCard
	}
	if gs.SelectedJoker != JokerNone {
		return nil
	}
	if gs.SelectedCardID == "" {
		return nil
	}
	for _, card := range gs.VisibleCards {
		if card.ID() == gs.SelectedCardID {
			return card
		}
	}
	return nil
}

// IsFaceCardActive reports whether the card being resolved is a face card.
func (gs *GameState) IsFaceCardActive() bool {
	card := gs.ActiveCard()
	return card != nil && card.IsFace()
}

// Act3Countdown returns how many reserve cards remain before the Act 3
// trigger. The second return is false once Act 3 has begun.
func (gs *GameState) Act3Countdown() (int, bool) {
	if gs.CurrentAct >= 3 {
		return 0, false
	}
	return act3ReserveThreshold - gs.CardsAddedFromReserve, true
}

// IsGameOver reports whether play has reached a terminal outcome: every
// character dead, or the red joker defeated.
func (gs *GameState) IsGameOver() bool {
	if gs.IsGameWon {
		return true
	}
	for _, c := range gs.Characters {
		if !c.IsDead {
			return false
		}
	}
	return true
}

// IsMiddleStackEmpty reports whether no drawable card remains in the active
// deck, counting both known and unknown pools.
func (gs *GameState) IsMiddleStackEmpty() bool {
	for _, count := range gs.MiddleStack {
		if count > 0 {
			return false
		}
	}
	for _, count := range gs.UnknownThreatCards {
		if count > 0 {
			return false
		}
	}
	return true
}

// AreJokersAvailable reports whether the jokers have entered play.
func (gs *GameState) AreJokersAvailable() bool {
	return gs.JokersAdded
}

// HasFaceCardOnTable reports whether any visible card is a face card.
func (gs *GameState) HasFaceCardOnTable() bool {
	for _, card := range gs.VisibleCards {
		if card.IsFace() {
			return true
		}
	}
	return false
}

// AvailableTrophyRanks lists the ranks present in the trophy pile, for the
// manual trophy-top picker.
func (gs *GameState) AvailableTrophyRanks() []int {
	var ranks []int
	for _, card := range gs.TrophyPile {
		if card.Rank > 0 {
			ranks = append(ranks, card.Rank)
		}
	}
	return ranks
}

// PendingFalloutRank returns the rank of the face card most recently added
// from the reserves, or zero when none has been added this scene.
func (gs *GameState) PendingFalloutRank() int {
	return gs.LastAddedFaceCardRank
}

// Character returns the roster entry for a suit, or nil.
func (gs *GameState) Character(id Suit) *Character {
	for _, c := range gs.Characters {
		if c.ID == id {
			return c
		}
	}
	return nil
}
