package main

import "fmt"

// Suit identifies one of the four playing-card suits. SuitUnknown marks a
// card whose physical identity has not been confirmed at the table yet.
type Suit string

const (
	Spades      Suit = "Spades"
	Hearts      Suit = "Hearts"
	Clubs       Suit = "Clubs"
	Diamonds    Suit = "Diamonds"
	SuitUnknown Suit = "Unknown"
)

// Suits lists the four real suits in draw-priority order.
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// Rank constants for the face cards. Ranks 2-10 are number cards; rank 1 is
// the Ace. RankUnknownNumber is the bucket key for a generic, unidentified
// number card in the unknown pools.
const (
	RankAce           = 1
	RankJack          = 11
	RankQueen         = 12
	RankKing          = 13
	RankUnknownNumber = 0
)

// JokerColor identifies one of the two jokers. JokerNone means no joker is
// selected.
type JokerColor string

const (
	JokerNone  JokerColor = ""
	RedJoker   JokerColor = "Red"
	BlackJoker JokerColor = "Black"
)

// Card is a rank/suit pair. Identity tracking relies on the synthetic ID,
// not object references: the same physical card can be drawn, returned, and
// drawn again under the same ID.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// ID returns the synthetic "<rank>-<suit>" identifier.
func (c Card) ID() string {
	return fmt.Sprintf("%d-%s", c.Rank, c.Suit)
}

// IsFace reports whether the card is a Jack, Queen, or King.
func (c Card) IsFace() bool {
	return c.Rank > 10
}

// Known reports whether the card's suit has been identified.
func (c Card) Known() bool {
	return c.Suit != SuitUnknown
}

// CardType returns "face" or "number"; the type is always derived from the
// rank, never stored independently.
func (c Card) CardType() string {
	if c.IsFace() {
		return "face"
	}
	return "number"
}

// RankName returns the display name for a rank.
func RankName(rank int) string {
	switch rank {
	case RankAce:
		return "Ace"
	case RankJack:
		return "Jack"
	case RankQueen:
		return "Queen"
	case RankKing:
		return "King"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// LivePlayCard is a card that is face-up on the table, with its display
// metadata.
type LivePlayCard struct {
	Card
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewLivePlayCard builds a table card for the given rank and suit.
func NewLivePlayCard(rank int, suit Suit) *LivePlayCard {
	return &LivePlayCard{
		Card: Card{Rank: rank, Suit: suit},
		Name: RankName(rank),
	}
}

// Character is one of the four player characters, keyed by suit. Death at
// three strikes is permanent; the strike count may keep climbing past three
// when further strikes are assigned.
type Character struct {
	ID      Suit   `json:"id"`
	Name    string `json:"name"`
	Strikes int    `json:"strikes"`
	IsDead  bool   `json:"isDead"`
}

// NewCharacterRoster returns the fixed four-character roster in suit order.
func NewCharacterRoster() []*Character {
	return []*Character{
		{ID: Spades, Name: "The Power"},
		{ID: Hearts, Name: "The Resolve"},
		{ID: Clubs, Name: "The Intellect"},
		{ID: Diamonds, Name: "The Finesse"},
	}
}

// Phase is the scene life-cycle cursor.
type Phase string

const (
	PhaseWelcome            Phase = "welcome"
	PhaseGameSetup          Phase = "game-setup"
	PhaseActSetup           Phase = "act-setup"
	PhaseTrophySetup        Phase = "trophy-setup"
	PhaseSceneSetup         Phase = "scene-setup"
	PhaseConversationStakes Phase = "conversation-stakes"
	PhaseResolution         Phase = "resolution"
	PhaseResolveScene       Phase = "resolve-scene"
	PhaseFallout            Phase = "fallout"
	PhaseWin                Phase = "win"
)

// Act-setup screens that can be queued when multiple triggers fire in the
// same update.
const (
	ActSetupAct3   = "3"
	ActSetupJokers = "jokers"
)

// Dice domains: the main die is a d10 read zero-indexed, the effort die is a
// d4. Their sum spans 1-13, matching the thirteen ranks.
const (
	MainDieMin   = 0
	MainDieMax   = 9
	EffortDieMin = 1
	EffortDieMax = 4
)

// DiceState records the two dice for the current scene. A die with its
// Rolled flag unset has no value yet; zero is a legal main-die result, so
// the flags are authoritative.
type DiceState struct {
	Main         int  `json:"main"`
	Effort       int  `json:"effort"`
	MainRolled   bool `json:"mainRolled"`
	EffortRolled bool `json:"effortRolled"`
}

// SetMain records the main die. Out-of-range values are ignored.
func (d *DiceState) SetMain(value int) {
	if value < MainDieMin || value > MainDieMax {
		return
	}
	d.Main = value
	d.MainRolled = true
}

// SetEffort records the effort die. Out-of-range values are ignored.
func (d *DiceState) SetEffort(value int) {
	if value < EffortDieMin || value > EffortDieMax {
		return
	}
	d.Effort = value
	d.EffortRolled = true
}

// Clear resets both dice for the next scene.
func (d *DiceState) Clear() {
	*d = DiceState{}
}

// Total returns the d13 result. It is only defined once both dice are set.
func (d *DiceState) Total() (int, bool) {
	if !d.MainRolled || !d.EffortRolled {
		return 0, false
	}
	return d.Main + d.Effort, true
}

// IsBreakingPoint reports whether the effort die landed on its maximum,
// which always costs a strike regardless of the check outcome.
func (d *DiceState) IsBreakingPoint() bool {
	return d.EffortRolled && d.Effort == EffortDieMax
}
