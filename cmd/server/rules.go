package main

// Static rule tables. These are consumed by the resolution calculator and
// the presentation layer; nothing in here is computed at runtime.

// act3ReserveThreshold is the number of reserve cards that, once added to
// the threat deck, triggers the endgame.
const act3ReserveThreshold = 13

// deathStrikes is the strike count at which a character dies.
const deathStrikes = 3

// EffortLevel is one row of the effort-outcome table, keyed by the effort
// die result.
type EffortLevel struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Mechanic    string `json:"mechanic"`
}

// EffortScale maps effort-die results 1-4 to their narrative outcome.
var EffortScale = []EffortLevel{
	{
		Level:       1,
		Title:       "Controlled Effort",
		Description: "Safe and effective.",
		Mechanic:    "You kept your cool. You narrate the outcome exactly how you want it.",
	},
	{
		Level:       2,
		Title:       "Pushing It",
		Description: "Effort with minor costs.",
		Mechanic:    "You narrate the core outcome. The other players suggest costs; you choose one to include.",
	},
	{
		Level:       3,
		Title:       "Overexertion",
		Description: "Guaranteed sacrifice.",
		Mechanic:    "Success or failure, the sacrifice agreed in the stakes happens.",
	},
	{
		Level:       4,
		Title:       "Breaking Point",
		Description: "Disaster strikes.",
		Mechanic:    "The agreed sacrifice happens and the other players add a twist. This counts as a strike.",
	},
}

// faceCardModifiers gives the difficulty added on top of the trophy-top rank
// when a face card is the active threat.
var faceCardModifiers = map[int]int{
	RankJack:  1,
	RankQueen: 2,
	RankKing:  3,
}

// faceCardSubstitutions is the fallback chain used when the requested face
// rank's reserve is exhausted.
var faceCardSubstitutions = map[int][]int{
	RankJack:  {RankJack, RankQueen, RankKing},
	RankQueen: {RankQueen, RankKing, RankJack},
	RankKing:  {RankKing, RankQueen, RankJack},
}

// SuitPrompts are the scene-framing prompts by threat suit.
var SuitPrompts = map[Suit]string{
	Spades:   "Where does the danger corner you?",
	Hearts:   "Who do you need to protect right now?",
	Clubs:    "What goes wrong with the plan?",
	Diamonds: "What do you stand to lose here?",
}
