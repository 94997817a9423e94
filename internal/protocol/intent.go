package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RequestStartGame struct {
	PlaysetID string `json:"playsetId"`
}

type RequestUpdateDeckState struct {
	Rank   int    `json:"rank"`
	Suit   string `json:"suit"`
	Action string `json:"action"`
}

type RequestAddVisibleCard struct {
	Rank  int    `json:"rank"`
	Suit  string `json:"suit"`
	Joker string `json:"joker,omitempty"`
}

type RequestSelectCard struct {
	CardID string `json:"cardId"`
}

type RequestSetTrophyTop struct {
	Rank int `json:"rank"`
}

type RequestSetDie struct {
	Die   string `json:"die"` // "main" or "effort"
	Value int    `json:"value"`
}

type RequestAssignStrike struct {
	CharacterID string `json:"characterId"`
}

type RequestAddNextReserve struct {
}

type RequestShuffleThreatDeck struct {
}

type RequestShuffleTrophyPile struct {
}

type RequestRevealHiddenTen struct {
}

type RequestNextPhase struct {
}

type RequestPrevPhase struct {
}

type RequestFullReset struct {
}

type RequestStartAct3 struct {
}

type RequestStartEndgame struct {
}

type RequestTriggerJokerEvent struct {
}

type RequestConsumePendingActSetup struct {
}

type RequestAwardGenrePoint struct {
}

type RequestToggleGenrePointUsage struct {
}

type RequestToggleGenrePointAward struct {
}

type RequestStartNextScene struct {
}

type RequestToggleSacrificeConfirmed struct {
}
