package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type PhaseChanged struct {
	Phase            string   `json:"phase"`
	Act              int      `json:"act"`
	IsEndgame        bool     `json:"isEndgame"`
	PendingActSetups []string `json:"pendingActSetups"`
}

type DeckStateChanged struct {
	AcesRemaining         int            `json:"acesRemaining"`
	MiddleStack           map[int]int    `json:"middleStack"`
	BottomStack           map[int]int    `json:"bottomStack"`
	UnknownThreatCards    map[int]int    `json:"unknownThreatCards"`
	UnknownBottomStack    map[int]int    `json:"unknownBottomStack"`
	UnknownReserveCards   int            `json:"unknownReserveCards"`
	ReserveQueue          []int          `json:"reserveQueue"`
	FaceCardReserves      map[int]int    `json:"faceCardReserves"`
	CardsAddedFromReserve int            `json:"cardsAddedFromReserve"`
	DrawnCards            []string       `json:"drawnCards"`
	KnownBottomStackCards []string       `json:"knownBottomStackCards"`
	IdentifiedCards       []string       `json:"identifiedCards"`
	RemovedFaceCardIDs    []string       `json:"removedFaceCardIds"`
	LastAddedFaceCardRank int            `json:"lastAddedFaceCardRank"`
}

type SceneStateChanged struct {
	VisibleCards   []CardLite `json:"visibleCards"`
	SelectedCardID string     `json:"selectedCardId"`
	SelectedJoker  string     `json:"selectedJoker"`
	TrophyTop      *CardLite  `json:"trophyTop"`
	TrophyPileSize int        `json:"trophyPileSize"`
	MainDie        int        `json:"mainDie"`
	EffortDie      int        `json:"effortDie"`
	MainRolled     bool       `json:"mainRolled"`
	EffortRolled   bool       `json:"effortRolled"`
	Difficulty     int        `json:"difficulty"`
	IsSuccess      bool       `json:"isSuccess"`
	EffortTitle    string     `json:"effortTitle,omitempty"`
	ScenePrompt    string     `json:"scenePrompt,omitempty"`
}

type CharactersChanged struct {
	Characters      []CharacterLite `json:"characters"`
	StrikesToAssign int             `json:"strikesToAssign"`
	WeaknessesFound []string        `json:"weaknessesFound"`
}

type GenrePointsChanged struct {
	TableGenrePoints    int  `json:"tableGenrePoints"`
	PlayerGenrePoints   int  `json:"playerGenrePoints"`
	IsGenrePointUsed    bool `json:"isGenrePointUsed"`
	IsGenrePointAwarded bool `json:"isGenrePointAwarded"`
}

type GameEnded struct {
	Won bool `json:"won"`
}
