package protocol

type CardLite struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Suit        string `json:"suit"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

type CharacterLite struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Strikes int    `json:"strikes"`
	IsDead  bool   `json:"isDead"`
}

type PlaysetLite struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Snapshot struct {
	Phase            string          `json:"phase"`
	Act              int             `json:"act"`
	SelectedPlayset  string          `json:"selectedPlayset"`
	Playsets         []PlaysetLite   `json:"playsets"`
	Characters       []CharacterLite `json:"characters"`
	StrikesToAssign  int             `json:"strikesToAssign"`
	WeaknessesFound  []string        `json:"weaknessesFound"`
	IsEndgame        bool            `json:"isEndgame"`
	IsGameWon        bool            `json:"isGameWon"`
	JokersAdded      bool            `json:"jokersAdded"`
	Act3Countdown    int             `json:"act3Countdown"`
	HasAct3Countdown bool            `json:"hasAct3Countdown"`

	VisibleCards   []CardLite `json:"visibleCards"`
	SelectedCardID string     `json:"selectedCardId"`
	SelectedJoker  string     `json:"selectedJoker"`
	TrophyTop      *CardLite  `json:"trophyTop"`
	TrophyPile     []CardLite `json:"trophyPile"`

	AcesRemaining         int         `json:"acesRemaining"`
	MiddleStack           map[int]int `json:"middleStack"`
	BottomStack           map[int]int `json:"bottomStack"`
	UnknownThreatCards    map[int]int `json:"unknownThreatCards"`
	UnknownBottomStack    map[int]int `json:"unknownBottomStack"`
	UnknownReserveCards   int         `json:"unknownReserveCards"`
	ReserveQueue          []int       `json:"reserveQueue"`
	FaceCardReserves      map[int]int `json:"faceCardReserves"`
	CardsAddedFromReserve int         `json:"cardsAddedFromReserve"`

	MainDie      int    `json:"mainDie"`
	EffortDie    int    `json:"effortDie"`
	MainRolled   bool   `json:"mainRolled"`
	EffortRolled bool   `json:"effortRolled"`
	Difficulty   int    `json:"difficulty"`
	IsSuccess    bool   `json:"isSuccess"`
	EffortTitle  string `json:"effortTitle,omitempty"`
	ScenePrompt  string `json:"scenePrompt,omitempty"`

	TableGenrePoints    int  `json:"tableGenrePoints"`
	PlayerGenrePoints   int  `json:"playerGenrePoints"`
	IsGenrePointUsed    bool `json:"isGenrePointUsed"`
	IsGenrePointAwarded bool `json:"isGenrePointAwarded"`
	SacrificeConfirmed  bool `json:"sacrificeConfirmed"`

	ManualRank  int    `json:"manualRank"`
	ManualSuit  string `json:"manualSuit"`
	ManualJoker string `json:"manualJoker"`

	PendingActSetups []string `json:"pendingActSetups"`
	ProtocolVersion  string   `json:"protocolVersion"`
}
