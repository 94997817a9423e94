package main

import (
	"sort"

	"github.com/nocturne-rpg/threat-deck-engine/internal/protocol"
)

// protocolVersion is bumped whenever the patch or snapshot shape changes.
const protocolVersion = "1.0"

// LivePlaySession is the single shared table session. It serializes all
// mutation behind the state lock, routes intents to the deck and phase
// systems, and broadcasts patches describing what changed. Connected
// clients all see the same table; there is no per-player state.
type LivePlaySession struct {
	state       *GameState
	deck        *DeckSystem
	phase       *PhaseSystem
	content     *ContentManager
	broadcaster Broadcaster
	logger      Logger
}

// NewLivePlaySession wires a session over fresh game state.
func NewLivePlaySession(content *ContentManager, broadcaster Broadcaster, logger Logger) *LivePlaySession {
	state := NewGameState()
	deck := NewDeckSystem(state, logger)
	phase := NewPhaseSystem(state, deck, content, logger)
	return &LivePlaySession{
		state:       state,
		deck:        deck,
		phase:       phase,
		content:     content,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// StartGame begins a new game with the given playset.
func (s *LivePlaySession) StartGame(playsetID string) {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.StartGame(playsetID)
	s.broadcastAll()
}

// UpdateDeckState applies a reported pool transition.
func (s *LivePlaySession) UpdateDeckState(rank int, suit Suit, action DeckAction) error {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	if err := s.deck.UpdateDeckState(rank, suit, action); err != nil {
		return err
	}
	s.broadcastDeck()
	return nil
}

// AddVisibleCard stages the given card (or joker) and places it on the
// table.
func (s *LivePlaySession) AddVisibleCard(rank int, suit Suit, joker JokerColor) error {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()

	if joker == JokerNone && (rank < RankAce || rank > RankKing) {
		return NewGameError("INVALID_CARD", "rank %d out of range", rank)
	}

	s.state.ManualRank = rank
	s.state.ManualSuit = suit
	s.state.ManualJoker = joker
	s.deck.AddVisibleCard()

	s.broadcastScene()
	s.broadcastDeck()
	s.broadcastCharacters()
	return nil
}

// SelectCard marks a table card as the active threat.
func (s *LivePlaySession) SelectCard(cardID string) {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.deck.SelectCard(cardID)
	s.broadcastScene()
}

// SetTrophyTop records the observed trophy-pile top rank.
func (s *LivePlaySession) SetTrophyTop(rank int) {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.deck.SetTrophyTop(rank)
	s.broadcastScene()
}

// SetDie records one die result for the scene.
func (s *LivePlaySession) SetDie(die string, value int) error {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()

	switch die {
	case "main":
		s.state.Dice.SetMain(value)
	case "effort":
		s.state.Dice.SetEffort(value)
	default:
		return NewGameError("INVALID_DIE", "unknown die %q", die)
	}
	s.broadcastScene()
	return nil
}

// AssignStrike assigns one strike to the character with the given suit ID.
func (s *LivePlaySession) AssignStrike(characterID string) error {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()

	suit := Suit(characterID)
	if s.state.Character(suit) == nil {
		return NewGameError("UNKNOWN_CHARACTER", "no character %q", characterID)
	}

	wasOver := s.state.CurrentPhase == PhaseWin
	s.phase.AssignStrike(suit)
	s.broadcastCharacters()
	s.broadcastPhase()
	if !wasOver && s.state.CurrentPhase == PhaseWin {
		s.broadcaster.BroadcastEvent("GameEnded", protocol.GameEnded{Won: s.state.IsGameWon})
	}
	return nil
}

// AddNextReserve feeds the next reserve card into the deck, starting Act 3
// when the move crosses the threshold.
func (s *LivePlaySession) AddNextReserve() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	if s.deck.AddNextReserve() {
		s.phase.StartAct3()
		s.broadcastPhase()
	}
	s.broadcastDeck()
}

// ShuffleThreatDeck performs the full table-and-deck shuffle.
func (s *LivePlaySession) ShuffleThreatDeck() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.deck.ShuffleThreatDeck()
	s.broadcastDeck()
	s.broadcastScene()
}

// ShuffleTrophyPile randomizes the trophy-pile top.
func (s *LivePlaySession) ShuffleTrophyPile() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.deck.ShuffleTrophyPile()
	s.broadcastScene()
}

// RevealHiddenTen deduces the hidden ten's suit if possible.
func (s *LivePlaySession) RevealHiddenTen() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.deck.RevealHiddenTen()
	s.broadcastScene()
}

// NextPhase advances the phase machine.
func (s *LivePlaySession) NextPhase() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()

	wasOver := s.state.CurrentPhase == PhaseWin
	s.phase.NextPhase()
	s.broadcastAll()
	if !wasOver && s.state.CurrentPhase == PhaseWin {
		s.broadcaster.BroadcastEvent("GameEnded", protocol.GameEnded{Won: s.state.IsGameWon})
	}
}

// PrevPhase steps the phase machine back where allowed.
func (s *LivePlaySession) PrevPhase() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.PrevPhase()
	s.broadcastPhase()
}

// StartAct3 begins the endgame act.
func (s *LivePlaySession) StartAct3() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.StartAct3()
	s.broadcastPhase()
}

// StartEndgame rebuilds the deck for Act 3.
func (s *LivePlaySession) StartEndgame() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.StartEndgame()
	s.broadcastAll()
}

// TriggerJokerEvent shuffles the jokers into play.
func (s *LivePlaySession) TriggerJokerEvent() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.TriggerJokerEvent()
	s.broadcastPhase()
}

// ConsumePendingActSetup pops the next queued act-setup screen.
func (s *LivePlaySession) ConsumePendingActSetup() string {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	screen := s.phase.ConsumePendingActSetup()
	s.broadcastPhase()
	return screen
}

// StartNextScene closes out fallout and stages the next scene.
func (s *LivePlaySession) StartNextScene() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.StartNextScene()
	s.broadcastAll()
}

// AwardGenrePoint moves a genre point from the table to the players.
func (s *LivePlaySession) AwardGenrePoint() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.AwardGenrePoint()
	s.broadcastGenrePoints()
}

// ToggleGenrePointUsage spends or refunds a player genre point.
func (s *LivePlaySession) ToggleGenrePointUsage() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.ToggleGenrePointUsage()
	s.broadcastGenrePoints()
}

// ToggleGenrePointAward grants or revokes this scene's award.
func (s *LivePlaySession) ToggleGenrePointAward() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.ToggleGenrePointAward()
	s.broadcastGenrePoints()
}

// ToggleSacrificeConfirmed flips the stakes agreement flag.
func (s *LivePlaySession) ToggleSacrificeConfirmed() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.ToggleSacrificeConfirmed()
	s.broadcastScene()
}

// FullReset returns the session to the welcome screen.
func (s *LivePlaySession) FullReset() {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	s.phase.FullReset()
	s.broadcastAll()
}

// Snapshot builds the full-state snapshot sent on page load and reconnect.
func (s *LivePlaySession) Snapshot() protocol.Snapshot {
	s.state.Lock.Lock()
	defer s.state.Lock.Unlock()
	return s.snapshotLocked()
}

func (s *LivePlaySession) snapshotLocked() protocol.Snapshot {
	gs := s.state

	playsets := make([]protocol.PlaysetLite, 0)
	for _, p := range s.content.AvailablePlaysets() {
		playsets = append(playsets, protocol.PlaysetLite{
			ID:          p.ID,
			Name:        p.Config.Name,
			Description: p.Config.Description,
		})
	}

	countdown, hasCountdown := gs.Act3Countdown()

	snap := protocol.Snapshot{
		Phase:            string(gs.CurrentPhase),
		Act:              gs.CurrentAct,
		SelectedPlayset:  gs.SelectedPlayset,
		Playsets:         playsets,
		Characters:       charactersLite(gs.Characters),
		StrikesToAssign:  gs.StrikesToAssign,
		WeaknessesFound:  suitsToStrings(gs.WeaknessesFound),
		IsEndgame:        gs.IsEndgame,
		IsGameWon:        gs.IsGameWon,
		JokersAdded:      gs.JokersAdded,
		Act3Countdown:    countdown,
		HasAct3Countdown: hasCountdown,

		VisibleCards:   cardsLite(gs.VisibleCards),
		SelectedCardID: gs.SelectedCardID,
		SelectedJoker:  string(gs.SelectedJoker),
		TrophyTop:      cardLitePtr(gs.TrophyTop),
		TrophyPile:     cardsLite(gs.TrophyPile),

		AcesRemaining:         gs.AcesRemaining,
		MiddleStack:           copyCounts(gs.MiddleStack),
		BottomStack:           copyCounts(gs.BottomStack),
		UnknownThreatCards:    copyCounts(gs.UnknownThreatCards),
		UnknownBottomStack:    copyCounts(gs.UnknownBottomStack),
		UnknownReserveCards:   gs.UnknownReserveCards,
		ReserveQueue:          append([]int(nil), gs.ReserveQueue...),
		FaceCardReserves:      copyCounts(gs.FaceCardReserves),
		CardsAddedFromReserve: gs.CardsAddedFromReserve,

		MainDie:      gs.Dice.Main,
		EffortDie:    gs.Dice.Effort,
		MainRolled:   gs.Dice.MainRolled,
		EffortRolled: gs.Dice.EffortRolled,
		Difficulty:   gs.TargetDifficulty(),
		IsSuccess:    gs.IsSuccess(),
		EffortTitle:  effortTitle(gs),
		ScenePrompt:  scenePrompt(gs),

		TableGenrePoints:    gs.TableGenrePoints,
		PlayerGenrePoints:   gs.PlayerGenrePoints,
		IsGenrePointUsed:    gs.IsGenrePointUsed,
		IsGenrePointAwarded: gs.IsGenrePointAwarded,
		SacrificeConfirmed:  gs.SacrificeConfirmed,

		ManualRank:  gs.ManualRank,
		ManualSuit:  string(gs.ManualSuit),
		ManualJoker: string(gs.ManualJoker),

		PendingActSetups: append([]string(nil), gs.PendingActSetups...),
		ProtocolVersion:  protocolVersion,
	}
	return snap
}

// broadcastAll emits every patch family; used at phase boundaries where
// resolution fallout can touch all of them.
func (s *LivePlaySession) broadcastAll() {
	s.broadcastPhase()
	s.broadcastDeck()
	s.broadcastScene()
	s.broadcastCharacters()
	s.broadcastGenrePoints()
}

func (s *LivePlaySession) broadcastPhase() {
	gs := s.state
	s.broadcaster.BroadcastEvent("PhaseChanged", protocol.PhaseChanged{
		Phase:            string(gs.CurrentPhase),
		Act:              gs.CurrentAct,
		IsEndgame:        gs.IsEndgame,
		PendingActSetups: append([]string(nil), gs.PendingActSetups...),
	})
}

func (s *LivePlaySession) broadcastDeck() {
	gs := s.state
	s.broadcaster.BroadcastEvent("DeckStateChanged", protocol.DeckStateChanged{
		AcesRemaining:         gs.AcesRemaining,
		MiddleStack:           copyCounts(gs.MiddleStack),
		BottomStack:           copyCounts(gs.BottomStack),
		UnknownThreatCards:    copyCounts(gs.UnknownThreatCards),
		UnknownBottomStack:    copyCounts(gs.UnknownBottomStack),
		UnknownReserveCards:   gs.UnknownReserveCards,
		ReserveQueue:          append([]int(nil), gs.ReserveQueue...),
		FaceCardReserves:      copyCounts(gs.FaceCardReserves),
		CardsAddedFromReserve: gs.CardsAddedFromReserve,
		DrawnCards:            sortedKeys(gs.DrawnCards),
		KnownBottomStackCards: sortedKeys(gs.KnownBottomStackCards),
		IdentifiedCards:       sortedKeys(gs.IdentifiedCards),
		RemovedFaceCardIDs:    sortedKeys(gs.RemovedFaceCardIDs),
		LastAddedFaceCardRank: gs.LastAddedFaceCardRank,
	})
}

func (s *LivePlaySession) broadcastScene() {
	gs := s.state
	s.broadcaster.BroadcastEvent("SceneStateChanged", protocol.SceneStateChanged{
		VisibleCards:   cardsLite(gs.VisibleCards),
		SelectedCardID: gs.SelectedCardID,
		SelectedJoker:  string(gs.SelectedJoker),
		TrophyTop:      cardLitePtr(gs.TrophyTop),
		TrophyPileSize: len(gs.TrophyPile),
		MainDie:        gs.Dice.Main,
		EffortDie:      gs.Dice.Effort,
		MainRolled:     gs.Dice.MainRolled,
		EffortRolled:   gs.Dice.EffortRolled,
		Difficulty:     gs.TargetDifficulty(),
		IsSuccess:      gs.IsSuccess(),
		EffortTitle:    effortTitle(gs),
		ScenePrompt:    scenePrompt(gs),
	})
}

func (s *LivePlaySession) broadcastCharacters() {
	gs := s.state
	s.broadcaster.BroadcastEvent("CharactersChanged", protocol.CharactersChanged{
		Characters:      charactersLite(gs.Characters),
		StrikesToAssign: gs.StrikesToAssign,
		WeaknessesFound: suitsToStrings(gs.WeaknessesFound),
	})
}

func (s *LivePlaySession) broadcastGenrePoints() {
	gs := s.state
	s.broadcaster.BroadcastEvent("GenrePointsChanged", protocol.GenrePointsChanged{
		TableGenrePoints:    gs.TableGenrePoints,
		PlayerGenrePoints:   gs.PlayerGenrePoints,
		IsGenrePointUsed:    gs.IsGenrePointUsed,
		IsGenrePointAwarded: gs.IsGenrePointAwarded,
	})
}

func effortTitle(gs *GameState) string {
	if level := gs.EffortResult(); level != nil {
		return level.Title
	}
	return ""
}

func scenePrompt(gs *GameState) string {
	card := gs.ActiveCard()
	if card == nil || !card.Known() {
		return ""
	}
	return SuitPrompts[card.Suit]
}

func cardLite(card *LivePlayCard) protocol.CardLite {
	return protocol.CardLite{
		ID:          card.ID(),
		Rank:        card.Rank,
		Suit:        string(card.Suit),
		Name:        card.Name,
		Description: card.Description,
		Type:        card.CardType(),
	}
}

func cardLitePtr(card *LivePlayCard) *protocol.CardLite {
	if card == nil {
		return nil
	}
	lite := cardLite(card)
	return &lite
}

func cardsLite(cards []*LivePlayCard) []protocol.CardLite {
	lite := make([]protocol.CardLite, 0, len(cards))
	for _, card := range cards {
		lite = append(lite, cardLite(card))
	}
	return lite
}

func charactersLite(characters []*Character) []protocol.CharacterLite {
	lite := make([]protocol.CharacterLite, 0, len(characters))
	for _, c := range characters {
		lite = append(lite, protocol.CharacterLite{
			ID:      string(c.ID),
			Name:    c.Name,
			Strikes: c.Strikes,
			IsDead:  c.IsDead,
		})
	}
	return lite
}

func suitsToStrings(suits []Suit) []string {
	out := make([]string, 0, len(suits))
	for _, s := range suits {
		out = append(out, string(s))
	}
	return out
}

func copyCounts(counts map[int]int) map[int]int {
	out := make(map[int]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
