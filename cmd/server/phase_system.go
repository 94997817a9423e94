package main

// PhaseSystem drives the scene life cycle and everything that happens at
// its boundaries: game setup, act transitions, resolution fallout, strike
// assignment, and genre-point accounting. It owns no card bookkeeping of
// its own; pool mutations go through the deck system.
type PhaseSystem struct {
	state   *GameState
	deck    *DeckSystem
	content *ContentManager
	logger  Logger
}

// NewPhaseSystem creates a phase system over the shared game state.
func NewPhaseSystem(state *GameState, deck *DeckSystem, content *ContentManager, logger Logger) *PhaseSystem {
	return &PhaseSystem{
		state:   state,
		deck:    deck,
		content: content,
		logger:  logger,
	}
}

// StartGame resets the table and deals the selected playset's opening
// state. With the classic setup every pool is known from the start and the
// trophy pile is seeded with the face-down ten; with hidden-identity pools
// the deck starts as unknown counts and the table sets up the trophy pile
// in its own phase.
func (ps *PhaseSystem) StartGame(playsetID string) {
	gs := ps.state
	gs.resetAll()

	config := ps.content.PlaysetConfig(playsetID)
	gs.SelectedPlayset = playsetID
	gs.ClassicSetup = config.RulesModules["classicSetup"]
	gs.FinalGirlMode = config.RulesModules["finalGirl"]

	if gs.ClassicSetup {
		gs.TrophyPile = []*LivePlayCard{NewLivePlayCard(10, SuitUnknown)}
		ps.deck.ShuffleTrophyPile()
		gs.CurrentPhase = PhaseActSetup
	} else {
		gs.MiddleStack = emptyRankCounts()
		gs.UnknownThreatCards = map[int]int{
			RankUnknownNumber: 8, RankJack: 1, RankQueen: 0, RankKing: 0,
		}
		gs.ReserveQueue = nil
		gs.UnknownReserveCards = 14
		gs.CurrentPhase = PhaseTrophySetup
	}

	ps.logger.Printf("game started: playset=%s classic=%t finalGirl=%t",
		playsetID, gs.ClassicSetup, gs.FinalGirlMode)
}

// NextPhase advances the scene life cycle. Leaving resolve-scene applies
// the resolution consequences; leaving fallout starts the next scene.
func (ps *PhaseSystem) NextPhase() {
	gs := ps.state

	switch gs.CurrentPhase {
	case PhaseWelcome:
		gs.CurrentPhase = PhaseGameSetup

	case PhaseGameSetup:
		if gs.SelectedPlayset != "" {
			gs.CurrentPhase = PhaseActSetup
		}

	case PhaseActSetup:
		if gs.IsEndgame && !gs.IsEndgameInitialized {
			ps.StartEndgame()
			return
		}
		if !gs.ClassicSetup && len(gs.TrophyPile) == 0 {
			gs.CurrentPhase = PhaseTrophySetup
			return
		}
		ps.stageNextCard()
		gs.CurrentPhase = PhaseSceneSetup

	case PhaseTrophySetup:
		ps.seedHiddenTrophyPile()
		ps.stageNextCard()
		gs.CurrentPhase = PhaseSceneSetup

	case PhaseSceneSetup:
		gs.CurrentPhase = PhaseConversationStakes

	case PhaseConversationStakes:
		gs.CurrentPhase = PhaseResolution

	case PhaseResolution:
		gs.CurrentPhase = PhaseResolveScene

	case PhaseResolveScene:
		ps.applyGameStateUpdates()
		if gs.CurrentPhase != PhaseWin {
			gs.CurrentPhase = PhaseFallout
		}

	case PhaseFallout:
		ps.StartNextScene()

	case PhaseWin:
		// terminal
	}
}

// PrevPhase steps back one phase where the rules allow revisiting. Scene
// setup is a commit point: once a card is on the table there is no going
// back to the previous scene.
func (ps *PhaseSystem) PrevPhase() {
	gs := ps.state

	switch gs.CurrentPhase {
	case PhaseGameSetup:
		gs.CurrentPhase = PhaseWelcome
	case PhaseActSetup:
		if gs.CurrentAct == 1 && !gs.IsEndgame {
			gs.CurrentPhase = PhaseGameSetup
		}
	case PhaseConversationStakes:
		gs.CurrentPhase = PhaseSceneSetup
	case PhaseResolution:
		gs.CurrentPhase = PhaseConversationStakes
	case PhaseResolveScene:
		gs.CurrentPhase = PhaseResolution
	case PhaseFallout:
		gs.CurrentPhase = PhaseResolveScene
	}
}

// seedHiddenTrophyPile fills the trophy pile with the four face-down tens
// used by the hidden-identity setup.
func (ps *PhaseSystem) seedHiddenTrophyPile() {
	gs := ps.state
	if len(gs.TrophyPile) > 0 {
		return
	}
	for range Suits {
		gs.TrophyPile = append(gs.TrophyPile, NewLivePlayCard(10, SuitUnknown))
	}
	ps.deck.ShuffleTrophyPile()
}

// stageNextCard pre-fills the manual-entry staging with the deck's
// suggested next card.
func (ps *PhaseSystem) stageNextCard() {
	gs := ps.state
	next := ps.deck.NextValidCard()
	gs.ManualRank = next.Rank
	gs.ManualSuit = next.Suit
	gs.ManualJoker = JokerNone
}

// StartAct3 begins the endgame act and queues its setup screen.
func (ps *PhaseSystem) StartAct3() {
	gs := ps.state
	gs.CurrentAct = 3
	gs.IsEndgame = true
	gs.PendingActSetups = append(gs.PendingActSetups, ActSetupAct3)
	gs.CurrentPhase = PhaseActSetup
}

// TriggerJokerEvent shuffles the jokers into play and queues their setup
// screen.
func (ps *PhaseSystem) TriggerJokerEvent() {
	gs := ps.state
	gs.JokersAdded = true
	gs.PendingActSetups = append(gs.PendingActSetups, ActSetupJokers)
	gs.CurrentPhase = PhaseActSetup
}

// StartEndgame rebuilds the deck for Act 3: every number card leaves the
// threat deck and the reserves are retired, leaving only face cards, the
// jokers once added, and whatever is already on the table.
func (ps *PhaseSystem) StartEndgame() {
	gs := ps.state

	gs.AcesRemaining = 0
	for rank := 1; rank <= 10; rank++ {
		gs.MiddleStack[rank] = 0
		gs.BottomStack[rank] = 0
	}
	gs.ReserveQueue = nil
	gs.UnknownReserveCards = 0
	gs.UnknownThreatCards[RankUnknownNumber] = 0
	gs.UnknownBottomStack[RankUnknownNumber] = 0

	gs.Dice.Clear()
	gs.IsGenrePointUsed = false
	gs.IsGenrePointAwarded = false
	gs.SacrificeConfirmed = false

	gs.IsEndgameInitialized = true
	ps.stageNextCard()
	gs.CurrentPhase = PhaseSceneSetup

	ps.logger.Printf("endgame initialized")
}

// ConsumePendingActSetup pops the next queued act-setup screen, or returns
// an empty string when none remain.
func (ps *PhaseSystem) ConsumePendingActSetup() string {
	gs := ps.state
	if len(gs.PendingActSetups) == 0 {
		return ""
	}
	next := gs.PendingActSetups[0]
	gs.PendingActSetups = gs.PendingActSetups[1:]
	return next
}

// PeekPendingActSetup returns the next queued act-setup screen without
// consuming it.
func (ps *PhaseSystem) PeekPendingActSetup() string {
	gs := ps.state
	if len(gs.PendingActSetups) == 0 {
		return ""
	}
	return gs.PendingActSetups[0]
}

// HasMorePendingActSetups reports whether act-setup screens remain queued.
func (ps *PhaseSystem) HasMorePendingActSetups() bool {
	return len(ps.state.PendingActSetups) > 0
}

// AssignStrike marks one strike against a character. The third strike
// kills; the last survivor triggers the endgame under the final-girl
// module, and a dead roster loses the game.
func (ps *PhaseSystem) AssignStrike(id Suit) {
	gs := ps.state

	character := gs.Character(id)
	if character == nil {
		ps.logger.Printf("assign strike: no character for suit %s", id)
		return
	}

	character.Strikes++
	if character.Strikes >= deathStrikes {
		character.IsDead = true
	}
	if gs.StrikesToAssign > 0 {
		gs.StrikesToAssign--
	}

	survivors := 0
	for _, c := range gs.Characters {
		if !c.IsDead {
			survivors++
		}
	}

	if survivors == 0 {
		gs.IsGameWon = false
		gs.CurrentPhase = PhaseWin
		return
	}
	if gs.FinalGirlMode && survivors == 1 && gs.CurrentAct < 3 {
		ps.StartAct3()
		gs.JokersAdded = true
	}
}

// ToggleSacrificeConfirmed records whether the table has agreed on the
// scene's sacrifice during the stakes conversation.
func (ps *PhaseSystem) ToggleSacrificeConfirmed() {
	ps.state.SacrificeConfirmed = !ps.state.SacrificeConfirmed
}

// AwardGenrePoint moves one genre point from the table pool to the players.
func (ps *PhaseSystem) AwardGenrePoint() {
	gs := ps.state
	if gs.TableGenrePoints > 0 {
		gs.TableGenrePoints--
		gs.PlayerGenrePoints++
	}
}

// ToggleGenrePointUsage spends or refunds a player genre point for the
// current scene.
func (ps *PhaseSystem) ToggleGenrePointUsage() {
	gs := ps.state
	if gs.IsGenrePointUsed {
		gs.IsGenrePointUsed = false
		gs.PlayerGenrePoints++
	} else if gs.PlayerGenrePoints > 0 {
		gs.IsGenrePointUsed = true
		gs.PlayerGenrePoints--
	}
}

// ToggleGenrePointAward grants or revokes this scene's genre-point award.
func (ps *PhaseSystem) ToggleGenrePointAward() {
	gs := ps.state
	if gs.IsGenrePointAwarded {
		gs.IsGenrePointAwarded = false
		gs.PlayerGenrePoints--
		gs.TableGenrePoints++
	} else if gs.TableGenrePoints > 0 {
		gs.IsGenrePointAwarded = true
		gs.TableGenrePoints--
		gs.PlayerGenrePoints++
	}
}

// applyGameStateUpdates commits the consequences of the scene's roll. The
// active card and the success verdict are persisted for the fallout phase:
// a face resolution reshuffles the trophy pile, and the new top must not
// retroactively change what the roll beat.
func (ps *PhaseSystem) applyGameStateUpdates() {
	gs := ps.state

	active := gs.ActiveCard()
	gs.FalloutCard = active
	gs.FalloutSuccess = gs.IsSuccess()

	if gs.Dice.IsBreakingPoint() {
		gs.StrikesToAssign++
	}

	switch {
	case gs.SelectedJoker != JokerNone:
		ps.handleJokerResolution()
	case active == nil:
		// nothing on the table to resolve
	case active.Rank == RankAce:
		ps.handleAceResolution(active)
	case active.Rank <= 10:
		ps.handleNumberCardResolution(active)
	default:
		ps.handleFaceCardResolution(active)
	}

	if !gs.IsEndgame && gs.SelectedJoker == JokerNone &&
		(active == nil || active.Rank != RankAce) &&
		gs.CardsAddedFromReserve >= act3ReserveThreshold && gs.CurrentAct < 3 {
		ps.StartAct3()
	}
}

// handleJokerResolution resolves a joker scene. Beating the red joker wins
// the game outright; failing it costs three strikes. The black joker leaves
// play either way, taking the deck's highest face card with it on a success
// and summoning a King on a failure, and forces a full shuffle.
func (ps *PhaseSystem) handleJokerResolution() {
	gs := ps.state
	success := gs.IsSuccess()

	if gs.SelectedJoker == RedJoker {
		if success {
			gs.IsGameWon = true
			gs.CurrentPhase = PhaseWin
			return
		}
		gs.StrikesToAssign += 3
		return
	}

	if success {
		ps.deck.RemoveHighestFaceCardFromDeck()
	} else {
		ps.deck.AddFaceCardFromReserve(RankKing)
	}
	gs.IsBlackJokerRemoved = true
	ps.deck.ShuffleThreatDeck()
	ps.deck.ShuffleTrophyPile()
	gs.SelectedJoker = JokerNone
	ps.TriggerJokerEvent()
}

// handleAceResolution resolves an Ace scene. A claimed Ace is gone for
// good; a failed one goes back under the deck.
func (ps *PhaseSystem) handleAceResolution(card *LivePlayCard) {
	if ps.state.IsSuccess() {
		return
	}
	if err := ps.deck.UpdateDeckState(card.Rank, card.Suit, DeckActionReturn); err != nil {
		ps.logger.Printf("ace resolution: %v", err)
	}
}

// handleNumberCardResolution resolves a number-card scene. Either outcome
// feeds the next reserve card into the deck.
func (ps *PhaseSystem) handleNumberCardResolution(card *LivePlayCard) {
	if ps.state.IsSuccess() {
		ps.deck.AddCardToTrophyPile(card)
		ps.deck.RevealHiddenTen()
	} else {
		if err := ps.deck.UpdateDeckState(card.Rank, card.Suit, DeckActionReturn); err != nil {
			ps.logger.Printf("number resolution: %v", err)
		}
	}
	ps.deck.AddNextReserve()
}

// handleFaceCardResolution resolves a face-card scene. Defeating a face
// card whose suit's weakness is still undiscovered removes the card for
// good; an already-solved suit merely drives the threat off. Every face
// scene escalates the deck and ends with the mandatory shuffle.
func (ps *PhaseSystem) handleFaceCardResolution(card *LivePlayCard) {
	gs := ps.state

	if gs.IsSuccess() {
		if !ps.weaknessFound(card.Suit) {
			ps.removeFromTable(card)
			delete(gs.DrawnCards, card.ID())
			gs.RemovedFaceCardIDs[card.ID()] = true
			gs.RemovedFaceCards[card.Rank]++
		}
		if gs.Dice.EffortRolled && gs.Dice.Effort >= 3 {
			ps.deck.AddFaceCardFromReserve(RankQueen)
		} else {
			ps.deck.AddFaceCardFromReserve(RankJack)
		}
	} else {
		gs.StrikesToAssign++
		ps.deck.AddFaceCardFromReserve(RankKing)
		if gs.CurrentAct == 1 {
			gs.CurrentAct = 2
		}
	}

	ps.deck.ShuffleThreatDeck()
	ps.deck.ShuffleTrophyPile()
}

func (ps *PhaseSystem) weaknessFound(suit Suit) bool {
	for _, found := range ps.state.WeaknessesFound {
		if found == suit {
			return true
		}
	}
	return false
}

func (ps *PhaseSystem) removeFromTable(card *LivePlayCard) {
	gs := ps.state
	for i, visible := range gs.VisibleCards {
		if visible.ID() == card.ID() {
			gs.VisibleCards = append(gs.VisibleCards[:i], gs.VisibleCards[i+1:]...)
			break
		}
	}
	if gs.SelectedCardID == card.ID() {
		gs.SelectedCardID = ""
	}
}

// StartNextScene closes out the fallout phase: it records a discovered
// weakness, detours through any queued act-setup screens, clears the scene
// state, and stages the next card. Finding the fourth weakness forces the
// endgame and the jokers if they are not already in play.
func (ps *PhaseSystem) StartNextScene() {
	gs := ps.state
	if gs.IsGameWon {
		return
	}

	if fc := gs.FalloutCard; fc != nil && fc.IsFace() && !ps.weaknessFound(fc.Suit) && gs.FalloutSuccess {
		gs.WeaknessesFound = append(gs.WeaknessesFound, fc.Suit)
		if len(gs.WeaknessesFound) >= len(Suits) {
			if gs.CurrentAct < 3 {
				gs.CurrentAct = 3
				gs.IsEndgame = true
				gs.PendingActSetups = append(gs.PendingActSetups, ActSetupAct3)
			}
			if !gs.JokersAdded {
				gs.JokersAdded = true
				gs.PendingActSetups = append(gs.PendingActSetups, ActSetupJokers)
			}
		}
	}

	if card := gs.ActiveCard(); card != nil {
		ps.removeFromTable(card)
	}
	gs.SelectedCardID = ""
	gs.FalloutCard = nil
	gs.FalloutSuccess = false
	gs.SelectedJoker = JokerNone
	gs.ManualJoker = JokerNone
	gs.SacrificeConfirmed = false
	gs.IsGenrePointUsed = false
	gs.IsGenrePointAwarded = false
	gs.Dice.Clear()
	gs.LastAddedFaceCardRank = 0

	if ps.HasMorePendingActSetups() {
		gs.CurrentPhase = PhaseActSetup
		return
	}
	if gs.IsEndgame && !gs.IsEndgameInitialized {
		gs.CurrentPhase = PhaseActSetup
		return
	}

	ps.stageNextCard()
	gs.CurrentPhase = PhaseSceneSetup
}

// FullReset returns the table to the welcome screen with every pool at its
// initial value.
func (ps *PhaseSystem) FullReset() {
	ps.state.resetAll()
}
