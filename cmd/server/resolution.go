package main

// Resolution calculator: derives the target difficulty and success/failure
// from the active card, the active joker, and the two dice. Pure reads over
// the game state.

// trophyTopRank returns the base difficulty set by the trophy pile.
func (gs *GameState) trophyTopRank() int {
	if gs.TrophyTop == nil || gs.TrophyTop.Rank == 0 {
		return 0
	}
	return gs.TrophyTop.Rank
}

// TargetDifficulty computes the roll target for the current scene. Jokers
// test against the trophy top with no modifier, number cards against their
// own rank, and face cards against the trophy top plus their fixed modifier.
func (gs *GameState) TargetDifficulty() int {
	if gs.SelectedJoker != JokerNone {
		return gs.trophyTopRank()
	}

	card := gs.ActiveCard()
	if card == nil {
		return 0
	}

	if card.Rank <= 10 {
		return card.Rank
	}

	return gs.trophyTopRank() + faceCardModifiers[card.Rank]
}

// RollTotal returns the d13 result for the scene; ok is false until both
// dice have been recorded.
func (gs *GameState) RollTotal() (int, bool) {
	return gs.Dice.Total()
}

// IsSuccess reports whether the recorded roll meets the target difficulty.
// A scene with no complete roll is never a success.
func (gs *GameState) IsSuccess() bool {
	total, ok := gs.Dice.Total()
	if !ok {
		return false
	}
	return total >= gs.TargetDifficulty()
}

// EffortResult returns the effort-scale row for the recorded effort die, or
// nil when the effort die has not been set.
func (gs *GameState) EffortResult() *EffortLevel {
	if !gs.Dice.EffortRolled {
		return nil
	}
	index := gs.Dice.Effort - 1
	if index < 0 || index >= len(EffortScale) {
		return nil
	}
	return &EffortScale[index]
}
