package main

import (
	"testing"
)

func stateWithTrophyTop(rank int) *GameState {
	state := NewGameState()
	state.TrophyTop = NewLivePlayCard(rank, Hearts)
	return state
}

func TestTargetDifficulty_NumberCardUsesOwnRank(t *testing.T) {
	state := stateWithTrophyTop(5)
	state.VisibleCards = []*LivePlayCard{NewLivePlayCard(7, Clubs)}
	state.SelectedCardID = "7-Clubs"

	if got := state.TargetDifficulty(); got != 7 {
		t.Errorf("Expected difficulty 7, got %d", got)
	}
}

func TestTargetDifficulty_FaceCardModifiers(t *testing.T) {
	tests := []struct {
		rank int
		want int
	}{
		{RankJack, 6},
		{RankQueen, 7},
		{RankKing, 8},
	}

	for _, tt := range tests {
		state := stateWithTrophyTop(5)
		card := NewLivePlayCard(tt.rank, Spades)
		state.VisibleCards = []*LivePlayCard{card}
		state.SelectedCardID = card.ID()

		if got := state.TargetDifficulty(); got != tt.want {
			t.Errorf("Rank %d: expected difficulty %d, got %d", tt.rank, tt.want, got)
		}
	}
}

func TestTargetDifficulty_JokerIgnoresModifiers(t *testing.T) {
	state := stateWithTrophyTop(7)
	state.SelectedJoker = RedJoker

	if got := state.TargetDifficulty(); got != 7 {
		t.Errorf("Expected the bare trophy rank 7, got %d", got)
	}
}

func TestTargetDifficulty_NoActiveCard(t *testing.T) {
	state := stateWithTrophyTop(5)
	if got := state.TargetDifficulty(); got != 0 {
		t.Errorf("Expected 0 with nothing active, got %d", got)
	}
}

func TestRollTotal_RequiresBothDice(t *testing.T) {
	state := NewGameState()

	if _, ok := state.RollTotal(); ok {
		t.Error("Expected no total with no dice set")
	}

	state.Dice.SetMain(6)
	if _, ok := state.RollTotal(); ok {
		t.Error("Expected no total with only the main die set")
	}

	state.Dice.SetEffort(3)
	total, ok := state.RollTotal()
	if !ok || total != 9 {
		t.Errorf("Expected total 9, got %d (ok=%t)", total, ok)
	}
}

func TestRollTotal_Bounds(t *testing.T) {
	state := NewGameState()

	state.Dice.SetMain(MainDieMax)
	state.Dice.SetEffort(EffortDieMax)
	if total, _ := state.RollTotal(); total != 13 {
		t.Errorf("Expected maximum total 13, got %d", total)
	}

	state.Dice.SetMain(MainDieMin)
	state.Dice.SetEffort(EffortDieMin)
	if total, _ := state.RollTotal(); total != 1 {
		t.Errorf("Expected minimum total 1, got %d", total)
	}
}

func TestDiceState_IgnoresOutOfRangeValues(t *testing.T) {
	var dice DiceState

	dice.SetMain(10)
	dice.SetMain(-1)
	if dice.MainRolled {
		t.Error("Expected out-of-range main die ignored")
	}

	dice.SetEffort(0)
	dice.SetEffort(5)
	if dice.EffortRolled {
		t.Error("Expected out-of-range effort die ignored")
	}

	dice.SetMain(0)
	if !dice.MainRolled || dice.Main != 0 {
		t.Error("Expected zero to be a legal main die result")
	}
}

func TestIsSuccess_MeetsTarget(t *testing.T) {
	state := stateWithTrophyTop(5)
	state.VisibleCards = []*LivePlayCard{NewLivePlayCard(6, Diamonds)}
	state.SelectedCardID = "6-Diamonds"

	state.Dice.SetMain(5)
	state.Dice.SetEffort(1) // total 6, target 6
	if !state.IsSuccess() {
		t.Error("Expected a tie to succeed")
	}

	state.Dice.SetMain(4) // total 5
	if state.IsSuccess() {
		t.Error("Expected 5 against 6 to fail")
	}
}

func TestIsSuccess_IncompleteRollNeverSucceeds(t *testing.T) {
	state := stateWithTrophyTop(1)
	state.SelectedJoker = RedJoker
	state.Dice.SetMain(9)

	if state.IsSuccess() {
		t.Error("Expected no success without the effort die")
	}
}

func TestEffortResult(t *testing.T) {
	state := NewGameState()

	if state.EffortResult() != nil {
		t.Error("Expected nil with no effort die")
	}

	state.Dice.SetEffort(4)
	result := state.EffortResult()
	if result == nil || result.Title != "Breaking Point" {
		t.Fatalf("Expected the breaking-point row, got %+v", result)
	}
	if !state.Dice.IsBreakingPoint() {
		t.Error("Expected effort 4 to be a breaking point")
	}
}

func TestActiveCard_FalloutUsesThePersistedCard(t *testing.T) {
	state := NewGameState()
	fallout := NewLivePlayCard(RankQueen, Hearts)
	state.FalloutCard = fallout
	state.CurrentPhase = PhaseFallout

	if state.ActiveCard() != fallout {
		t.Error("Expected the fallout card during fallout")
	}

	state.CurrentPhase = PhaseSceneSetup
	if state.ActiveCard() != nil {
		t.Error("Expected no active card outside fallout with nothing selected")
	}
}

func TestAct3Countdown(t *testing.T) {
	state := NewGameState()

	countdown, ok := state.Act3Countdown()
	if !ok || countdown != 13 {
		t.Errorf("Expected a 13-card countdown, got %d (ok=%t)", countdown, ok)
	}

	state.CardsAddedFromReserve = 5
	if countdown, _ = state.Act3Countdown(); countdown != 8 {
		t.Errorf("Expected 8 remaining, got %d", countdown)
	}

	state.CurrentAct = 3
	if _, ok = state.Act3Countdown(); ok {
		t.Error("Expected no countdown once Act 3 has begun")
	}
}
