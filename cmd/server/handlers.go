package main

import (
	"encoding/json"
	"fmt"

	"github.com/nocturne-rpg/threat-deck-engine/internal/protocol"
)

// IntentHandlers decodes client intent envelopes and routes them to the
// session. Every intent is fire-and-forget from the client's point of view;
// the resulting state changes come back as broadcast patches.
type IntentHandlers struct {
	session *LivePlaySession
	logger  Logger
}

func NewIntentHandlers(session *LivePlaySession, logger Logger) *IntentHandlers {
	return &IntentHandlers{
		session: session,
		logger:  logger,
	}
}

// parseSuit validates a wire suit string.
func parseSuit(raw string) (Suit, error) {
	switch suit := Suit(raw); suit {
	case Spades, Hearts, Clubs, Diamonds, SuitUnknown:
		return suit, nil
	default:
		return SuitUnknown, NewGameError("INVALID_SUIT", "unknown suit %q", raw)
	}
}

// parseJoker validates a wire joker string.
func parseJoker(raw string) (JokerColor, error) {
	switch joker := JokerColor(raw); joker {
	case JokerNone, RedJoker, BlackJoker:
		return joker, nil
	default:
		return JokerNone, NewGameError("INVALID_JOKER", "unknown joker %q", raw)
	}
}

// HandleMessage dispatches one intent envelope.
func (h *IntentHandlers) HandleMessage(data []byte) error {
	var env protocol.IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode intent envelope: %w", err)
	}

	switch env.Type {
	case "RequestStartGame":
		var req protocol.RequestStartGame
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		h.session.StartGame(req.PlaysetID)
		return nil

	case "RequestUpdateDeckState":
		var req protocol.RequestUpdateDeckState
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		suit, err := parseSuit(req.Suit)
		if err != nil {
			return err
		}
		return h.session.UpdateDeckState(req.Rank, suit, DeckAction(req.Action))

	case "RequestAddVisibleCard":
		var req protocol.RequestAddVisibleCard
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		joker, err := parseJoker(req.Joker)
		if err != nil {
			return err
		}
		if joker != JokerNone {
			return h.session.AddVisibleCard(0, SuitUnknown, joker)
		}
		suit, err := parseSuit(req.Suit)
		if err != nil {
			return err
		}
		return h.session.AddVisibleCard(req.Rank, suit, JokerNone)

	case "RequestSelectCard":
		var req protocol.RequestSelectCard
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		h.session.SelectCard(req.CardID)
		return nil

	case "RequestSetTrophyTop":
		var req protocol.RequestSetTrophyTop
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		h.session.SetTrophyTop(req.Rank)
		return nil

	case "RequestSetDie":
		var req protocol.RequestSetDie
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.session.SetDie(req.Die, req.Value)

	case "RequestAssignStrike":
		var req protocol.RequestAssignStrike
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.session.AssignStrike(req.CharacterID)

	case "RequestAddNextReserve":
		h.session.AddNextReserve()
		return nil

	case "RequestShuffleThreatDeck":
		h.session.ShuffleThreatDeck()
		return nil

	case "RequestShuffleTrophyPile":
		h.session.ShuffleTrophyPile()
		return nil

	case "RequestRevealHiddenTen":
		h.session.RevealHiddenTen()
		return nil

	case "RequestNextPhase":
		h.session.NextPhase()
		return nil

	case "RequestPrevPhase":
		h.session.PrevPhase()
		return nil

	case "RequestStartAct3":
		h.session.StartAct3()
		return nil

	case "RequestStartEndgame":
		h.session.StartEndgame()
		return nil

	case "RequestTriggerJokerEvent":
		h.session.TriggerJokerEvent()
		return nil

	case "RequestConsumePendingActSetup":
		h.session.ConsumePendingActSetup()
		return nil

	case "RequestStartNextScene":
		h.session.StartNextScene()
		return nil

	case "RequestAwardGenrePoint":
		h.session.AwardGenrePoint()
		return nil

	case "RequestToggleGenrePointUsage":
		h.session.ToggleGenrePointUsage()
		return nil

	case "RequestToggleGenrePointAward":
		h.session.ToggleGenrePointAward()
		return nil

	case "RequestToggleSacrificeConfirmed":
		h.session.ToggleSacrificeConfirmed()
		return nil

	case "RequestFullReset":
		h.session.FullReset()
		return nil

	default:
		h.logger.Printf("unknown intent type: %s", env.Type)
		return nil
	}
}
