package main

import (
	"encoding/json"
	"fmt"
	"testing"
)

// Mock implementations for testing handlers
type MockBroadcaster struct {
	events []BroadcastEvent
}

type BroadcastEvent struct {
	EventType string
	Payload   any
}

func (m *MockBroadcaster) BroadcastEvent(eventType string, payload any) {
	m.events = append(m.events, BroadcastEvent{
		EventType: eventType,
		Payload:   payload,
	})
}

func (m *MockBroadcaster) GetEvents() []BroadcastEvent {
	return m.events
}

func (m *MockBroadcaster) EventTypes() []string {
	types := make([]string, 0, len(m.events))
	for _, event := range m.events {
		types = append(types, event.EventType)
	}
	return types
}

func (m *MockBroadcaster) Reset() {
	m.events = nil
}

type MockLogger struct {
	messages []string
}

func (m *MockLogger) Printf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func newTestHandlers(t *testing.T) (*IntentHandlers, *LivePlaySession, *MockBroadcaster) {
	t.Helper()
	logger := &MockLogger{}
	content := NewContentManager("", logger)
	if err := content.Load(); err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}
	broadcaster := &MockBroadcaster{}
	session := NewLivePlaySession(content, broadcaster, logger)
	return NewIntentHandlers(session, logger), session, broadcaster
}

func intent(t *testing.T, intentType string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	data, err := json.Marshal(map[string]any{"type": intentType, "payload": json.RawMessage(raw)})
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}
	return data
}

func TestHandleMessage_StartGameBroadcastsEverything(t *testing.T) {
	handlers, session, broadcaster := newTestHandlers(t)

	err := handlers.HandleMessage(intent(t, "RequestStartGame", map[string]string{"playsetId": "default"}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if session.state.CurrentPhase != PhaseActSetup {
		t.Errorf("Expected act-setup, got %s", session.state.CurrentPhase)
	}

	seen := make(map[string]bool)
	for _, eventType := range broadcaster.EventTypes() {
		seen[eventType] = true
	}
	for _, want := range []string{"PhaseChanged", "DeckStateChanged", "SceneStateChanged", "CharactersChanged", "GenrePointsChanged"} {
		if !seen[want] {
			t.Errorf("Expected a %s patch, got %v", want, broadcaster.EventTypes())
		}
	}
}

func TestHandleMessage_SetDie(t *testing.T) {
	handlers, session, broadcaster := newTestHandlers(t)
	broadcaster.Reset()

	if err := handlers.HandleMessage(intent(t, "RequestSetDie", map[string]any{"die": "main", "value": 7})); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !session.state.Dice.MainRolled || session.state.Dice.Main != 7 {
		t.Errorf("Expected main die 7, got %+v", session.state.Dice)
	}

	if err := handlers.HandleMessage(intent(t, "RequestSetDie", map[string]any{"die": "d20", "value": 7})); err == nil {
		t.Error("Expected an error for an unknown die")
	}
}

func TestHandleMessage_AddVisibleCardValidatesSuit(t *testing.T) {
	handlers, _, _ := newTestHandlers(t)

	err := handlers.HandleMessage(intent(t, "RequestAddVisibleCard", map[string]any{"rank": 2, "suit": "Swords"}))
	if err == nil {
		t.Error("Expected an error for an unknown suit")
	}
}

func TestHandleMessage_AddVisibleCardJoker(t *testing.T) {
	handlers, session, _ := newTestHandlers(t)

	err := handlers.HandleMessage(intent(t, "RequestAddVisibleCard", map[string]any{"joker": "Red"}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if session.state.SelectedJoker != RedJoker {
		t.Errorf("Expected the red joker active, got %q", session.state.SelectedJoker)
	}
}

func TestHandleMessage_AssignStrikeUnknownCharacter(t *testing.T) {
	handlers, _, _ := newTestHandlers(t)

	err := handlers.HandleMessage(intent(t, "RequestAssignStrike", map[string]string{"characterId": "Coins"}))
	if err == nil {
		t.Error("Expected an error for an unknown character")
	}
}

func TestHandleMessage_UnknownIntentIsLoggedNotFatal(t *testing.T) {
	handlers, _, _ := newTestHandlers(t)
	logger := handlers.logger.(*MockLogger)

	if err := handlers.HandleMessage(intent(t, "RequestSummonDragon", struct{}{})); err != nil {
		t.Fatalf("Expected unknown intents to be ignored, got: %v", err)
	}
	if len(logger.messages) == 0 {
		t.Error("Expected the unknown intent logged")
	}
}

func TestHandleMessage_MalformedEnvelope(t *testing.T) {
	handlers, _, _ := newTestHandlers(t)

	if err := handlers.HandleMessage([]byte("{not json")); err == nil {
		t.Error("Expected an error for a malformed envelope")
	}
}

func TestHandleMessage_GenrePointFlow(t *testing.T) {
	handlers, session, _ := newTestHandlers(t)

	if err := handlers.HandleMessage(intent(t, "RequestAwardGenrePoint", struct{}{})); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := handlers.HandleMessage(intent(t, "RequestToggleGenrePointUsage", struct{}{})); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if session.state.TableGenrePoints != 12 || !session.state.IsGenrePointUsed {
		t.Errorf("Expected a point awarded and spent, got table=%d used=%t",
			session.state.TableGenrePoints, session.state.IsGenrePointUsed)
	}
}
