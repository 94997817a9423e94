package main

import "fmt"

// GameError represents a game logic error
type GameError struct {
	Code    string
	Message string
}

func (e *GameError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewGameError builds a GameError with a formatted message.
func NewGameError(code, format string, v ...interface{}) *GameError {
	return &GameError{Code: code, Message: fmt.Sprintf(format, v...)}
}
