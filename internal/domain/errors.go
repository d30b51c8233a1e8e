package domain

import "errors"

var (
	// ErrSessionNotFound is returned for a session ID never issued by the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCharacterNotFound is returned when a roster edit targets an unknown character.
	ErrCharacterNotFound = errors.New("character not found")
)
