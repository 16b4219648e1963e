package game

import "errors"

var (
	// ErrInvalidPayload is returned when an extracted document does not match
	// the schema of the requested kind.
	ErrInvalidPayload = errors.New("game: payload does not match schema")

	// ErrUnknownKind is returned for a payload kind the game does not know.
	ErrUnknownKind = errors.New("game: unknown payload kind")

	// ErrSessionNotFound is returned by LoadSession when no save exists.
	ErrSessionNotFound = errors.New("game: session not found")

	// ErrNotEnoughPoets is returned when a poetry party cannot be held.
	ErrNotEnoughPoets = errors.New("game: not enough poets for a poetry party")
)
