package types

import "errors"

var (
	// ErrInvalidMessage is returned when a message is invalid
	ErrInvalidMessage = errors.New("invalid message")

	// ErrToolNotFound is returned when a tool is not found
	ErrToolNotFound = errors.New("tool not found")

	// ErrEmptyResponse is returned when the provider returns an empty response
	ErrEmptyResponse = errors.New("empty response from provider")
)
