// Package common defines sentinel errors shared across the engine, its
// repositories and the CLI. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrInvalidRecipients is returned when an operation needs a non-empty
	// recipient group and gets none.
	ErrInvalidRecipients = errors.New("invalid recipients")

	// ErrInvalidOption is returned when an option value cannot be persisted
	// or has the wrong type.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownCommand is returned by the CLI for an unrecognised command.
	ErrUnknownCommand = errors.New("unknown command")
)
