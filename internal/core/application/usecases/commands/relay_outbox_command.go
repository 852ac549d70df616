package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand drains a batch of unpublished outbox messages to the
// message broker.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand creates a command to relay pending outbox messages.
func NewRelayOutboxCommand() (RelayOutboxCommand, error) {
	return RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}
