package commands

import (
	"context"

	"smartctx/internal/domain"
)

// RemoveItemCommand removes a key and its descendant keys from a context.
// Removing a missing key is a no-op.
type RemoveItemCommand struct {
	Context *domain.SmartContext
	Key     string
}

// NewRemoveItemCommand creates a new RemoveItemCommand.
func NewRemoveItemCommand(sc *domain.SmartContext, key string) *RemoveItemCommand {
	return &RemoveItemCommand{Context: sc, Key: key}
}

// Execute performs the removal.
func (c *RemoveItemCommand) Execute(ctx context.Context) error {
	c.Context.RemoveItem(c.Key)
	return nil
}
