package commands

import (
	"context"

	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
)

// DepthScanCommand computes (or reuses) per-depth compiled stats for a
// context, for depth-selection UIs.
type DepthScanCommand struct {
	engine   *compiler.Engine
	store    *compiler.DepthCacheStore
	Context  *domain.SmartContext
	MaxDepth int
}

// NewDepthScanCommand creates a new DepthScanCommand.
func NewDepthScanCommand(engine *compiler.Engine, store *compiler.DepthCacheStore, sc *domain.SmartContext, maxDepth int) *DepthScanCommand {
	return &DepthScanCommand{
		engine:   engine,
		store:    store,
		Context:  sc,
		MaxDepth: maxDepth,
	}
}

// Execute returns the per-depth array, cached when the context's depth-0
// fingerprint is unchanged.
func (c *DepthScanCommand) Execute(ctx context.Context) (*domain.DepthCache, error) {
	return c.engine.DepthScan(ctx, c.Context, c.store, c.MaxDepth)
}
