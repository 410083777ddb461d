package commands

import (
	"context"

	"smartctx/internal/application/compiler"
	"smartctx/internal/domain"
)

// CompileCommand compiles a context at a chosen link depth.
type CompileCommand struct {
	engine  *compiler.Engine
	Context *domain.SmartContext
	Options compiler.Options
}

// NewCompileCommand creates a new CompileCommand. Options are taken as
// given: depth 0 means depth 0, so callers resolve defaults against the
// context's settings themselves.
func NewCompileCommand(engine *compiler.Engine, sc *domain.SmartContext, opts compiler.Options) *CompileCommand {
	return &CompileCommand{
		engine:  engine,
		Context: sc,
		Options: opts,
	}
}

// Execute runs the compile and returns the assembled context and stats.
func (c *CompileCommand) Execute(ctx context.Context) (*compiler.Result, error) {
	return c.engine.Compile(ctx, c.Context, c.Options)
}
