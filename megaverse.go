package megaverse

import (
	"context"
	"log/slog"

	"github.com/aretw0/megaverse/internal/compiler"
	"github.com/aretw0/megaverse/internal/logging"
	"github.com/aretw0/megaverse/internal/validator"
	"github.com/aretw0/megaverse/pkg/dispatcher"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/ports"
)

// Version is the release of the megaverse module.
var Version = "0.1.0"

// Builder validates a grid, compiles it into commands and dispatches them
// against a Gateway.
type Builder struct {
	gateway      ports.Gateway
	logger       *slog.Logger
	dispatchOpts []dispatcher.Option
}

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithLogger sets a structured logger, shared with the dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithDispatchOptions forwards options to the underlying dispatcher.
func WithDispatchOptions(opts ...dispatcher.Option) Option {
	return func(b *Builder) {
		b.dispatchOpts = append(b.dispatchOpts, opts...)
	}
}

// New creates a Builder sending commands through gw.
func New(gw ports.Gateway, opts ...Option) *Builder {
	b := &Builder{
		gateway: gw,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result is what a build produced.
type Result struct {
	Commands []domain.Command
	Outcomes []domain.Outcome
	Summary  domain.Summary
}

// Plan validates the grid and returns the commands a build would send.
// Nothing is compiled for a rejected grid.
func Plan(grid domain.Grid, mode domain.Mode) ([]domain.Command, error) {
	if err := validator.Validate(grid); err != nil {
		return nil, err
	}
	return compiler.Compile(grid, mode), nil
}

// Build plans the grid and dispatches the commands in order.
// A validation failure returns before any remote call. An aborted queue is
// reported through Result.Summary and also returned as the error.
func (b *Builder) Build(ctx context.Context, grid domain.Grid, mode domain.Mode) (*Result, error) {
	cmds, err := Plan(grid, mode)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Plan compiled", "commands", len(cmds), "mode", mode)

	opts := append([]dispatcher.Option{dispatcher.WithLogger(b.logger)}, b.dispatchOpts...)
	outcomes := dispatcher.New(b.gateway, opts...).Run(ctx, cmds)

	res := &Result{
		Commands: cmds,
		Outcomes: outcomes,
		Summary:  domain.Summarize(len(cmds), outcomes),
	}
	if res.Summary.Aborted {
		return res, res.Summary.AbortErr
	}
	return res, nil
}
