package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/observability"
	"github.com/aretw0/megaverse/pkg/ports"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2500 * time.Millisecond
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Dispatcher runs a command queue with retry, backoff and abort-on-exhaustion.
type Dispatcher struct {
	gateway     ports.Gateway
	maxAttempts int
	baseDelay   time.Duration
	sleep       SleepFunc
	logger      *slog.Logger
	metrics     *observability.Metrics
	onOutcome   func(domain.Outcome)
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithMaxAttempts sets how many times a command is tried before aborting (minimum 1).
func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the first backoff wait; later waits double.
func WithBaseDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		if delay >= 0 {
			d.baseDelay = delay
		}
	}
}

// WithSleeper overrides how backoff waits are performed.
func WithSleeper(sleep SleepFunc) Option {
	return func(d *Dispatcher) {
		d.sleep = sleep
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics records attempts, backoff and outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithOutcomeHook is called after each outcome is recorded.
func WithOutcomeHook(fn func(domain.Outcome)) Option {
	return func(d *Dispatcher) {
		d.onOutcome = fn
	}
}

// New creates a Dispatcher over gw.
func New(gw ports.Gateway, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		gateway:     gw,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		sleep:       Sleep,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Backoff returns the wait after failed attempt n (1-based): base * 2^(n-1).
// The result saturates at the largest Duration instead of overflowing.
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if shift >= 63 || base > time.Duration(math.MaxInt64>>shift) {
		return time.Duration(math.MaxInt64)
	}
	return base << shift
}

// Run executes commands in order and returns one outcome per attempted command.
// The run stops at the first aborted command; later commands are not attempted.
func (d *Dispatcher) Run(ctx context.Context, commands []domain.Command) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(commands))

	for i, cmd := range commands {
		outcome := d.runCommand(ctx, cmd)
		outcomes = append(outcomes, outcome)
		if d.onOutcome != nil {
			d.onOutcome(outcome)
		}

		if outcome.Aborted {
			d.logger.Error("queue aborted",
				"command", cmd.String(),
				"remaining", len(commands)-i-1,
				"error", outcome.Err,
			)
			break
		}
	}

	return outcomes
}

func (d *Dispatcher) runCommand(ctx context.Context, cmd domain.Command) domain.Outcome {
	var lastErr error

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		d.metrics.ObserveAttempt(string(cmd.Kind), string(cmd.Op))

		resp, err := Execute(ctx, d.gateway, cmd)
		if err == nil {
			status := 0
			if resp != nil {
				status = resp.Status
			}
			d.logger.Info("command succeeded", "command", cmd.String(), "status", status, "attempt", attempt)
			d.metrics.ObserveOutcome("success")
			return domain.Outcome{Command: cmd, Success: true, Attempts: attempt, Response: resp}
		}
		lastErr = err

		// Retrying cannot fix a structurally invalid command.
		if errors.Is(err, domain.ErrInvalidAttribute) || errors.Is(err, domain.ErrUnsupportedCommand) {
			return d.abort(cmd, attempt, err)
		}

		if attempt == d.maxAttempts {
			break
		}

		wait := Backoff(d.baseDelay, attempt)
		d.logger.Warn("command failed, retrying",
			"command", cmd.String(),
			"attempt", attempt,
			"max_attempts", d.maxAttempts,
			"backoff", wait,
			"error", err,
		)
		d.metrics.ObserveBackoff(wait)
		if err := d.sleep(ctx, wait); err != nil {
			return d.abort(cmd, attempt, fmt.Errorf("interrupted while backing off: %w", err))
		}
	}

	return d.abort(cmd, d.maxAttempts, fmt.Errorf("failed after %d attempts: %w", d.maxAttempts, lastErr))
}

func (d *Dispatcher) abort(cmd domain.Command, attempts int, err error) domain.Outcome {
	d.metrics.ObserveOutcome("aborted")
	return domain.Outcome{
		Command:  cmd,
		Aborted:  true,
		Attempts: attempts,
		Err:      fmt.Errorf("%w: %s: %w", domain.ErrAbortedQueue, cmd.String(), err),
	}
}

// Execute maps a command to its gateway operation and performs a single call.
func Execute(ctx context.Context, gw ports.Gateway, cmd domain.Command) (*domain.Response, error) {
	switch cmd.Op {
	case domain.OpCreate:
		switch cmd.Kind {
		case domain.EntityPolyanet:
			return gw.CreatePolyanet(ctx, cmd.Row, cmd.Column)
		case domain.EntitySoloon:
			return gw.CreateSoloon(ctx, cmd.Row, cmd.Column, cmd.Attributes)
		case domain.EntityCometh:
			return gw.CreateCometh(ctx, cmd.Row, cmd.Column, cmd.Attributes)
		}
	case domain.OpDelete:
		switch cmd.Kind {
		case domain.EntityPolyanet:
			return gw.DeletePolyanet(ctx, cmd.Row, cmd.Column)
		case domain.EntitySoloon:
			return gw.DeleteSoloon(ctx, cmd.Row, cmd.Column)
		case domain.EntityCometh:
			return gw.DeleteCometh(ctx, cmd.Row, cmd.Column)
		}
	}
	return nil, fmt.Errorf("%w: %s %s", domain.ErrUnsupportedCommand, cmd.Op, cmd.Kind)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
