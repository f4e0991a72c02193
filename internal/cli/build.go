package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/megaverse"
	"github.com/aretw0/megaverse/internal/presentation/report"
	"github.com/aretw0/megaverse/internal/presentation/tui"
	"github.com/aretw0/megaverse/internal/validator"
	megahttp "github.com/aretw0/megaverse/pkg/adapters/http"
	"github.com/aretw0/megaverse/pkg/adapters/memory"
	"github.com/aretw0/megaverse/pkg/adapters/redis"
	"github.com/aretw0/megaverse/pkg/config"
	"github.com/aretw0/megaverse/pkg/dispatcher"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/observability"
	"github.com/aretw0/megaverse/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// BuildOptions configures a single `megaverse run`.
type BuildOptions struct {
	MapsPath string
	MapName  string
	Settings config.Settings
	Clear    bool
	DryRun   bool
	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string

	Out      io.Writer
	Logger   *slog.Logger
	Renderer tui.Renderer
	// Sleep replaces every wait (courtesy delay and backoff). Tests only.
	Sleep func(ctx context.Context, d time.Duration) error
}

// RunBuild loads, validates and builds (or clears) one map.
// The returned error is non-nil on validation failure, lock contention or abort.
func RunBuild(ctx context.Context, opts BuildOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = CreateLogger(LogFlags{})
	}
	out := opts.Out

	data, err := loadMap(opts.MapsPath, opts.MapName)
	if err != nil {
		return err
	}
	if err := validator.CheckDeclaredSize(data); err != nil {
		logger.Warn("Declared size ignored", "map", opts.MapName, "err", err)
		printSystemMessage(out, "Warning: %v", err)
	}

	settings := opts.Settings
	if err := settings.Validate(opts.DryRun); err != nil {
		return err
	}

	mode := domain.ModeNormal
	if opts.Clear {
		mode = domain.ModeClear
	}

	render(out, opts.Renderer, report.MapHeader(opts.MapName, data))
	fmt.Fprintln(out)
	fmt.Fprint(out, report.Visualize(data.Map))
	fmt.Fprintln(out)

	// Reject the grid before taking the lock or touching the network.
	cmds, err := megaverse.Plan(data.Map, mode)
	if err != nil {
		return fmt.Errorf("map %s rejected: %w", opts.MapName, err)
	}
	printSystemMessage(out, "%d commands to send (%s mode)", len(cmds), mode)

	locker, closeLocker := newLocker(settings)
	defer closeLocker()

	lockKey := settings.CandidateID
	if opts.DryRun {
		lockKey = "dry-run:" + opts.MapName
	}
	unlock, err := locker.Acquire(ctx, lockKey, settings.LockTTL)
	if err != nil {
		return fmt.Errorf("cannot start build: %w", err)
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			logger.Warn("Failed to release build lock", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	gw := newGateway(opts, settings, logger, metrics)

	dispatchOpts := []dispatcher.Option{
		dispatcher.WithMaxAttempts(settings.MaxAttempts),
		dispatcher.WithBaseDelay(settings.BaseDelay),
		dispatcher.WithMetrics(metrics),
		dispatcher.WithOutcomeHook(func(o domain.Outcome) {
			if o.Success {
				fmt.Fprintln(out, tui.Success(fmt.Sprintf("  ok   %s", o.Command)))
				return
			}
			fmt.Fprintln(out, tui.Failure(fmt.Sprintf("  FAIL %s (after %d attempts)", o.Command, o.Attempts)))
		}),
	}
	if opts.Sleep != nil {
		dispatchOpts = append(dispatchOpts, dispatcher.WithSleeper(opts.Sleep))
	}

	builder := megaverse.New(gw,
		megaverse.WithLogger(logger),
		megaverse.WithDispatchOptions(dispatchOpts...),
	)

	res, buildErr := builder.Build(ctx, data.Map, mode)
	if res != nil {
		fmt.Fprintln(out)
		render(out, opts.Renderer, report.Outcomes(res.Outcomes))
		fmt.Fprintln(out)
		render(out, opts.Renderer, report.Summary(res.Summary))
	}

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, reg); err != nil {
			logger.Warn("Failed to write metrics", "path", opts.MetricsFile, "err", err)
		}
	}

	if buildErr != nil {
		if errors.Is(buildErr, context.Canceled) {
			return fmt.Errorf("build interrupted: %w", buildErr)
		}
		return buildErr
	}
	return nil
}

// newLocker picks Redis when an address is configured, otherwise an in-process lock.
func newLocker(s config.Settings) (ports.RunLocker, func()) {
	if s.RedisAddr == "" {
		return memory.NewLocker(), func() {}
	}
	l := redis.New(s.RedisAddr, "", 0)
	return l, func() { _ = l.Close() }
}

func newGateway(opts BuildOptions, s config.Settings, logger *slog.Logger, metrics *observability.Metrics) ports.Gateway {
	if opts.DryRun {
		return memory.NewGateway()
	}
	gwOpts := []megahttp.Option{
		megahttp.WithLogger(logger),
		megahttp.WithMetrics(metrics),
	}
	if opts.Sleep != nil {
		gwOpts = append(gwOpts, megahttp.WithSleeper(opts.Sleep))
	}
	return megahttp.New(megahttp.Config{
		BaseURL:     s.BaseURL,
		CandidateID: s.CandidateID,
		Delay:       s.Delay,
		Timeout:     s.Timeout,
	}, gwOpts...)
}
