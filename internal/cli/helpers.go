package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/megaverse/internal/logging"
	"github.com/aretw0/megaverse/internal/presentation/tui"
	"github.com/aretw0/megaverse/pkg/config"
	"github.com/aretw0/megaverse/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// LogFlags are the logging switches of the command line.
type LogFlags struct {
	Debug  bool
	Level  string // debug, info, warn or error; empty keeps logging off
	Format string // text or json
}

// CreateLogger configures the application logger.
// It writes to Stderr (to separate from the Stdout report). Without --debug
// or --log-level nothing is logged.
func CreateLogger(f LogFlags) *slog.Logger {
	if !f.Debug && f.Level == "" {
		return logging.NewNop()
	}
	level := logging.ParseLevel(f.Level)
	if f.Debug {
		level = slog.LevelDebug
	}
	return logging.New(logging.Options{
		Level: level,
		JSON:  strings.EqualFold(f.Format, "json"),
	})
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// render writes markdown through the renderer, falling back to the raw text.
func render(w io.Writer, r tui.Renderer, markdown string) {
	if r == nil {
		r = tui.Plain
	}
	out, err := r(markdown)
	if err != nil {
		out = markdown
	}
	fmt.Fprint(w, out)
}

// loadMap reads the maps file and selects one map by name.
func loadMap(path, name string) (domain.MapData, error) {
	maps, err := config.LoadMaps(path)
	if err != nil {
		return domain.MapData{}, err
	}
	return maps.Select(name)
}
