package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/megaverse"
	"github.com/aretw0/megaverse/internal/presentation/report"
	"github.com/aretw0/megaverse/internal/presentation/tui"
	"github.com/aretw0/megaverse/internal/validator"
	"github.com/aretw0/megaverse/pkg/domain"
)

// InspectOptions selects a map for the read-only commands.
type InspectOptions struct {
	MapsPath string
	MapName  string
	Clear    bool

	Out      io.Writer
	Logger   *slog.Logger
	Renderer tui.Renderer
}

// RunValidate checks one map and reports whether it can be built.
func RunValidate(opts InspectOptions) error {
	data, err := loadMap(opts.MapsPath, opts.MapName)
	if err != nil {
		return err
	}
	if err := validator.CheckDeclaredSize(data); err != nil {
		printSystemMessage(opts.Out, "Warning: %v", err)
	}
	if err := validator.Validate(data.Map); err != nil {
		return fmt.Errorf("map %s is invalid: %w", opts.MapName, err)
	}
	fmt.Fprintln(opts.Out, tui.Success(fmt.Sprintf("map %s is valid (%dx%d)", opts.MapName, data.Map.Rows(), data.Map.Columns())))
	return nil
}

// RunPlan prints the map and the commands a build would send, without sending them.
func RunPlan(opts InspectOptions) error {
	data, err := loadMap(opts.MapsPath, opts.MapName)
	if err != nil {
		return err
	}

	mode := domain.ModeNormal
	if opts.Clear {
		mode = domain.ModeClear
	}

	render(opts.Out, opts.Renderer, report.MapHeader(opts.MapName, data))
	fmt.Fprintln(opts.Out)
	fmt.Fprint(opts.Out, report.Visualize(data.Map))
	fmt.Fprintln(opts.Out)

	cmds, err := megaverse.Plan(data.Map, mode)
	if err != nil {
		return fmt.Errorf("map %s rejected: %w", opts.MapName, err)
	}
	render(opts.Out, opts.Renderer, report.Commands(cmds))
	return nil
}

// RunShow prints the visualization of a map. Invalid maps are still shown.
func RunShow(opts InspectOptions) error {
	data, err := loadMap(opts.MapsPath, opts.MapName)
	if err != nil {
		return err
	}
	fmt.Fprint(opts.Out, report.Visualize(data.Map))
	return nil
}
