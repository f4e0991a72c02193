// Package report formats maps, command plans and run summaries for the console.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/megaverse/pkg/domain"
)

// Visualize draws the grid with one glyph per cell, each row prefixed by its index.
//
//	 0: o . o
//	 1: . * →
func Visualize(grid domain.Grid) string {
	if len(grid) == 0 {
		return "Empty or invalid map\n"
	}

	var sb strings.Builder
	for r, row := range grid {
		fmt.Fprintf(&sb, "%2d: ", r)
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MapHeader describes a map as Markdown.
func MapHeader(name string, data domain.MapData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Map %s\n\n", name)
	if data.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", data.Description)
	}
	fmt.Fprintf(&sb, "- Declared size: %dx%d\n", data.Size.Rows, data.Size.Columns)
	fmt.Fprintf(&sb, "- Actual size: %dx%d\n", data.Map.Rows(), data.Map.Columns())
	return sb.String()
}

// Commands lists the compiled plan as a numbered Markdown code block.
func Commands(cmds []domain.Command) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Commands\n\nTotal commands: %d\n\n", len(cmds))
	if len(cmds) == 0 {
		return sb.String()
	}
	sb.WriteString("```\n")
	for i, cmd := range cmds {
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, cmd.String())
	}
	sb.WriteString("```\n")
	return sb.String()
}

// Outcomes lists every attempted command with its result.
func Outcomes(outcomes []domain.Outcome) string {
	var sb strings.Builder
	sb.WriteString("## Outcomes\n\n")
	for i, o := range outcomes {
		status := "ok"
		switch {
		case o.Aborted:
			status = "ABORTED"
		case !o.Success:
			status = "FAILED"
		}
		fmt.Fprintf(&sb, "%d. `%s` %s (attempts: %d)\n", i+1, o.Command.String(), status, o.Attempts)
	}
	return sb.String()
}

// Summary reports success and failure counts, with full detail for the aborting command.
func Summary(s domain.Summary) string {
	var sb strings.Builder
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "Completed: %d/%d successful\n\n", s.Succeeded, s.Total)
	fmt.Fprintf(&sb, "- Attempted: %d\n", s.Attempted)
	fmt.Fprintf(&sb, "- Failed: %d\n", s.Failed)
	fmt.Fprintf(&sb, "- Not attempted: %d\n", s.NotAttempted)

	if s.Aborted {
		sb.WriteString("\n**Queue aborted.**\n\n")
		fmt.Fprintf(&sb, "```\n%s\n```\n", errorDetail(s.AbortErr))
	}
	return sb.String()
}

// errorDetail unwraps a chain of errors into one line per layer.
func errorDetail(err error) string {
	if err == nil {
		return "unknown error"
	}
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) && gwErr.Status != 0 {
		return fmt.Sprintf("%v\nstatus: %d", err, gwErr.Status)
	}
	return err.Error()
}
