package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/megaverse/internal/cli"
	"github.com/aretw0/megaverse/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "megaverse",
	Short: "Megaverse builds maps of astral objects on a remote API",
	Long: `Megaverse validates a grid of POLYANETs, SOLOONs and COMETHs, compiles it into
create (or delete) commands and sends them one by one to the megaverse API,
retrying with exponential backoff.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("maps", "maps.json", "File with the named maps (JSON or YAML)")
	rootCmd.PersistentFlags().String("map", "map2", "Name of the map to use")
	rootCmd.PersistentFlags().String("config", "", "Settings file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// loggerFromFlags builds the logger selected by the persistent logging flags.
func loggerFromFlags(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return cli.CreateLogger(cli.LogFlags{Debug: debug, Level: level, Format: format})
}

// inspectOptions reads the persistent flags shared by the read-only commands.
func inspectOptions(cmd *cobra.Command) cli.InspectOptions {
	mapsPath, _ := cmd.Flags().GetString("maps")
	mapName, _ := cmd.Flags().GetString("map")

	return cli.InspectOptions{
		MapsPath: mapsPath,
		MapName:  mapName,
		Out:      os.Stdout,
		Logger:   loggerFromFlags(cmd),
		Renderer: tui.NewRenderer(),
	}
}
