package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/megaverse"
	"github.com/aretw0/megaverse/internal/cli"
	"github.com/aretw0/megaverse/internal/presentation/tui"
	"github.com/aretw0/megaverse/pkg/config"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build (or clear) the selected map on the megaverse API",
	Long: `Validates the selected map, compiles it into commands and sends them in order.
A command that fails after all attempts aborts the rest of the queue.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := buildOptions(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, megaverse.Version)
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.RunBuild(ctx, opts); err != nil {
			if sig := ctx.Signal(); sig != nil {
				fmt.Printf("\n>>> Interrupted by %v\n", sig)
			}
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("clear", false, "Delete the map's entities instead of creating them")
	runCmd.Flags().Bool("dry-run", false, "Use the in-memory gateway instead of the remote API")
	runCmd.Flags().String("redis-addr", "", "Redis address for the cross-host build lock")
	runCmd.Flags().String("base-url", "", "Megaverse API base URL")
	runCmd.Flags().String("candidate-id", "", "Candidate id sent with every request")
	runCmd.Flags().Duration("delay", 0, "Courtesy delay before each request (e.g. 750ms)")
	runCmd.Flags().Int("max-attempts", 0, "Attempts per command before the queue aborts")
	runCmd.Flags().Duration("backoff", 0, "Base delay of the exponential backoff (e.g. 2.5s)")
	runCmd.Flags().String("metrics-file", "", "Write run metrics in Prometheus text format to this file")
}

// buildOptions layers the flags that were set over the loaded settings.
func buildOptions(cmd *cobra.Command) (cli.BuildOptions, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return cli.BuildOptions{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		settings.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("candidate-id") {
		settings.CandidateID, _ = flags.GetString("candidate-id")
	}
	if flags.Changed("redis-addr") {
		settings.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("delay") {
		settings.Delay, _ = flags.GetDuration("delay")
	}
	if flags.Changed("max-attempts") {
		settings.MaxAttempts, _ = flags.GetInt("max-attempts")
	}
	if flags.Changed("backoff") {
		settings.BaseDelay, _ = flags.GetDuration("backoff")
	}

	opts := inspectOptions(cmd)
	clearMode, _ := flags.GetBool("clear")
	dryRun, _ := flags.GetBool("dry-run")
	metricsFile, _ := flags.GetString("metrics-file")

	return cli.BuildOptions{
		MapsPath:    opts.MapsPath,
		MapName:     opts.MapName,
		Settings:    settings,
		Clear:       clearMode,
		DryRun:      dryRun,
		MetricsFile: metricsFile,
		Out:         opts.Out,
		Logger:      opts.Logger,
		Renderer:    opts.Renderer,
	}, nil
}
