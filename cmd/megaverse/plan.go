package main

import (
	"fmt"
	"os"

	"github.com/aretw0/megaverse/internal/cli"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the commands a run would send",
	Run: func(cmd *cobra.Command, args []string) {
		opts := inspectOptions(cmd)
		opts.Clear, _ = cmd.Flags().GetBool("clear")

		if err := cli.RunPlan(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Bool("clear", false, "Plan the delete commands instead")
}
