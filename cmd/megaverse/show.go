package main

import (
	"fmt"
	"os"

	"github.com/aretw0/megaverse/internal/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the selected map",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunShow(inspectOptions(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
