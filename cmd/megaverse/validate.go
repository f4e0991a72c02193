package main

import (
	"fmt"
	"os"

	"github.com/aretw0/megaverse/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the selected map",
	Long:  `Checks that the map is rectangular, uses only known cells and that every SOLOON touches a POLYANET.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunValidate(inspectOptions(cmd)); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
