package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Keep a layout applied as displays change (not implemented)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconciler.RunContinuous(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
