package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/sway-displays/internal/core"
)

var setOpts struct {
	dryRun bool
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Apply the layout saved for the connected displays",
	Long: `Apply the default configuration saved for the set of displays that is
connected right now. Nothing is changed if no configuration was saved.

Examples:
  # Restore the layout, e.g. from a sway config line
  exec_always sway-displays set

  # Show the sway commands without running them
  sway-displays set --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		if err := connect(cmd); err != nil {
			return err
		}
		reconciler.SetOptions(core.Options{DryRun: setOpts.dryRun})
		return reconciler.Set(cmd.Context())
	},
}

var setCustomCmd = &cobra.Command{
	Use:   "set-custom <name>",
	Short: "Apply a named layout",
	Long: `Apply the custom configuration called <name> to the displays that are
connected. Displays in the configuration that are not connected are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		if err := connect(cmd); err != nil {
			return err
		}
		reconciler.SetOptions(core.Options{DryRun: setOpts.dryRun})
		return reconciler.SetCustom(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(setCustomCmd)

	for _, cmd := range []*cobra.Command{setCmd, setCustomCmd} {
		cmd.Flags().BoolVarP(&setOpts.dryRun, "dry-run", "n", false,
			"Print the sway commands instead of running them")
	}
}
