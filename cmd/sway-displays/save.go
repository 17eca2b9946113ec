package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/sway-displays/internal/core"
)

var saveOpts struct {
	force bool
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current layout for the connected displays",
	Long: `Save the current layout as the default configuration for the set of
displays that is connected right now.

If a configuration for these displays already exists you are asked before
it is replaced, unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		if err := connect(cmd); err != nil {
			return err
		}
		reconciler.SetOptions(core.Options{Force: saveOpts.force})
		return reconciler.Save(cmd.Context())
	},
}

var saveCustomCmd = &cobra.Command{
	Use:   "save-custom <name>",
	Short: "Save the current layout under a name",
	Long: `Save the current layout as a custom configuration called <name>.

Custom configurations can later be applied with "set-custom" whichever
displays are connected; displays that are missing are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		if err := connect(cmd); err != nil {
			return err
		}
		reconciler.SetOptions(core.Options{Force: saveOpts.force})
		return reconciler.SaveCustom(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(saveCustomCmd)

	for _, cmd := range []*cobra.Command{saveCmd, saveCustomCmd} {
		cmd.Flags().BoolVarP(&saveOpts.force, "force", "f", false,
			"Overwrite an existing configuration without asking")
	}
}
