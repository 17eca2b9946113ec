package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/sway-displays/internal/adapter/output"
)

var showConnectedOpts struct {
	format string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all saved configurations",
	Long: `Print every saved configuration as YAML.

The document is read as-is; sway is not contacted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		return reconciler.List(cmd.Context())
	},
}

var showConnectedCmd = &cobra.Command{
	Use:   "show-connected",
	Short: "Print the identity of the connected displays",
	Long: `Print the identities of the connected displays, in the form used as the
key of default configurations. Each identity is "make model serial".

Formats:
  plain  the topology on one line (default)
  ids    one identity per line
  json   name, make, model, serial and identity of each display`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := output.NewFormatter(output.FormatType(showConnectedOpts.format))
		if err != nil {
			return err
		}
		reconciler.SetFormatter(formatter)

		if err := connect(cmd); err != nil {
			return err
		}
		return reconciler.ShowConnected(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showConnectedCmd)

	showConnectedCmd.Flags().StringVarP(&showConnectedOpts.format, "format", "f", "plain",
		"Output format (plain, ids, json)")
}
