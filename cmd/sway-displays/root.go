// Package main provides the CLI entrypoint for sway-displays.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sway-displays/internal/config"
	"github.com/jmylchreest/sway-displays/internal/core"
	"github.com/jmylchreest/sway-displays/internal/prompt"
	"github.com/jmylchreest/sway-displays/internal/store"
	"github.com/jmylchreest/sway-displays/internal/sway"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose      bool
		documentPath string
		settingsPath string
	}
	logger *slog.Logger

	reconciler *core.Reconciler
	swayClient *sway.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sway-displays",
	Short: "Save and restore sway display layouts",
	Long: `sway-displays saves and restores display layouts for sway.

Default configurations are keyed by the set of connected displays, so
"sway-displays set" picks the layout saved for whatever is plugged in.
Custom configurations are saved and applied by name.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		reconciler = core.NewReconciler(nil, documentPath(), cmd.OutOrStdout(), logger)
		reconciler.SetConfirmer(prompt.NewConfirmerWithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Prompt.Color))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if swayClient != nil {
			err := swayClient.Close()
			swayClient = nil
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.documentPath, "config", "c", "",
		"Path to saved configurations (default: ~/.config/sway-displays/config.yml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.settingsPath, "settings", "",
		"Path to settings file (default: ~/.config/sway-displays/settings.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// documentPath returns the saved-configurations path: --config, then the
// settings file, then the default.
func documentPath() string {
	if globalOpts.documentPath != "" {
		return globalOpts.documentPath
	}
	return cfg.StorePath()
}

// loadStore reads the saved configurations and hands them to the
// reconciler. Commands that never touch them, like show-connected, skip it.
func loadStore() error {
	path := documentPath()
	st, err := store.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded configurations", "path", path,
		"default", len(st.Default), "custom", len(st.Custom))

	reconciler.SetStore(st)
	return nil
}

// connect opens the sway connection and hands it to the reconciler.
// Commands that only read the saved document never call it.
func connect(cmd *cobra.Command) error {
	path, err := sway.SocketPath(cfg.IPC.Socket)
	if err != nil {
		return err
	}

	client, err := sway.Dial(cmd.Context(), path, logger)
	if err != nil {
		return err
	}
	client.SetTimeout(cfg.IPC.Timeout.Duration())
	logger.Debug("connected to sway", "socket", path)

	swayClient = client
	reconciler.SetCompositor(client)
	return nil
}
