// Package core ties saved configurations to the live display topology:
// capturing it into the store and replaying stored configurations onto it.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/sway-displays/internal/adapter/output"
	"github.com/jmylchreest/sway-displays/internal/model"
	"github.com/jmylchreest/sway-displays/internal/prompt"
	"github.com/jmylchreest/sway-displays/internal/store"
)

// ErrContinuousUnsupported is returned for continuous mode, which has no
// defined behavior yet.
var ErrContinuousUnsupported = errors.New("continuous mode is not supported")

// ErrNoStore is returned by actions that need the saved configurations
// when none have been loaded.
var ErrNoStore = errors.New("saved configurations not loaded")

// Compositor is the subset of the compositor IPC used by the reconciler.
type Compositor interface {
	GetOutputs(ctx context.Context) ([]model.Output, error)
	GetWorkspaces(ctx context.Context) ([]model.Workspace, error)
	RunCommand(ctx context.Context, command string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// Options changes how actions behave.
type Options struct {
	Force  bool // Overwrite saved configurations without asking
	DryRun bool // Print command batches instead of running them
}

// Reconciler performs the CLI actions against one store and one
// compositor connection.
type Reconciler struct {
	store     *store.Store
	storePath string
	out       io.Writer
	logger    *slog.Logger
	opts      Options

	compositor Compositor
	confirmer  Confirmer
	formatter  output.Formatter
}

// NewReconciler creates a Reconciler for the store loaded from storePath.
// st may be nil and set later with SetStore; ShowConnected never needs it.
// Messages for the user are written to out.
func NewReconciler(st *store.Store, storePath string, out io.Writer, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		store:     st,
		storePath: storePath,
		out:       out,
		logger:    logger,
		formatter: output.NewPlainFormatter(),
	}
}

// SetStore sets the saved configurations loaded from the store path.
func (r *Reconciler) SetStore(st *store.Store) {
	r.store = st
}

// SetCompositor sets the compositor connection. Only List works without one.
func (r *Reconciler) SetCompositor(c Compositor) {
	r.compositor = c
}

// SetConfirmer sets the overwrite prompt.
func (r *Reconciler) SetConfirmer(c Confirmer) {
	r.confirmer = c
}

// SetFormatter sets how ShowConnected renders the connected displays.
func (r *Reconciler) SetFormatter(f output.Formatter) {
	r.formatter = f
}

// SetOptions sets action options.
func (r *Reconciler) SetOptions(opts Options) {
	r.opts = opts
}

// List writes every saved configuration as the YAML document.
func (r *Reconciler) List(ctx context.Context) error {
	if r.store == nil {
		return ErrNoStore
	}

	data, err := r.store.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize configurations: %w", err)
	}

	if !r.store.ModTime.IsZero() {
		fmt.Fprintf(r.out, "# %s, saved %s\n", r.storePath, humanize.Time(r.store.ModTime))
	}
	_, err = r.out.Write(data)
	return err
}

// ShowConnected prints the identity of the connected displays.
func (r *Reconciler) ShowConnected(ctx context.Context) error {
	outputs, err := r.outputs(ctx)
	if err != nil {
		return err
	}
	return r.formatter.Format(r.out, outputs)
}

// Save stores the current layout as the default configuration for the
// connected displays.
func (r *Reconciler) Save(ctx context.Context) error {
	if r.store == nil {
		return ErrNoStore
	}

	outputs, snap, err := r.capture(ctx)
	if err != nil {
		return err
	}

	topology := model.TopologyOf(outputs)
	if _, exists := r.store.GetDefault(topology); exists && !r.confirmOverwrite(topology.String()) {
		r.logger.Debug("overwrite declined", "topology", topology.String())
		return nil
	}

	r.store.PutDefault(topology, snap)
	if err := r.persist(); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Saved default configuration for %s\n", topology)
	return nil
}

// SaveCustom stores the current layout under name.
func (r *Reconciler) SaveCustom(ctx context.Context, name string) error {
	if r.store == nil {
		return ErrNoStore
	}

	_, snap, err := r.capture(ctx)
	if err != nil {
		return err
	}

	if _, exists := r.store.GetCustom(name); exists && !r.confirmOverwrite(name) {
		r.logger.Debug("overwrite declined", "name", name)
		return nil
	}

	r.store.PutCustom(name, snap)
	if err := r.persist(); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Saved custom configuration %s\n", name)
	return nil
}

// Set applies the default configuration saved for the connected displays.
// A missing configuration is reported, not treated as an error.
func (r *Reconciler) Set(ctx context.Context) error {
	if r.store == nil {
		return ErrNoStore
	}

	outputs, err := r.outputs(ctx)
	if err != nil {
		return err
	}

	topology := model.TopologyOf(outputs)
	snap, ok := r.store.GetDefault(topology)
	if !ok {
		fmt.Fprintf(r.out, "You don't have a default configuration saved for %s\n", topology)
		return nil
	}

	if err := r.apply(ctx, snap, outputs); err != nil {
		return fmt.Errorf("failed to set default configuration for %s: %w", topology, err)
	}
	if !r.opts.DryRun {
		fmt.Fprintf(r.out, "Set default configuration for %s\n", topology)
	}
	return nil
}

// SetCustom applies the custom configuration called name to whichever of
// its displays are connected.
func (r *Reconciler) SetCustom(ctx context.Context, name string) error {
	if r.store == nil {
		return ErrNoStore
	}

	snap, ok := r.store.GetCustom(name)
	if !ok {
		fmt.Fprintf(r.out, "There is no custom configuration named %s\n", name)
		return nil
	}

	outputs, err := r.outputs(ctx)
	if err != nil {
		return err
	}

	if snap.Matches(outputs) == 0 {
		fmt.Fprintf(r.out, "None of the displays in custom configuration %s are connected\n", name)
		return nil
	}

	if err := r.apply(ctx, snap, outputs); err != nil {
		return fmt.Errorf("failed to set custom configuration %s: %w", name, err)
	}
	if !r.opts.DryRun {
		fmt.Fprintf(r.out, "Set custom configuration %s\n", name)
	}
	return nil
}

// RunContinuous is reserved for a watch mode.
func (r *Reconciler) RunContinuous(ctx context.Context, name string) error {
	return ErrContinuousUnsupported
}

// apply replays snap onto the live outputs as one command batch.
func (r *Reconciler) apply(ctx context.Context, snap model.Snapshot, outputs []model.Output) error {
	commands := snap.Commands(outputs)
	if len(commands) == 0 {
		r.logger.Debug("nothing to apply")
		return nil
	}

	if r.opts.DryRun {
		for _, cmd := range commands {
			fmt.Fprintln(r.out, cmd)
		}
		return nil
	}

	batch := snap.Batch(outputs)
	r.logger.Debug("applying configuration", "commands", len(commands), "matched", snap.Matches(outputs))
	return r.compositor.RunCommand(ctx, batch)
}

// capture reads the live topology and snapshots it.
func (r *Reconciler) capture(ctx context.Context) ([]model.Output, model.Snapshot, error) {
	outputs, err := r.outputs(ctx)
	if err != nil {
		return nil, nil, err
	}

	workspaces, err := r.compositor.GetWorkspaces(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workspaces: %w", err)
	}

	return outputs, model.CaptureSnapshot(outputs, workspaces), nil
}

// outputs queries the connected displays.
func (r *Reconciler) outputs(ctx context.Context) ([]model.Output, error) {
	if r.compositor == nil {
		return nil, errors.New("no compositor connection")
	}

	outputs, err := r.compositor.GetOutputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get outputs: %w", err)
	}
	r.logger.Debug("queried outputs", "count", len(outputs))
	return outputs, nil
}

// confirmOverwrite asks before replacing an existing configuration.
func (r *Reconciler) confirmOverwrite(name string) bool {
	if r.opts.Force {
		return true
	}
	if r.confirmer == nil {
		return false
	}
	return r.confirmer.Confirm(prompt.OverwriteQuestion(name))
}

// persist writes the store back to disk.
func (r *Reconciler) persist() error {
	if err := r.store.Save(r.storePath); err != nil {
		return fmt.Errorf("failed to save configurations: %w", err)
	}
	r.logger.Debug("saved configurations", "path", r.storePath)
	return nil
}
