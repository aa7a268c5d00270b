package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mathtimeline/internal/config"
	"mathtimeline/internal/dataset"
	"mathtimeline/internal/domain"
	"mathtimeline/internal/eventbus"
	"mathtimeline/internal/logging"
	"mathtimeline/internal/ui"
	"mathtimeline/internal/ui/services/rendersync"
)

var version = "dev"

type options struct {
	data       string
	configPath string
	watch      bool
	selectIDs  []string
	json       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "mathtimeline",
		Short:        "Browse mathematicians and events on a zoomable timeline",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.data, "data", "d", "", "Dataset path or URL (default from config)")
	flags.StringVar(&opts.configPath, "config", config.DefaultFileName, "Config file path")
	flags.BoolVar(&opts.watch, "watch", false, "Reload when a local dataset file changes")
	flags.StringSliceVar(&opts.selectIDs, "select", nil, "Ids to select at startup")
	flags.BoolVar(&opts.json, "json", false, "Print the timeline items for the selection as JSON and exit")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	configSvc := config.NewConfigService(opts.configPath)
	cfg, configErr := loadOrCreateConfig(configSvc)
	if opts.data != "" {
		cfg.Data.Source = opts.data
	}
	if cmd.Flags().Changed("watch") {
		cfg.Data.Watch = opts.watch
	}

	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if configErr != nil {
		log.Warnw("Config unusable, using defaults", "path", configSvc.Path(), "error", configErr)
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	preselect := make([]domain.ID, 0, len(opts.selectIDs))
	for _, id := range opts.selectIDs {
		preselect = append(preselect, domain.ID(id))
	}

	loader := dataset.NewLoader(log)
	if opts.json {
		return printJSON(ctx, cmd, loader, cfg, preselect)
	}
	return runTUI(ctx, loader, cfg, preselect, log)
}

func runTUI(ctx context.Context, loader *dataset.Loader, cfg *config.Config, preselect []domain.ID, log *zap.SugaredLogger) error {
	bus := eventbus.New(log)
	defer bus.Close()

	model := ui.NewModel(cfg, ui.Options{
		Loader:    loader,
		Bus:       bus,
		Logger:    log,
		Preselect: preselect,
		Context:   ctx,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward background events into the update loop
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	bus.Subscribe(eventbus.EventDatasetChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)

	if cfg.Data.Watch {
		if path, ok := dataset.IsLocal(cfg.Data.Source); ok {
			watcher, err := dataset.NewWatcher(path, bus, log)
			if err != nil {
				log.Warnw("Could not watch dataset", "path", path, "error", err)
			} else {
				defer watcher.Close()
				log.Infow("Watching dataset", "path", watcher.Path())
			}
		} else {
			log.Infow("Watch ignored for remote dataset", "source", cfg.Data.Source)
		}
	}

	log.Infow("Starting UI", "source", cfg.Data.Source)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Errorw("Error running program", "error", err)
		return errors.Wrap(err, "run ui")
	}
	log.Infow("UI exited normally")
	return nil
}

type jsonWindow struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

type jsonOutput struct {
	Items  []domain.DisplayItem `json:"items"`
	Window *jsonWindow          `json:"window,omitempty"`
}

// printJSON renders the timeline input for the preselection without a TUI
func printJSON(ctx context.Context, cmd *cobra.Command, loader *dataset.Loader, cfg *config.Config, preselect []domain.ID) error {
	ds, err := loader.Load(ctx, cfg.Data.Source)
	if err != nil {
		var le *dataset.LoadError
		if errors.As(err, &le) && le.Hint() != "" {
			return errors.Newf("%v\nhint: %s", err, le.Hint())
		}
		return err
	}

	selected := make(map[domain.ID]bool, len(preselect))
	for _, id := range preselect {
		selected[id] = true
	}
	isSelected := func(id domain.ID) bool { return selected[id] }

	out := jsonOutput{Items: rendersync.Project(ds.Entities(), isSelected)}
	if lo, hi, ok := rendersync.Window(out.Items, cfg.Timeline.BufferYears); ok {
		out.Window = &jsonWindow{Start: lo, End: hi}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// loadOrCreateConfig loads the config file, writing the defaults on first
// run. A broken file yields the defaults along with the error.
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	path := configSvc.Path()
	if _, err := os.Stat(path); err == nil {
		cfg, err := configSvc.Load()
		if err != nil {
			cfg = config.DefaultConfig()
			_ = config.ApplyEnv(cfg)
			return cfg, errors.Wrapf(err, "load config %s", path)
		}
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	if err := configSvc.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write %s: %v\n", path, err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}
