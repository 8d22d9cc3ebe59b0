package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cascade/internal/catalog"
	"github.com/goliatone/go-cascade/internal/config"
	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/plugin"
)

type app struct {
	cfg    config.Config
	siteID string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := newRootCommand(&app{cfg: cfg}).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cascadectl",
		Short:         "Manage per-site extra fields configuration for page plugins",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.cfg.Validate()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.StoreDriver, "store", a.cfg.StoreDriver, "record store: yaml, sqlite or memory")
	flags.StringVar(&a.cfg.StorePath, "store-path", a.cfg.StorePath, "YAML file or SQLite DSN")
	flags.StringVar(&a.cfg.Plugins, "plugins", a.cfg.Plugins, "plugin definitions YAML (builtins if empty)")
	flags.StringVar(&a.siteID, "site", a.cfg.DefaultSite, "site id")

	root.AddCommand(
		newListCommand(a),
		newGetCommand(a),
		newDeleteCommand(a),
		newEditCommand(a),
		newFormCommand(a),
		newPreviewCommand(a),
	)
	return root
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(extrafields.WritableStore) error) error {
	store, closer, err := a.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(store)
}

func (a *app) plugins() ([]plugin.Plugin, error) {
	if a.cfg.Plugins == "" {
		return catalog.Builtins(), nil
	}
	return catalog.Load(a.cfg.Plugins)
}

func (a *app) requirePlugin(pluginType string) error {
	plugins, err := a.plugins()
	if err != nil {
		return err
	}
	for _, p := range plugins {
		if p.Type() == pluginType {
			return nil
		}
	}
	return fmt.Errorf("unknown plugin type %q", pluginType)
}
