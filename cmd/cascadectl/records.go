package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/extrafields/yamlstore"
	"github.com/goliatone/go-cascade/pkg/renderers/tui"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every record as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store extrafields.WritableStore) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out, err := yamlstore.Marshal(records)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			})
		},
	}
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get PLUGIN_TYPE",
		Short: "Print the record of a plugin type for the site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store extrafields.WritableStore) error {
				record, err := store.Get(cmd.Context(), args[0], a.siteID)
				if err != nil {
					return err
				}
				out, err := yamlstore.Marshal([]extrafields.Record{record})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			})
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PLUGIN_TYPE",
		Short: "Remove the record of a plugin type for the site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store extrafields.WritableStore) error {
				if err := store.Delete(cmd.Context(), args[0], a.siteID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s@%s\n", args[0], a.siteID)
				return nil
			})
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit PLUGIN_TYPE",
		Short: "Interactively create or update the record of a plugin type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePlugin(args[0]); err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(store extrafields.WritableStore) error {
				record, err := store.Get(cmd.Context(), args[0], a.siteID)
				if errors.Is(err, extrafields.ErrNotFound) {
					record = extrafields.Record{PluginType: args[0], SiteID: a.siteID}
				} else if err != nil {
					return err
				}

				editor := recordEditor{driver: tui.NewSurveyDriver(), groups: extrafields.DefaultStyleGroups()}
				edited, err := editor.Edit(cmd.Context(), record)
				if err != nil {
					return err
				}
				if err := store.Put(cmd.Context(), edited); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", edited.Key())
				return nil
			})
		},
	}
}
