package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/glossary"
	"github.com/goliatone/go-cascade/pkg/orchestrator"
	"github.com/goliatone/go-cascade/pkg/plugin"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/jsonform"
	"github.com/goliatone/go-cascade/pkg/renderers/tui"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
	"github.com/goliatone/go-cascade/pkg/site"
)

func (a *app) orchestrator(store extrafields.Store) (*orchestrator.Orchestrator, error) {
	plugins, err := a.plugins()
	if err != nil {
		return nil, err
	}
	pool, err := orchestrator.NewPool(plugins...)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)
	registry.MustRegister(jsonform.New(true))
	registry.MustRegister(tui.New())

	return orchestrator.New(
		orchestrator.WithPool(pool),
		orchestrator.WithRegistry(registry),
		orchestrator.WithExtraFields(store, site.Static(site.Site{ID: a.siteID})),
	)
}

func newFormCommand(a *app) *cobra.Command {
	var (
		renderer  string
		output    string
		glossFile string
	)
	cmd := &cobra.Command{
		Use:   "form PLUGIN_TYPE",
		Short: "Render the admin form of a plugin type, extra fields included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var obj *plugin.Instance
			if glossFile != "" {
				values, err := readGlossary(cmd.InOrStdin(), glossFile)
				if err != nil {
					return err
				}
				obj = &plugin.Instance{PluginType: args[0], Glossary: values}
			}
			return a.withStore(cmd.Context(), func(store extrafields.WritableStore) error {
				orch, err := a.orchestrator(store)
				if err != nil {
					return err
				}
				out, err := orch.Generate(cmd.Context(), orchestrator.Request{
					PluginType: args[0],
					Instance:   obj,
					Renderer:   renderer,
				})
				if err != nil {
					return err
				}
				if output != "" {
					if err := os.WriteFile(output, out, 0o644); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
					return nil
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&renderer, "renderer", vanilla.Name, "renderer: vanilla, json or tui")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&glossFile, "glossary", "", "JSON glossary of the edited block, - for stdin")
	return cmd
}

func newPreviewCommand(a *app) *cobra.Command {
	var glossFile string
	cmd := &cobra.Command{
		Use:   "preview PLUGIN_TYPE",
		Short: "Print the opening tag and identifier of a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := glossary.Glossary{}
			if glossFile != "" {
				var err error
				if values, err = readGlossary(cmd.InOrStdin(), glossFile); err != nil {
					return err
				}
			}
			obj := &plugin.Instance{PluginType: args[0], Glossary: values}
			return a.withStore(cmd.Context(), func(store extrafields.WritableStore) error {
				orch, err := a.orchestrator(store)
				if err != nil {
					return err
				}
				tag, err := orch.Preview(cmd.Context(), args[0], obj)
				if err != nil {
					return err
				}
				identifier, err := orch.Identifier(args[0], obj)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tag)
				fmt.Fprintln(cmd.OutOrStdout(), identifier)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&glossFile, "glossary", "", "JSON glossary of the block, - for stdin")
	return cmd
}

func readGlossary(stdin io.Reader, path string) (glossary.Glossary, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	var values glossary.Glossary
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse glossary: %w", err)
	}
	return values, nil
}
