package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/linskybing/formpilot/internal/domain/template"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse the built-in template catalog",
	}
	cmd.AddCommand(newTemplatesListCmd())
	cmd.AddCommand(newTemplatesShowCmd())
	cmd.AddCommand(newTemplatesRenderCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := template.Builtin()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tFIELDS\tNAME")
			for _, t := range catalog.List(template.Filter{Search: search, Category: category}) {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.ID, t.Category, t.FieldCount, t.Name)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "q", "", "match name, description or tags")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	return cmd
}

func newTemplatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template body as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := template.Builtin()
			if err != nil {
				return err
			}
			t, err := catalog.Get(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out, err := yaml.Marshal(t.Form)
			if err != nil {
				return err
			}
			if len(t.Placeholders) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "# placeholders: %s\n", strings.Join(t.Placeholders, ", "))
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newTemplatesRenderCmd() *cobra.Command {
	var values map[string]string
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a template to a JSON form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := template.Builtin()
			if err != nil {
				return err
			}
			schema, err := catalog.Instantiate(args[0], values)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(schema)
		},
	}
	cmd.Flags().StringToStringVar(&values, "set", nil, "placeholder values, key=value")
	return cmd
}
