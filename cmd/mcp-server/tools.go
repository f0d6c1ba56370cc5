package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/config"
	"github.com/nilay320/MCP-Session-Code/pkg/docs"
)

func newToolsCmd(a *app) *cobra.Command {
	var (
		asJSON     bool
		asYAML     bool
		asMarkdown bool
	)

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List registered tools, or dump the MCP catalog or reference docs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case asMarkdown:
				all, err := docs.FromRegistry(tools.Tools)
				if err != nil {
					return err
				}
				cfg := docs.DefaultConfig()
				cfg.Description = tools.CatalogDescription
				cfg.Version = a.cfg.Server.Version
				_, err = io.WriteString(out, docs.Markdown(cfg, all))
				return err
			case asJSON || asYAML:
				catalog, err := tools.Tools.ExportAllToMCP()
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(catalog)
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(catalog)
			}
			return listTools(out, tools.Tools, a.cfg)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the MCP catalog as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the MCP catalog as YAML")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print Markdown reference documentation")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml", "markdown")
	return cmd
}

// listTools prints tools grouped by category, marking those the
// configuration hides.
func listTools(out io.Writer, registry tools.ToolRegistry, cfg *config.Config) error {
	title := cases.Title(language.English)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for i, category := range registry.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", title.String(category))

		for _, entry := range registry.ListByCategory(category) {
			status := ""
			meta, _ := registry.Metadata(entry.Metadata.Name)
			switch {
			case !cfg.ToolEnabled(entry.Metadata.Name):
				status = "(disabled)"
			case cfg.Tools.Offline && meta.ResourceUsage.Network:
				status = "(offline)"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", entry.Metadata.Name, entry.Metadata.Description, status)
		}
	}
	return w.Flush()
}
