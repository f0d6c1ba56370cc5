package docs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

// Config controls the generated document.
type Config struct {
	Title           string
	Description     string
	Version         string
	IncludeSchemas  bool
	IncludeExamples bool
}

// DefaultConfig includes schemas and examples.
func DefaultConfig() Config {
	return Config{
		Title:           "Tool Reference",
		IncludeSchemas:  true,
		IncludeExamples: true,
	}
}

// FromRegistry collects documentation for every tool in registry.
func FromRegistry(registry tools.ToolRegistry) ([]tools.ToolDocumentation, error) {
	entries := registry.List()
	docs := make([]tools.ToolDocumentation, 0, len(entries))
	for _, entry := range entries {
		doc, err := registry.GetToolDocumentation(entry.Metadata.Name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Markdown renders docs grouped by category. Categories and tools are
// sorted by name so the output is stable.
func Markdown(cfg Config, docs []tools.ToolDocumentation) string {
	var b strings.Builder
	title := cases.Title(language.English)

	fmt.Fprintf(&b, "# %s\n\n", cfg.Title)
	if cfg.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", cfg.Description)
	}
	if cfg.Version != "" {
		fmt.Fprintf(&b, "**Version:** %s\n\n", cfg.Version)
	}

	groups := make(map[string][]tools.ToolDocumentation)
	for _, doc := range docs {
		category := doc.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], doc)
	}
	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	if len(categories) > 1 {
		b.WriteString("## Table of Contents\n\n")
		for _, category := range categories {
			fmt.Fprintf(&b, "- [%s](#%s)\n", title.String(category), strings.ToLower(category))
		}
		b.WriteString("\n")
	}

	for _, category := range categories {
		fmt.Fprintf(&b, "## %s\n\n", title.String(category))
		group := groups[category]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		for _, doc := range group {
			writeTool(&b, cfg, doc)
		}
	}
	return b.String()
}

func writeTool(b *strings.Builder, cfg Config, doc tools.ToolDocumentation) {
	fmt.Fprintf(b, "### %s\n\n", doc.Name)
	if doc.Description != "" {
		fmt.Fprintf(b, "%s\n\n", doc.Description)
	}

	writeMetadataTable(b, doc)

	if cfg.IncludeSchemas {
		if schema, ok := doc.ParameterSchema.(*sdomain.Schema); ok && schema != nil {
			b.WriteString("#### Parameters\n\n")
			writeSchema(b, schema)
			b.WriteString("\n")
		}
	}

	if doc.UsageInstructions != "" {
		fmt.Fprintf(b, "#### Usage\n\n%s\n\n", strings.TrimSpace(doc.UsageInstructions))
	}

	if len(doc.Constraints) > 0 {
		b.WriteString("#### Constraints\n\n")
		for _, c := range doc.Constraints {
			fmt.Fprintf(b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	if len(doc.ErrorGuidance) > 0 {
		b.WriteString("#### Errors\n\n| Error | Guidance |\n|-------|----------|\n")
		keys := make([]string, 0, len(doc.ErrorGuidance))
		for k := range doc.ErrorGuidance {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "| %s | %s |\n", escapeCell(k), escapeCell(doc.ErrorGuidance[k]))
		}
		b.WriteString("\n")
	}

	if cfg.IncludeExamples && len(doc.Examples) > 0 {
		b.WriteString("#### Examples\n\n")
		for i, ex := range doc.Examples {
			if ex.Name != "" {
				fmt.Fprintf(b, "##### Example %d: %s\n\n", i+1, ex.Name)
			} else {
				fmt.Fprintf(b, "##### Example %d\n\n", i+1)
			}
			if ex.Description != "" {
				fmt.Fprintf(b, "%s\n\n", ex.Description)
			}
			writeJSONBlock(b, "Input", ex.Input)
			writeJSONBlock(b, "Output", ex.Output)
		}
	}

	b.WriteString("---\n\n")
}

func writeMetadataTable(b *strings.Builder, doc tools.ToolDocumentation) {
	rows := [][2]string{}
	if doc.Category != "" {
		rows = append(rows, [2]string{"Category", doc.Category})
	}
	if len(doc.Tags) > 0 {
		rows = append(rows, [2]string{"Tags", strings.Join(doc.Tags, ", ")})
	}
	if doc.Version != "" {
		rows = append(rows, [2]string{"Version", doc.Version})
	}
	if doc.EstimatedLatency != "" {
		rows = append(rows, [2]string{"Latency", doc.EstimatedLatency})
	}
	rows = append(rows,
		[2]string{"Deterministic", yesNo(doc.IsDeterministic)},
		[2]string{"Network", yesNo(doc.ResourceUsage.Network)},
	)

	b.WriteString("| Property | Value |\n|----------|-------|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| **%s** | %s |\n", row[0], escapeCell(row[1]))
	}
	b.WriteString("\n")
}

func writeSchema(b *strings.Builder, schema *sdomain.Schema) {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	b.WriteString("| Name | Type | Required | Default | Description |\n")
	b.WriteString("|------|------|----------|---------|-------------|\n")
	for _, name := range names {
		prop := schema.Properties[name]
		typ := prop.Type
		if len(prop.Enum) > 0 {
			typ += " (" + strings.Join(prop.Enum, ", ") + ")"
		}
		def := ""
		if prop.Default != nil {
			def = fmt.Sprintf("`%v`", prop.Default)
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s | %s |\n",
			name, typ, yesNo(required[name]), def, escapeCell(prop.Description))
	}
}

func writeJSONBlock(b *strings.Builder, label string, v interface{}) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n```json\n", label)
	if data, err := json.MarshalIndent(v, "", "  "); err == nil {
		b.Write(data)
	} else {
		fmt.Fprintf(b, "%v", v)
	}
	b.WriteString("\n```\n\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
