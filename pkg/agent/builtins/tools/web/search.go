// ABOUTME: Web search tool that queries Tavily and returns a token-budgeted context
// ABOUTME: Configuration comes from tool state with an environment fallback for the key

package web

import (
	"fmt"
	"os"
	"time"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	atools "github.com/nilay320/MCP-Session-Code/pkg/agent/tools"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/search"
)

// SearchToolName is the MCP name of the search tool.
const SearchToolName = "web_search"

const toolVersion = "1.0.0"

// WebSearchParams defines parameters for the search tool.
type WebSearchParams struct {
	Query string `json:"query"`
}

var webSearchParamSchema = &sdomain.Schema{
	Type: "object",
	Properties: map[string]sdomain.Property{
		"query": {
			Type:        "string",
			Description: "The search query",
		},
	},
	Required: []string{"query"},
}

func init() {
	tools.MustRegisterTool(SearchToolName, WebSearch(), tools.ToolMetadata{
		Metadata: builtins.Metadata{
			Name:     SearchToolName,
			Category: "web",
			Tags:     []string{"search", "web", "tavily", "internet"},
			Version:  toolVersion,
		},
		ResourceUsage: tools.ResourceInfo{
			Memory:      "low",
			Network:     true,
			Concurrency: true,
		},
	})
}

// ConfigFromState builds a search configuration from tool state. The API key
// falls back to the TAVILY_API_KEY environment variable.
func ConfigFromState(state domain.StateReader) search.Config {
	var cfg search.Config
	if state != nil {
		cfg.APIKey, _ = domain.GetString(state, search.StateKeyAPIKey)
		cfg.BaseURL, _ = domain.GetString(state, search.StateKeyBaseURL)
		cfg.SearchDepth, _ = domain.GetString(state, search.StateKeySearchDepth)
		cfg.MaxResults, _ = domain.GetInt(state, search.StateKeyMaxResults)
		cfg.MaxTokens, _ = domain.GetInt(state, search.StateKeyMaxTokens)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(search.APIKeyEnvVar)
	}
	return cfg
}

// WebSearch creates the Tavily search tool.
func WebSearch() domain.Tool {
	return NewWebSearch()
}

// NewWebSearch creates the search tool; opts are applied to every client it
// builds.
func NewWebSearch(opts ...search.Option) domain.Tool {
	fn := func(ctx *domain.ToolContext, params WebSearchParams) (string, error) {
		start := time.Now()
		if ctx.Events != nil {
			ctx.Events.EmitMessage(fmt.Sprintf("Starting web search for '%s'", params.Query))
		}

		client, err := search.NewClient(ConfigFromState(ctx.State), opts...)
		if err != nil {
			return failed(ctx, err), nil
		}
		if ctx.Events != nil {
			ctx.Events.EmitProgress(1, 3, "Search client configured")
		}

		text, err := client.Context(ctx.Context, params.Query)
		if err != nil {
			return failed(ctx, err), nil
		}

		if ctx.Events != nil {
			ctx.Events.EmitProgress(3, 3, "Search complete")
			ctx.Events.EmitCustom("search_complete", map[string]interface{}{
				"query":  params.Query,
				"timeMs": time.Since(start).Milliseconds(),
			})
		}
		return text, nil
	}

	return atools.NewToolBuilder(SearchToolName, "Search the web for information using the Tavily API").
		WithFunction(fn).
		WithParameterSchema(webSearchParamSchema).
		WithOutputSchema(&sdomain.Schema{
			Type:        "string",
			Description: "JSON array of {url, content} objects, or a message starting with 'Error:'",
		}).
		WithCategory("web").
		WithTags([]string{"search", "web", "tavily", "internet"}).
		WithVersion(toolVersion).
		WithUsageInstructions(`Searches the web and returns the most relevant sources as a JSON array of
objects with "url" and "content" fields. Results are trimmed to fit a token
budget, so long pages may be dropped in favour of earlier, more relevant ones.

Requires a Tavily API key, configured on the server (TAVILY_API_KEY).`).
		WithExamples([]domain.ToolExample{
			{
				Name:        "Factual lookup",
				Description: "Find a fact on the web",
				Input:       map[string]interface{}{"query": "capital of France"},
				Output:      `[{"url":"https://en.wikipedia.org/wiki/Paris","content":"Paris is the capital of France..."}]`,
			},
		}).
		WithConstraints([]string{
			"Requires network access and a Tavily API key",
			"Results are ranked by the search provider",
		}).
		WithErrorGuidance(map[string]string{
			"Tavily API key is not configured": "Set TAVILY_API_KEY in the server environment or .env file",
			"status 401":                       "The configured API key was rejected",
			"status 429":                       "Rate limited; retry later",
		}).
		WithBehavior(false, false, false, "slow").
		Build()
}

func failed(ctx *domain.ToolContext, err error) string {
	if ctx.Events != nil {
		ctx.Events.EmitError(err)
	}
	return "Error: " + err.Error()
}
