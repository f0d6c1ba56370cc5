// ABOUTME: Web tools backed by external HTTP APIs.
// ABOUTME: Currently the Tavily-powered web_search tool.
// Package web provides tools that reach out to the network.
//
// Available tools:
//   - web_search: Search the web with Tavily and return a JSON array of
//     {"url", "content"} objects sized for a model's context window
//
// Settings are read from the tool context state (see the search.StateKey*
// constants), falling back to the TAVILY_API_KEY environment variable for
// the API key.
package web
