// Package search is a small client for the Tavily search API.
//
// Context mirrors the Tavily SDK's get_search_context: it runs a basic
// search and returns a JSON array of {"url", "content"} objects, keeping
// only as many results as fit the token budget.
//
//	client, err := search.NewClient(search.Config{APIKey: os.Getenv("TAVILY_API_KEY")})
//	if err != nil {
//	    return err
//	}
//	text, err := client.Context(ctx, "capital of France")
package search
