// Package domain defines the contracts shared by the tool framework and the
// MCP server: the Tool interface, the per-call ToolContext and the events
// tools emit while they run.
//
// Tools receive a *ToolContext rather than a bare context.Context. Besides
// cancellation it carries a read-only StateReader with server-provided
// settings, a run ID for correlating events, and information about the
// calling MCP client.
//
//	func (t *myTool) Execute(ctx *domain.ToolContext, params interface{}) (interface{}, error) {
//	    if ctx.Events != nil {
//	        ctx.Events.EmitMessage("starting")
//	    }
//	    apiKey, _ := ctx.State.Get("search.api_key")
//	    ...
//	}
package domain
