// Package tools turns plain Go functions into domain.Tool implementations.
//
// A ToolBuilder attaches a function, a parameter schema and client guidance.
// At execution time decoded JSON arguments are validated against the schema,
// schema defaults are filled in, and the map is converted into the
// function's typed parameter struct:
//
//	type params struct {
//	    Expression string `json:"expression"`
//	}
//
//	tool := tools.NewToolBuilder("scientific_calculator", "Evaluate a math expression").
//	    WithFunction(func(ctx *domain.ToolContext, p params) (string, error) {
//	        return calc.Calculate(p.Expression), nil
//	    }).
//	    WithParameterSchema(schema).
//	    WithCategory("math").
//	    Build()
//
// Supported function signatures take an optional context.Context or
// *domain.ToolContext first, then zero or one parameter value, and return a
// result optionally followed by an error.
package tools
