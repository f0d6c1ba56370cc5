// Package domain defines the JSON Schema subset used to describe tool
// parameters and outputs.
//
// A Schema is published verbatim as an MCP tool input schema, and Validate
// checks decoded tool arguments against it before they reach a tool.
//
//	schema := &domain.Schema{
//	    Type: "object",
//	    Properties: map[string]domain.Property{
//	        "expression": {Type: "string", Description: "Expression to evaluate"},
//	    },
//	    Required: []string{"expression"},
//	}
//	result := schema.Validate(map[string]interface{}{"expression": "2 + 2"})
package domain
