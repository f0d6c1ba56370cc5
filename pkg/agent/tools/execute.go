package tools

// ABOUTME: Tool execution: argument validation, default filling, conversion and the reflective call
// ABOUTME: Invalid arguments surface as TOOL_INVALID_ARGUMENTS errors listing every problem

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/errors"
)

// ErrCodeInvalidArguments marks arguments rejected by the parameter schema.
const ErrCodeInvalidArguments = "TOOL_INVALID_ARGUMENTS"

// Execute runs the tool. params is usually the decoded JSON argument map.
func (t *Tool) Execute(ctx *domain.ToolContext, params interface{}) (interface{}, error) {
	if ctx == nil {
		ctx = domain.NewToolContext(context.Background(), nil, domain.ClientInfo{}, "")
	}

	args := make([]reflect.Value, 0, 2)
	if t.hasToolContext {
		args = append(args, reflect.ValueOf(ctx))
	} else if t.hasContext {
		args = append(args, reflect.ValueOf(ctx.Context))
	}

	if t.paramType != nil {
		arg, err := t.prepareArgument(params)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return t.callFunction(args)
}

// prepareArgument validates params and converts them to the parameter type.
func (t *Tool) prepareArgument(params interface{}) (reflect.Value, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	if m, ok := params.(map[string]interface{}); ok {
		if result := t.paramSchema.Validate(m); !result.Valid {
			return reflect.Value{}, errors.NewErrorWithCode(ErrCodeInvalidArguments,
				fmt.Sprintf("invalid arguments for %s: %s", t.name, strings.Join(result.Errors, "; "))).
				WithContext("tool", t.name).
				WithContext("problems", result.Errors)
		}
		params = t.withDefaults(m)
	}

	value := reflect.ValueOf(params)
	if isStringKeyedMap(value) && t.paramType.Kind() == reflect.Struct {
		return mapToStruct(value, t.paramType), nil
	}
	if converted, ok := convertValue(value, t.paramType); ok {
		return converted, nil
	}
	return reflect.Value{}, fmt.Errorf("unable to convert %T to %s parameters", params, t.paramType)
}

// withDefaults returns a copy of m with schema defaults for absent keys.
func (t *Tool) withDefaults(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	for name, prop := range t.paramSchema.Properties {
		if _, ok := out[name]; !ok && prop.Default != nil {
			out[name] = prop.Default
		}
	}
	return out
}

// mapToStruct fills a new value of structType from a map keyed by JSON
// name or field name. Unconvertible entries are left at their zero value.
func mapToStruct(m reflect.Value, structType reflect.Type) reflect.Value {
	structVal := reflect.New(structType).Elem()
	keyType := m.Type().Key()
	for _, field := range globalParamCache.getStructFields(structType) {
		if !field.isExported {
			continue
		}
		entry := m.MapIndex(reflect.ValueOf(field.jsonName).Convert(keyType))
		if !entry.IsValid() {
			entry = m.MapIndex(reflect.ValueOf(field.name).Convert(keyType))
		}
		if !entry.IsValid() {
			continue
		}
		if converted, ok := convertValue(entry, field.fieldType); ok {
			structVal.Field(field.index).Set(converted)
		}
	}
	return structVal
}

func isStringKeyedMap(v reflect.Value) bool {
	return v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String
}

// callFunction calls the function and splits its results.
func (t *Tool) callFunction(args []reflect.Value) (interface{}, error) {
	results := t.fnValue.Call(args)
	if len(results) == 0 {
		return nil, nil
	}

	var result interface{}
	if results[0].IsValid() {
		result = results[0].Interface()
	}

	var err error
	if len(results) > 1 && !results[1].IsNil() {
		err = results[1].Interface().(error)
	}
	return result, err
}
