package tools

// ABOUTME: Caches struct field metadata and converts decoded JSON values to Go parameter types
// ABOUTME: JSON numbers arrive as float64 and are narrowed to the target numeric kind

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/nilay320/MCP-Session-Code/pkg/internal/debug"
)

// parameterTypeCache caches per-struct field information.
type parameterTypeCache struct {
	structFieldCache sync.Map // map[reflect.Type][]fieldInfo
}

type fieldInfo struct {
	index      int
	name       string
	jsonName   string
	fieldType  reflect.Type
	isExported bool
}

var globalParamCache = &parameterTypeCache{}

// getStructFields returns cached field information for a struct type, or
// nil if structType is not a struct.
func (c *parameterTypeCache) getStructFields(structType reflect.Type) []fieldInfo {
	if structType.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := c.structFieldCache.Load(structType); ok {
		return cached.([]fieldInfo)
	}

	fields := make([]fieldInfo, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		jsonName := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
				jsonName = name
			}
		}
		fields = append(fields, fieldInfo{
			index:      i,
			name:       field.Name,
			jsonName:   jsonName,
			fieldType:  field.Type,
			isExported: field.IsExported(),
		})
		debug.Printf("tools", "cached field %s.%s as %q", structType.Name(), field.Name, jsonName)
	}

	actual, _ := c.structFieldCache.LoadOrStore(structType, fields)
	return actual.([]fieldInfo)
}

// convertValue converts value to targetType, reporting false when no
// lossless or conventional conversion exists.
//
// nolint:gocyclo // one case per target kind
func convertValue(value reflect.Value, targetType reflect.Type) (reflect.Value, bool) {
	if !value.IsValid() {
		return reflect.Value{}, false
	}
	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Zero(targetType), true
		}
		return convertValue(value.Elem(), targetType)
	}
	if value.Type().AssignableTo(targetType) {
		return value, true
	}

	switch targetType.Kind() {
	case reflect.String:
		switch value.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return reflect.ValueOf(strconv.FormatInt(value.Int(), 10)).Convert(targetType), true
		case reflect.Float32, reflect.Float64:
			return reflect.ValueOf(strconv.FormatFloat(value.Float(), 'f', -1, 64)).Convert(targetType), true
		case reflect.Bool:
			return reflect.ValueOf(strconv.FormatBool(value.Bool())).Convert(targetType), true
		case reflect.String:
			return value.Convert(targetType), true
		}
		return reflect.ValueOf(fmt.Sprintf("%v", value.Interface())).Convert(targetType), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch value.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return value.Convert(targetType), true
		case reflect.Float32, reflect.Float64:
			f := value.Float()
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return reflect.Value{}, false
			}
			return reflect.ValueOf(int64(f)).Convert(targetType), true
		case reflect.String:
			if i, err := strconv.ParseInt(strings.TrimSpace(value.String()), 10, 64); err == nil {
				return reflect.ValueOf(i).Convert(targetType), true
			}
		}

	case reflect.Float32, reflect.Float64:
		switch value.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Float32, reflect.Float64:
			return value.Convert(targetType), true
		case reflect.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(value.String()), 64); err == nil {
				return reflect.ValueOf(f).Convert(targetType), true
			}
		}

	case reflect.Bool:
		switch value.Kind() {
		case reflect.String:
			if b, err := strconv.ParseBool(value.String()); err == nil {
				return reflect.ValueOf(b), true
			}
		case reflect.Float32, reflect.Float64:
			return reflect.ValueOf(value.Float() != 0), true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return reflect.ValueOf(value.Int() != 0), true
		}

	case reflect.Slice:
		if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
			return reflect.Value{}, false
		}
		result := reflect.MakeSlice(targetType, value.Len(), value.Len())
		for i := 0; i < value.Len(); i++ {
			elem, ok := convertValue(value.Index(i), targetType.Elem())
			if !ok {
				return reflect.Value{}, false
			}
			result.Index(i).Set(elem)
		}
		return result, true

	case reflect.Map:
		if value.Kind() != reflect.Map {
			return reflect.Value{}, false
		}
		result := reflect.MakeMapWithSize(targetType, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			k, ok := convertValue(iter.Key(), targetType.Key())
			if !ok {
				return reflect.Value{}, false
			}
			v, ok := convertValue(iter.Value(), targetType.Elem())
			if !ok {
				return reflect.Value{}, false
			}
			result.SetMapIndex(k, v)
		}
		return result, true

	case reflect.Struct:
		if isStringKeyedMap(value) {
			return mapToStruct(value, targetType), true
		}

	case reflect.Ptr:
		elem, ok := convertValue(value, targetType.Elem())
		if !ok {
			return reflect.Value{}, false
		}
		ptr := reflect.New(targetType.Elem())
		ptr.Elem().Set(elem)
		return ptr, true
	}

	return reflect.Value{}, false
}
