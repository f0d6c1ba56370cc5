// ABOUTME: Reflection-based schema generation from tagged parameter structs
// ABOUTME: Keeps tool parameter schemas next to the structs they decode into

package generator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

// maxDepth bounds nested struct expansion.
const maxDepth = 5

// FromStruct generates an object schema for v, which must be a struct or a
// pointer to one.
func FromStruct(v interface{}) (*domain.Schema, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema generation requires a struct, got %T", v)
	}

	props, required, err := structProperties(t, 0)
	if err != nil {
		return nil, err
	}
	return &domain.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}, nil
}

// MustFromStruct is FromStruct for package-level schema variables.
func MustFromStruct(v interface{}) *domain.Schema {
	s, err := FromStruct(v)
	if err != nil {
		panic(err)
	}
	return s
}

func structProperties(t reflect.Type, depth int) (map[string]domain.Property, []string, error) {
	if depth > maxDepth {
		return nil, nil, fmt.Errorf("struct %s nests deeper than %d levels", t, maxDepth)
	}

	props := make(map[string]domain.Property)
	var required []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitempty := fieldName(field)
		if name == "-" {
			continue
		}

		prop, err := property(field.Type, field.Tag, depth)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		props[name] = prop
		if !omitempty && field.Type.Kind() != reflect.Ptr {
			required = append(required, name)
		}
	}
	return props, required, nil
}

func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty")
}

func property(t reflect.Type, tags reflect.StructTag, depth int) (domain.Property, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	prop := domain.Property{Description: tags.Get("description")}
	switch t.Kind() {
	case reflect.String:
		prop.Type = "string"
	case reflect.Bool:
		prop.Type = "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		prop.Type = "integer"
	case reflect.Float32, reflect.Float64:
		prop.Type = "number"
	case reflect.Slice, reflect.Array:
		prop.Type = "array"
		items, err := property(t.Elem(), "", depth+1)
		if err != nil {
			return prop, err
		}
		prop.Items = &items
	case reflect.Struct:
		prop.Type = "object"
		props, _, err := structProperties(t, depth+1)
		if err != nil {
			return prop, err
		}
		prop.Properties = props
	case reflect.Map:
		prop.Type = "object"
	default:
		return prop, fmt.Errorf("unsupported kind %s", t.Kind())
	}

	if err := applyTags(&prop, t, tags); err != nil {
		return prop, err
	}
	return prop, nil
}

func applyTags(prop *domain.Property, t reflect.Type, tags reflect.StructTag) error {
	if def, ok := tags.Lookup("default"); ok {
		v, err := parseDefault(def, t)
		if err != nil {
			return fmt.Errorf("default %q: %w", def, err)
		}
		prop.Default = v
	}
	if enum := tags.Get("enum"); enum != "" {
		for _, e := range strings.Split(enum, ",") {
			prop.Enum = append(prop.Enum, strings.TrimSpace(e))
		}
	}
	if pattern := tags.Get("pattern"); pattern != "" {
		prop.Pattern = pattern
	}

	for _, bound := range []struct {
		tag string
		dst **float64
	}{{"minimum", &prop.Minimum}, {"maximum", &prop.Maximum}} {
		if s := tags.Get(bound.tag); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%s %q: %w", bound.tag, s, err)
			}
			*bound.dst = domain.Float(f)
		}
	}
	for _, bound := range []struct {
		tag string
		dst **int
	}{{"minLength", &prop.MinLength}, {"maxLength", &prop.MaxLength}} {
		if s := tags.Get(bound.tag); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s %q: %w", bound.tag, s, err)
			}
			*bound.dst = domain.Int(n)
		}
	}
	return nil
}

func parseDefault(s string, t reflect.Type) (interface{}, error) {
	switch t.Kind() {
	case reflect.String:
		return s, nil
	case reflect.Bool:
		return strconv.ParseBool(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.Atoi(s)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(s, 64)
	}
	return nil, fmt.Errorf("defaults are not supported for %s", t.Kind())
}
