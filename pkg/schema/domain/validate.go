package domain

// ABOUTME: Lightweight validation of decoded tool arguments against a Schema
// ABOUTME: Covers required fields, primitive types, enums, ranges and lengths

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"unicode/utf8"
)

// Validate checks decoded JSON arguments against the schema. Unknown
// properties are rejected only when AdditionalProperties is false.
func (s *Schema) Validate(args map[string]interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if s == nil {
		return result
	}

	for _, name := range s.Required {
		if v, ok := args[name]; !ok || v == nil {
			result.addf("missing required parameter '%s'", name)
		}
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := args[name]
		prop, ok := s.Properties[name]
		if !ok {
			if s.AdditionalProperties != nil && !*s.AdditionalProperties {
				result.addf("unknown parameter '%s'", name)
			}
			continue
		}
		if value == nil {
			continue
		}
		prop.check(name, value, result)
	}
	return result
}

func (r *ValidationResult) addf(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (p Property) check(name string, value interface{}, result *ValidationResult) {
	switch p.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			result.addf("parameter '%s' must be a string", name)
			return
		}
		n := utf8.RuneCountInString(s)
		if p.MinLength != nil && n < *p.MinLength {
			result.addf("parameter '%s' must be at least %d characters", name, *p.MinLength)
		}
		if p.MaxLength != nil && n > *p.MaxLength {
			result.addf("parameter '%s' must be at most %d characters", name, *p.MaxLength)
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			result.addf("parameter '%s' must be one of %v", name, p.Enum)
		}
		if p.Pattern != "" {
			if re, err := regexp.Compile(p.Pattern); err == nil && !re.MatchString(s) {
				result.addf("parameter '%s' does not match pattern %s", name, p.Pattern)
			}
		}
	case "integer", "number":
		f, ok := toFloat(value)
		if !ok {
			result.addf("parameter '%s' must be a %s", name, p.Type)
			return
		}
		if p.Type == "integer" && f != math.Trunc(f) {
			result.addf("parameter '%s' must be an integer", name)
		}
		if p.Minimum != nil && f < *p.Minimum {
			result.addf("parameter '%s' must be >= %v", name, *p.Minimum)
		}
		if p.Maximum != nil && f > *p.Maximum {
			result.addf("parameter '%s' must be <= %v", name, *p.Maximum)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			result.addf("parameter '%s' must be a boolean", name)
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			result.addf("parameter '%s' must be an array", name)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			result.addf("parameter '%s' must be an object", name)
		}
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
