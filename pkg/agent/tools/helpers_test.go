package tools

import "reflect"

func reflectValue(v interface{}) reflect.Value { return reflect.ValueOf(v) }

func reflectType(v interface{}) reflect.Type { return reflect.TypeOf(v) }
