package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	secretType   = reflect.TypeOf(Secret{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// Document renders a human readable description of a config schema from
// its yaml and doc struct tags. v may be a struct value or a pointer to one.
//
//	type Config struct {
//		MaxConnections int32 `yaml:"max_connections" doc:"Upper bound of pooled connections."`
//	}
//
// renders as
//
//	max_connections: integer
//	    Upper bound of pooled connections.
func Document(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}

	var b strings.Builder
	writeStruct(&b, t, 0)
	return b.String()
}

func writeStruct(b *strings.Builder, t reflect.Type, depth int) {
	indent := strings.Repeat("  ", depth)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, inline := yamlName(field)
		if name == "-" {
			continue
		}

		if inline {
			writeStruct(b, deref(field.Type), depth)
			continue
		}

		fmt.Fprintf(b, "%s%s: %s\n", indent, name, describeType(field.Type))
		if doc := field.Tag.Get("doc"); doc != "" {
			fmt.Fprintf(b, "%s    %s\n", indent, doc)
		}

		if nested := nestedStruct(field.Type); nested != nil {
			writeStruct(b, nested, depth+1)
		}
	}
}

func yamlName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("yaml")
	parts := strings.Split(tag, ",")

	inline := false
	for _, opt := range parts[1:] {
		if opt == "inline" {
			inline = true
		}
	}

	if parts[0] == "" {
		return strings.ToLower(field.Name), inline
	}
	return parts[0], inline
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func nestedStruct(t reflect.Type) reflect.Type {
	t = deref(t)
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Map {
		t = deref(t.Elem())
	}
	if t.Kind() == reflect.Struct && t != secretType && t != durationType {
		return t
	}
	return nil
}

func describeType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "optional " + describeType(t.Elem())
	}

	switch t {
	case secretType:
		return "secret (string, {env: NAME} or {command: CMD})"
	case durationType:
		return "duration (for example 30s, 1m)"
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list of " + describeType(t.Elem())
	case reflect.Map:
		return "map of " + describeType(t.Key()) + " to " + describeType(t.Elem())
	case reflect.Struct:
		return "object"
	}

	return t.String()
}
