package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT for a row struct, taking columns from
// `db` struct tags. Fields without a tag, or tagged "-", are skipped.
func InsertModel(table string, model any) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert needs a table")
	}

	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil, fmt.Errorf("insert model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert model must be a struct, got %s", v.Kind())
	}

	var s stmt
	s.sql.WriteString("INSERT INTO ")
	s.sql.WriteString(table)
	s.sql.WriteString(" (")

	var placeholders []string
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		column := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if column == "" || column == "-" {
			continue
		}
		if len(placeholders) > 0 {
			s.sql.WriteString(", ")
		}
		s.sql.WriteString(column)
		placeholders = append(placeholders, s.bind(v.Field(i).Interface()))
	}
	if len(placeholders) == 0 {
		return "", nil, fmt.Errorf("insert model has no db-tagged fields")
	}

	s.sql.WriteString(") VALUES (")
	s.sql.WriteString(strings.Join(placeholders, ", "))
	s.sql.WriteString(")")

	return s.sql.String(), s.args, nil
}
