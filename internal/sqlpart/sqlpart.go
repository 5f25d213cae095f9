// Package sqlpart builds the column portion of partial UPDATE and INSERT
// statements from an ordered set of fields.
//
// Values are always bound positionally ($1, $2, ...). Column names are
// double-quoted to avoid keyword collisions but are not escaped, so the
// name-to-column mapping and any unmapped field names must be trusted
// identifiers.
package sqlpart

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned when no fields are supplied.
var ErrNoData = errors.New("No data")

// Field is one external field name and the value to write for it.
type Field struct {
	Name  string
	Value interface{}
}

// Fields keeps insertion order; clause order and placeholder indices follow it.
type Fields []Field

// Add appends a field and returns the extended set.
func (f Fields) Add(name string, value interface{}) Fields {
	return append(f, Field{Name: name, Value: value})
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

type UpdateClause struct {
	SetCols string
	Values  []interface{}
}

// Next returns the placeholder following the last value.
func (u UpdateClause) Next() string {
	return placeholder(len(u.Values) + 1)
}

type InsertClause struct {
	Columns      string
	Placeholders string
	Values       []interface{}
}

func (i InsertClause) Next() string {
	return placeholder(len(i.Values) + 1)
}

// Update builds `"col"=$1, "col2"=$2` for the SET clause of an UPDATE.
func Update(fields Fields, columns map[string]string) (UpdateClause, error) {
	if len(fields) == 0 {
		return UpdateClause{}, ErrNoData
	}

	cols := make([]string, len(fields))
	values := make([]interface{}, len(fields))
	for i, field := range fields {
		cols[i] = fmt.Sprintf("%s=%s", quote(column(field.Name, columns)), placeholder(i+1))
		values[i] = field.Value
	}

	return UpdateClause{
		SetCols: strings.Join(cols, ", "),
		Values:  values,
	}, nil
}

// Insert builds the parallel column and placeholder lists of an INSERT.
func Insert(fields Fields, columns map[string]string) (InsertClause, error) {
	if len(fields) == 0 {
		return InsertClause{}, ErrNoData
	}

	cols := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	values := make([]interface{}, len(fields))
	for i, field := range fields {
		cols[i] = quote(column(field.Name, columns))
		placeholders[i] = placeholder(i + 1)
		values[i] = field.Value
	}

	return InsertClause{
		Columns:      strings.Join(cols, ", "),
		Placeholders: strings.Join(placeholders, ", "),
		Values:       values,
	}, nil
}

func column(name string, columns map[string]string) string {
	if mapped, ok := columns[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

func quote(name string) string {
	return `"` + name + `"`
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
