// Package query builds parameterized SELECT statements over a projection of
// view field names onto table columns.
package query

import "strings"

// ProjectionMap maps view field names to qualified table columns.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates an empty projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project adds column under the view name field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.fields[field] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the schema-qualified table with its alias.
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column returns the qualified column for field, or field itself when unknown.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Known reports whether field is projected.
func (p *ProjectionMap) Known(field string) bool {
	_, ok := p.fields[field]
	return ok
}

// Columns returns the projected columns as a SELECT list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the projected columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	return append([]string(nil), p.columns...)
}
