// Package query renders parameterized PostgreSQL SELECT statements from
// projection maps, so handlers filter and sort by field names rather than columns.
package query

import "strings"

// ProjectionMap maps field names to alias-qualified columns of one table.
type ProjectionMap struct {
	from    string
	alias   string
	byField map[string]string
	ordered []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		from:    schema + "." + table + " " + alias,
		alias:   alias,
		byField: map[string]string{},
	}
}

// Project selects column and exposes it as field. Columns are selected in
// the order they are projected.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.byField[field] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// From is the "schema.table alias" reference.
func (p *ProjectionMap) From() string {
	return p.from
}

// Column returns the qualified column for field. Unknown fields are returned unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.byField[field]; ok {
		return col
	}
	return field
}

func (p *ProjectionMap) Has(field string) bool {
	_, ok := p.byField[field]
	return ok
}

// Columns is the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
