package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SortField orders by a projected field name.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields reads "field,-other" into sort fields; a leading "-" sorts
// descending. Empty input yields nil.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// condition is a WHERE fragment whose "?" markers become $n placeholders
// when the statement is rendered.
type condition struct {
	clause string
	args   []any
}

// Builder renders SELECT statements over a ProjectionMap. Filters with nil or
// empty values are skipped so optional query parameters can be passed straight
// through.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{projection: projection, defaultSort: defaultSort}
}

// OrderByFields replaces the default sort. Fields missing from the projection
// are dropped when rendering.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.where(b.projection.Column(field)+" = ?", value)
}

// WhereAny matches rows whose array column contains value.
func (b *Builder) WhereAny(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.where("? = ANY("+b.projection.Column(field)+")", value)
}

// WhereSearch matches rows where any of fields contains search, case-insensitively.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	ors := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		ors[i] = b.projection.Column(f) + " ILIKE ?"
		args[i] = pattern
	}
	return b.where("("+strings.Join(ors, " OR ")+")", args...)
}

func (b *Builder) where(clause string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

func (b *Builder) Build() (string, []any) {
	where, args := b.renderWhere()
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From() + where + b.renderOrder(), args
}

func (b *Builder) BuildCount() (string, []any) {
	where, args := b.renderWhere()
	return "SELECT COUNT(*) FROM " + b.projection.From() + where, args
}

// BuildPage is Build limited to one 1-indexed page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	sql, args := b.Build()
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", sql, pageSize, (page-1)*pageSize), args
}

// BuildSingle selects the row whose idField equals id, ignoring other conditions.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := "SELECT " + b.projection.Columns() + " FROM " + b.projection.From() +
		" WHERE " + b.projection.Column(idField) + " = $1"
	return sql, []any{id}
}

func (b *Builder) renderWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	var sb strings.Builder
	var args []any
	for i, c := range b.conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		next := 0
		for _, r := range c.clause {
			if r != '?' {
				sb.WriteRune(r)
				continue
			}
			args = append(args, c.args[next])
			next++
			sb.WriteString("$" + strconv.Itoa(len(args)))
		}
	}
	return " WHERE " + sb.String(), args
}

func (b *Builder) renderOrder() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}

	var parts []string
	for _, f := range fields {
		// Sort names arrive from query strings; only projected fields reach SQL.
		if !b.projection.Has(f.Field) {
			continue
		}
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		parts = append(parts, b.projection.Column(f.Field)+dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
