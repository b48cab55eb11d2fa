// Package query builds the conditional part of list queries. Values are
// always bound as positional parameters ($1, $2, ...) and never written
// into the SQL text.
package query

import (
	"strconv"
	"strings"
)

// Filter accumulates predicates and their bound parameters. Parameters are
// numbered in the order they are added, so placeholders appear in the
// rendered SQL in ascending order.
type Filter struct {
	predicates []string
	args       []any
}

// New returns a filter without predicates.
func New() *Filter {
	return &Filter{}
}

// Bind appends a parameter and returns its placeholder.
func (f *Filter) Bind(value any) string {
	f.args = append(f.args, value)
	return "$" + strconv.Itoa(len(f.args))
}

// Search matches term as a case-insensitive substring of any of columns.
// Both sides are folded by the store's LOWER so they agree on which
// characters have a case. The pattern is bound once per column. An empty
// term adds nothing.
func (f *Filter) Search(term string, columns ...string) *Filter {
	if term == "" || len(columns) == 0 {
		return f
	}

	pattern := "%" + escapeLike(term) + "%"
	alternatives := make([]string, len(columns))
	for i, column := range columns {
		alternatives[i] = "LOWER(" + column + ") LIKE LOWER(" + f.Bind(pattern) + `) ESCAPE '\'`
	}

	f.predicates = append(f.predicates, "("+strings.Join(alternatives, " OR ")+")")
	return f
}

// Equal matches rows whose column equals value.
func (f *Filter) Equal(column string, value any) *Filter {
	f.predicates = append(f.predicates, column+" = "+f.Bind(value))
	return f
}

// Empty reports whether no predicate is active.
func (f *Filter) Empty() bool {
	return len(f.predicates) == 0
}

// Where renders the predicates joined with AND, prefixed by " WHERE ".
// It returns an empty string when no predicate is active.
func (f *Filter) Where() string {
	if f.Empty() {
		return ""
	}
	return " WHERE " + strings.Join(f.predicates, " AND ")
}

// Args returns a copy of the parameters bound so far.
func (f *Filter) Args() []any {
	args := make([]any, len(f.args))
	copy(args, f.args)
	return args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike protects the LIKE wildcards and the escape character itself.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
