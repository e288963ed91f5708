package search

import (
	"errors"
	"strings"

	"github.com/casevault/filesift/internal/domain"
	"github.com/casevault/filesift/internal/domain/search/filter"
)

// CompilePredicate combines the bulk-queryable fragments of the given filters
// into one conjunctive predicate for the case catalog. Each non-empty
// fragment is parenthesized (unless it already is a single group) and
// AND-joined in input order. There is no match-everything default: a filter
// list contributing no fragment at all is an input error.
func CompilePredicate(filters []filter.Filter) (string, error) {
	var sb strings.Builder
	for _, f := range filters {
		clause := f.WhereClause()
		if clause == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" AND ")
		}
		if parenthesized(clause) {
			sb.WriteString(clause)
		} else {
			sb.WriteString("(" + clause + ")")
		}
	}
	if sb.Len() == 0 {
		return "", domain.NewSearchError(domain.ErrInvalidInput,
			errors.New("selected filters do not include a catalog query"))
	}
	return sb.String(), nil
}

// parenthesized reports whether the clause is already one balanced
// parenthesized group, so a fragment like "(a) OR (b)" still gets wrapped.
func parenthesized(clause string) bool {
	if len(clause) < 2 || clause[0] != '(' || clause[len(clause)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(clause); i++ {
		switch clause[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(clause)-1 {
				return false
			}
		}
	}
	return depth == 0
}
