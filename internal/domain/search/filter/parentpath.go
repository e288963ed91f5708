package filter

import (
	"fmt"
	"strings"
)

// ParentSearchTerm is one path criterion: a search string plus whether it
// must match the whole parent path or just a substring of it.
type ParentSearchTerm struct {
	term  string
	exact bool
}

// NewParentSearchTerm validates and creates a ParentSearchTerm.
func NewParentSearchTerm(term string, exact bool) (ParentSearchTerm, error) {
	if term == "" {
		return ParentSearchTerm{}, fmt.Errorf("path search term is required")
	}
	return ParentSearchTerm{term: term, exact: exact}, nil
}

// Term returns the search string.
func (t ParentSearchTerm) Term() string { return t.term }

// Exact reports whether the term must match the full parent path.
func (t ParentSearchTerm) Exact() bool { return t.exact }

// whereTerm renders the term as a catalog predicate comparison.
func (t ParentSearchTerm) whereTerm() string {
	if t.exact {
		return "parent_path=" + sqlLiteral(t.term)
	}
	return "parent_path LIKE " + sqlLiteral("%"+t.term+"%")
}

func (t ParentSearchTerm) String() string {
	if t.exact {
		return t.term + " (exact)"
	}
	return t.term + " (substring)"
}

// ParentPath matches files whose parent path matches any of the given terms.
type ParentPath struct {
	bulkOnly
	terms []ParentSearchTerm
}

// NewParentPath validates and creates a ParentPath filter.
func NewParentPath(terms []ParentSearchTerm) (ParentPath, error) {
	if len(terms) == 0 {
		return ParentPath{}, fmt.Errorf("parent path filter requires at least one term")
	}
	return ParentPath{terms: append([]ParentSearchTerm(nil), terms...)}, nil
}

func (f ParentPath) WhereClause() string {
	var sb strings.Builder
	for i, t := range f.terms {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString(t.whereTerm())
	}
	return sb.String()
}

func (f ParentPath) Describe() string {
	parts := make([]string, 0, len(f.terms))
	for _, t := range f.terms {
		parts = append(parts, t.String())
	}
	return "Files with paths matching: " + joinOr(parts)
}
