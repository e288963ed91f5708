// Package filter defines the selection criteria a search is composed of.
//
// A filter either contributes a fragment of the catalog's SQL predicate
// (bulk-queryable), or is applied per-candidate after the bulk query against
// a second store (alternate evaluation). The set of variants is closed: Size,
// ParentPath, DataSource, KeywordList, FileType and Frequency.
package filter

import (
	"context"
	"strings"

	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/occurrence"
	"github.com/casevault/filesift/internal/domain/search/result"
)

// CandidateStore is the case catalog as seen by alternate evaluation.
type CandidateStore interface {
	FindMatching(ctx context.Context, whereClause string) ([]*casefile.CaseFile, error)
}

// OccurrenceStore is the cross-case occurrence repository as seen by
// alternate evaluation.
type OccurrenceStore interface {
	LookupFrequencyType(ctx context.Context) (occurrence.AttributeType, error)
	CountDistinctOccurrences(ctx context.Context, attrType occurrence.AttributeType, hash string) (int64, error)
}

// Filter is one unit of selection criteria. All variants are immutable value
// objects, safe to share across concurrent searches.
type Filter interface {
	// WhereClause returns this filter's fragment of the catalog predicate,
	// or an empty string if the criterion has no bulk-queryable form.
	// Alternatives within one filter are OR-joined inside the fragment.
	WhereClause() string

	// NeedsAlternate reports whether the filter must be applied per-candidate
	// after the bulk query.
	NeedsAlternate() bool

	// ApplyAlternate applies the criterion against the current candidate set
	// using the supplied stores. Bulk-only filters return the input unchanged;
	// the engine never invokes them.
	ApplyAlternate(ctx context.Context, files []*result.File, catalog CandidateStore, occurrences OccurrenceStore) ([]*result.File, error)

	// Describe renders a human-readable summary of the criterion.
	Describe() string

	sealed()
}

// bulkOnly supplies the defaults for filters that are fully expressed in the
// catalog predicate.
type bulkOnly struct{}

func (bulkOnly) NeedsAlternate() bool { return false }

func (bulkOnly) ApplyAlternate(_ context.Context, files []*result.File, _ CandidateStore, _ OccurrenceStore) ([]*result.File, error) {
	return files, nil
}

func (bulkOnly) sealed() {}

// sqlLiteral quotes a string for embedding in a catalog predicate.
func sqlLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// joinOr renders criterion values for Describe, joined with " or ".
func joinOr(parts []string) string {
	return strings.Join(parts, " or ")
}
