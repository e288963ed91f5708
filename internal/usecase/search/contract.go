package search

import (
	"context"

	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/occurrence"
)

// CandidateStore is the case file catalog: it evaluates the compiled bulk
// predicate and returns the raw matching records.
type CandidateStore interface {
	FindMatching(ctx context.Context, whereClause string) ([]*casefile.CaseFile, error)
}

// OccurrenceStore is the cross-case occurrence repository used by
// alternate-evaluation filters. It is an optional capability: searches whose
// filters are all bulk-queryable never touch it.
type OccurrenceStore interface {
	LookupFrequencyType(ctx context.Context) (occurrence.AttributeType, error)
	CountDistinctOccurrences(ctx context.Context, attrType occurrence.AttributeType, hash string) (int64, error)
}
