package filter

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/casevault/filesift/internal/domain"
	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/search/result"
)

// DefaultLookupLimit bounds concurrent occurrence store lookups.
const DefaultLookupLimit = 8

// Frequency retains files whose cross-case occurrence bucket is among the
// requested ones. It has no bulk-queryable form: occurrence counts live in
// the external occurrence repository, so evaluation happens per candidate
// after the bulk query.
type Frequency struct {
	buckets     []casefile.Frequency
	lookupLimit int
}

// NewFrequency validates and creates a Frequency filter.
func NewFrequency(buckets []casefile.Frequency) (Frequency, error) {
	if len(buckets) == 0 {
		return Frequency{}, fmt.Errorf("frequency filter requires at least one bucket")
	}
	return Frequency{
		buckets:     append([]casefile.Frequency(nil), buckets...),
		lookupLimit: DefaultLookupLimit,
	}, nil
}

// WithLookupLimit returns a copy with a different bound on concurrent
// occurrence lookups. Values below one fall back to the default.
func (f Frequency) WithLookupLimit(n int) Frequency {
	if n < 1 {
		n = DefaultLookupLimit
	}
	f.lookupLimit = n
	return f
}

// WhereClause is empty: the criterion depends on the occurrence repository,
// not the case catalog.
func (f Frequency) WhereClause() string { return "" }

func (f Frequency) NeedsAlternate() bool { return true }

// ApplyAlternate computes the occurrence bucket for each candidate and keeps
// those whose bucket was requested. Lookups fan out with bounded concurrency;
// output preserves input order and any single lookup failure aborts the whole
// batch. Files without a content hash keep FrequencyUnknown and pass only if
// that bucket was requested.
func (f Frequency) ApplyAlternate(ctx context.Context, files []*result.File, _ CandidateStore, occurrences OccurrenceStore) ([]*result.File, error) {
	if occurrences == nil {
		return nil, domain.NewSearchError(domain.ErrMisconfiguredFilter,
			errors.New("frequency filter requires an occurrence store"))
	}
	// The engine runs the bulk query first and short-circuits on an empty
	// collection, so an empty input here is a contract violation.
	if len(files) == 0 {
		return nil, domain.NewSearchError(domain.ErrInvalidInput,
			errors.New("frequency filter invoked on empty candidate set"))
	}

	attrType, err := occurrences.LookupFrequencyType(ctx)
	if err != nil {
		return nil, domain.NewSearchError(domain.ErrEnrichmentFailure,
			fmt.Errorf("lookup frequency attribute type: %w", err))
	}

	buckets := make([]casefile.Frequency, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.lookupLimit)
	for i, rf := range files {
		if !rf.CaseFile().HasHash() {
			continue
		}
		i := i
		hash := rf.CaseFile().MD5Hash
		g.Go(func() error {
			count, err := occurrences.CountDistinctOccurrences(gctx, attrType, hash)
			if err != nil {
				return fmt.Errorf("count occurrences for %s: %w", hash, err)
			}
			buckets[i] = casefile.FrequencyFromCount(count)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewSearchError(domain.ErrEnrichmentFailure, err)
	}

	out := make([]*result.File, 0, len(files))
	for i, rf := range files {
		if buckets[i] != "" {
			rf.SetFrequency(buckets[i])
		}
		if f.requested(rf.Frequency()) {
			out = append(out, rf)
		}
	}
	return out, nil
}

func (f Frequency) requested(b casefile.Frequency) bool {
	for _, want := range f.buckets {
		if want == b {
			return true
		}
	}
	return false
}

func (f Frequency) Describe() string {
	parts := make([]string, 0, len(f.buckets))
	for _, b := range f.buckets {
		parts = append(parts, b.String())
	}
	return "Files with frequency: " + joinOr(parts)
}

func (Frequency) sealed() {}
