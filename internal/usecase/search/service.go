package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/casevault/filesift/internal/domain"
	"github.com/casevault/filesift/internal/domain/search/filter"
	"github.com/casevault/filesift/internal/domain/search/result"
	"github.com/casevault/filesift/internal/metrics"
)

// Service is the two-stage search engine. Stage one submits the compiled
// conjunctive predicate to the case catalog in a single bulk query; stage two
// applies the alternate-evaluation filters per candidate, in the caller's
// filter order, against the occurrence store.
type Service struct {
	catalog     CandidateStore
	occurrences OccurrenceStore
	logger      *zap.Logger
}

// New creates a search engine over the given case catalog.
func New(catalog CandidateStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// WithOccurrences attaches the optional occurrence store capability. Without
// it, searches containing an alternate-evaluation filter fail eagerly with a
// misconfigured-filter error.
func (s *Service) WithOccurrences(occ OccurrenceStore) *Service {
	s.occurrences = occ
	return s
}

// RunQueries runs the given filters and returns the files matching all of
// them, in catalog order. The invocation is all-or-nothing: any store failure
// aborts it and no partial collection is returned.
func (s *Service) RunQueries(ctx context.Context, filters []filter.Filter) (files []*result.File, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ObserveSearch(status, time.Since(start), len(files))
	}()

	if s.catalog == nil {
		return nil, domain.NewSearchError(domain.ErrInvalidInput,
			errors.New("case catalog is not configured"))
	}
	// Check the occurrence capability before any store work so a
	// misconfiguration fails the same way regardless of catalog contents.
	for _, f := range filters {
		if f.NeedsAlternate() && s.occurrences == nil {
			return nil, domain.NewSearchError(domain.ErrMisconfiguredFilter,
				errors.New(f.Describe()+" requires an occurrence store"))
		}
	}

	predicate, err := CompilePredicate(filters)
	if err != nil {
		return nil, err
	}

	s.logger.Info("running search",
		zap.String("filters", describeAll(filters)),
		zap.String("predicate", predicate),
	)

	candidates, err := s.catalog.FindMatching(ctx, predicate)
	if err != nil {
		return nil, domain.NewSearchError(domain.ErrStoreFailure, err)
	}
	if len(candidates) == 0 {
		return []*result.File{}, nil
	}

	files = result.Wrap(candidates)
	for _, f := range filters {
		if !f.NeedsAlternate() {
			continue
		}
		files, err = f.ApplyAlternate(ctx, files, s.catalog, s.occurrences)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return files, nil
		}
	}
	return files, nil
}

// describeAll renders the active filters for the diagnostic log line.
func describeAll(filters []filter.Filter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.Describe())
	}
	return strings.Join(parts, "; ")
}
