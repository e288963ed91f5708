package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/casevault/filesift/internal/domain"
	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/search/filter"
)

func sizeFilter(t *testing.T, min, max int64) filter.Filter {
	t.Helper()
	r, err := casefile.NewSizeRange(min, max)
	if err != nil {
		t.Fatalf("NewSizeRange: %v", err)
	}
	f, err := filter.NewSize([]casefile.SizeRange{r})
	if err != nil {
		t.Fatalf("NewSize: %v", err)
	}
	return f
}

func typeFilter(t *testing.T, cats ...casefile.Category) filter.Filter {
	t.Helper()
	f, err := filter.NewFileType(cats)
	if err != nil {
		t.Fatalf("NewFileType: %v", err)
	}
	return f
}

func frequencyFilter(t *testing.T, buckets ...casefile.Frequency) filter.Filter {
	t.Helper()
	f, err := filter.NewFrequency(buckets)
	if err != nil {
		t.Fatalf("NewFrequency: %v", err)
	}
	return f
}

func TestCompilePredicate_JoinsClausesInOrder(t *testing.T) {
	kw, err := filter.NewKeywordList([]string{"pii"})
	if err != nil {
		t.Fatalf("NewKeywordList: %v", err)
	}

	predicate, err := CompilePredicate([]filter.Filter{
		sizeFilter(t, 1024, 1048576),
		kw,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "(size > '1024' AND size <= '1048576') AND " +
		"(obj_id IN (SELECT file_obj_id FROM keyword_hits WHERE list_name = 'pii'))"
	if predicate != want {
		t.Errorf("predicate = %q, want %q", predicate, want)
	}
}

func TestCompilePredicate_WrapsOnlyUnparenthesizedClauses(t *testing.T) {
	xsmall, err := casefile.NewSizeRange(0, 1024)
	if err != nil {
		t.Fatalf("NewSizeRange: %v", err)
	}
	large, err := casefile.NewSizeRange(1048576, casefile.NoMaximum)
	if err != nil {
		t.Fatalf("NewSizeRange: %v", err)
	}
	multiRange, err := filter.NewSize([]casefile.SizeRange{xsmall, large})
	if err != nil {
		t.Fatalf("NewSize: %v", err)
	}

	predicate, err := CompilePredicate([]filter.Filter{
		multiRange,
		typeFilter(t, casefile.CategoryAudio),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The OR-joined size fragment is not one group and needs the outer
	// parens; the IN clause gets wrapped because it has none of its own.
	wantPrefix := "((size > '0' AND size <= '1024') OR (size >= '1048576')) AND (mime_type IN ("
	if !strings.HasPrefix(predicate, wantPrefix) {
		t.Errorf("predicate = %q, want prefix %q", predicate, wantPrefix)
	}
}

func TestCompilePredicate_SkipsNonBulkFilters(t *testing.T) {
	predicate, err := CompilePredicate([]filter.Filter{
		frequencyFilter(t, casefile.FrequencyUnique),
		sizeFilter(t, 0, 1024),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "(size > '0' AND size <= '1024')"
	if predicate != want {
		t.Errorf("predicate = %q, want %q", predicate, want)
	}
}

func TestCompilePredicate_EmptyIsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		filters []filter.Filter
	}{
		{"no filters", nil},
		{"only non-bulk filters", []filter.Filter{frequencyFilter(t, casefile.FrequencyUnique)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePredicate(tt.filters)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
