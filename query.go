package filesift

import (
	"context"
	"fmt"

	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/search/filter"
)

// QueryBuilder is a fluent builder for file searches. Each With* call adds
// one filter; filters combine conjunctively. Value errors are deferred to Do.
type QueryBuilder struct {
	client  *Client
	filters []filter.Filter
	err     error
}

func (b *QueryBuilder) add(f filter.Filter, err error) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	b.filters = append(b.filters, f)
	return b
}

// SizeBetween matches files with minBytes < size <= maxBytes.
func (b *QueryBuilder) SizeBetween(minBytes, maxBytes int64) *QueryBuilder {
	r, err := casefile.NewSizeRange(minBytes, maxBytes)
	if err != nil {
		return b.add(nil, err)
	}
	f, err := filter.NewSize([]casefile.SizeRange{r})
	return b.add(f, err)
}

// SizeAtLeast matches files of at least minBytes.
func (b *QueryBuilder) SizeAtLeast(minBytes int64) *QueryBuilder {
	return b.SizeBetween(minBytes, casefile.NoMaximum)
}

// SizeIn matches files falling in any of the preset ranges, such as
// casefile.SizeSmall or casefile.SizeLarge.
func (b *QueryBuilder) SizeIn(ranges ...casefile.SizeRange) *QueryBuilder {
	f, err := filter.NewSize(ranges)
	return b.add(f, err)
}

// UnderPath matches files whose parent path contains the substring.
func (b *QueryBuilder) UnderPath(substring string) *QueryBuilder {
	t, err := filter.NewParentSearchTerm(substring, false)
	if err != nil {
		return b.add(nil, err)
	}
	f, err := filter.NewParentPath([]filter.ParentSearchTerm{t})
	return b.add(f, err)
}

// InPath matches files whose parent path equals the given path exactly.
func (b *QueryBuilder) InPath(path string) *QueryBuilder {
	t, err := filter.NewParentSearchTerm(path, true)
	if err != nil {
		return b.add(nil, err)
	}
	f, err := filter.NewParentPath([]filter.ParentSearchTerm{t})
	return b.add(f, err)
}

// FromDataSources matches files from the given evidence source ids.
func (b *QueryBuilder) FromDataSources(objIDs ...int64) *QueryBuilder {
	sources := make([]casefile.DataSource, 0, len(objIDs))
	for _, id := range objIDs {
		ds, err := casefile.NewDataSource(id, "")
		if err != nil {
			return b.add(nil, err)
		}
		sources = append(sources, ds)
	}
	f, err := filter.NewDataSource(sources)
	return b.add(f, err)
}

// WithKeywordsIn matches files that have hits in any of the named keyword
// lists.
func (b *QueryBuilder) WithKeywordsIn(listNames ...string) *QueryBuilder {
	f, err := filter.NewKeywordList(listNames)
	return b.add(f, err)
}

// OfType matches files of any of the named categories: image, video, audio,
// document or executable.
func (b *QueryBuilder) OfType(categories ...string) *QueryBuilder {
	cats := make([]casefile.Category, 0, len(categories))
	for _, s := range categories {
		c, err := casefile.ParseCategory(s)
		if err != nil {
			return b.add(nil, err)
		}
		cats = append(cats, c)
	}
	f, err := filter.NewFileType(cats)
	return b.add(f, err)
}

// WithFrequency keeps only files whose content hash falls in any of the
// named occurrence buckets: unique, rare, common or unknown. Requires the
// occurrence store.
func (b *QueryBuilder) WithFrequency(buckets ...string) *QueryBuilder {
	parsed := make([]casefile.Frequency, 0, len(buckets))
	for _, s := range buckets {
		f, err := casefile.ParseFrequency(s)
		if err != nil {
			return b.add(nil, err)
		}
		parsed = append(parsed, f)
	}
	f, err := filter.NewFrequency(parsed)
	if err != nil {
		return b.add(nil, err)
	}
	if b.client.enrichmentWorkers > 0 {
		f = f.WithLookupLimit(b.client.enrichmentWorkers)
	}
	return b.add(f, nil)
}

// Do runs the search and returns matching files in catalog id order.
func (b *QueryBuilder) Do(ctx context.Context) ([]File, error) {
	if b.err != nil {
		return nil, fmt.Errorf("filesift: build query: %w", b.err)
	}

	results, err := b.client.searchSvc.RunQueries(ctx, b.filters)
	if err != nil {
		return nil, err
	}

	out := make([]File, len(results))
	for i, rf := range results {
		cf := rf.CaseFile()
		out[i] = File{
			ObjID:           cf.ObjID,
			DataSourceObjID: cf.DataSourceObjID,
			Name:            cf.Name,
			ParentPath:      cf.ParentPath,
			Size:            cf.Size,
			MimeType:        cf.MimeType,
			MD5Hash:         cf.MD5Hash,
		}
		if rf.Frequency() != casefile.FrequencyUnknown {
			out[i].Frequency = rf.Frequency().String()
		}
	}
	return out, nil
}
