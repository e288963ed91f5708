package chi

import (
	"fmt"

	"github.com/casevault/filesift/internal/domain/casefile"
	"github.com/casevault/filesift/internal/domain/search/filter"
	"github.com/casevault/filesift/internal/domain/search/result"
)

// ErrorResponseCode classifies API errors for clients.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	CodeBadRequest          ErrorResponseCode = "bad_request"
	CodeInvalidInput        ErrorResponseCode = "invalid_input"
	CodeStoreFailure        ErrorResponseCode = "store_failure"
	CodeEnrichmentFailure   ErrorResponseCode = "enrichment_failure"
	CodeMisconfiguredFilter ErrorResponseCode = "misconfigured_filter"
	CodeInternalError       ErrorResponseCode = "internal_error"
)

// ErrorResponse is the uniform API error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequest carries the filter selections for one search.
type SearchRequest struct {
	Filters FilterSelections `json:"filters"`
}

// FilterSelections mirrors the UI filter panel: each non-empty group becomes
// one filter, groups are applied conjunctively in the declared order.
type FilterSelections struct {
	SizeRanges   []SizeRangeSelection  `json:"size_ranges,omitempty"`
	ParentPaths  []ParentPathSelection `json:"parent_paths,omitempty"`
	DataSources  []DataSourceSelection `json:"data_sources,omitempty"`
	KeywordLists []string              `json:"keyword_lists,omitempty"`
	FileTypes    []string              `json:"file_types,omitempty"`
	Frequencies  []string              `json:"frequencies,omitempty"`
}

// SizeRangeSelection is one byte range; MaxBytes of -1 means no upper bound.
type SizeRangeSelection struct {
	MinBytes int64 `json:"min_bytes"`
	MaxBytes int64 `json:"max_bytes"`
}

// ParentPathSelection is one path term.
type ParentPathSelection struct {
	Term  string `json:"term"`
	Exact bool   `json:"exact"`
}

// DataSourceSelection identifies one evidence source.
type DataSourceSelection struct {
	ObjID int64  `json:"obj_id"`
	Name  string `json:"name,omitempty"`
}

// SearchResponse is the result of one search.
type SearchResponse struct {
	Count int          `json:"count"`
	Files []FileResult `json:"files"`
}

// FileResult is one matching file.
type FileResult struct {
	ObjID           int64  `json:"obj_id"`
	DataSourceObjID int64  `json:"data_source_obj_id"`
	Name            string `json:"name"`
	ParentPath      string `json:"parent_path"`
	Size            int64  `json:"size"`
	MimeType        string `json:"mime_type,omitempty"`
	MD5Hash         string `json:"md5_hash,omitempty"`
	Frequency       string `json:"frequency,omitempty"`
}

// DataSourceResponse is one registered evidence source.
type DataSourceResponse struct {
	ObjID int64  `json:"obj_id"`
	Name  string `json:"name"`
}

// IngestFileRequest catalogs one file with optional keyword hits.
type IngestFileRequest struct {
	DataSourceObjID int64        `json:"data_source_obj_id"`
	Name            string       `json:"name"`
	ParentPath      string       `json:"parent_path"`
	Size            int64        `json:"size"`
	MimeType        string       `json:"mime_type,omitempty"`
	MD5Hash         string       `json:"md5_hash,omitempty"`
	KeywordHits     []KeywordHit `json:"keyword_hits,omitempty"`
}

// KeywordHit is one keyword found in a file, attributed to a list.
type KeywordHit struct {
	ListName string `json:"list_name"`
	Keyword  string `json:"keyword"`
}

// RecordOccurrenceRequest marks a hash as observed by a (case, data source)
// pair.
type RecordOccurrenceRequest struct {
	MD5Hash      string `json:"md5_hash"`
	CaseID       string `json:"case_id"`
	DataSourceID string `json:"data_source_id"`
}

// buildFilters converts the selections into domain filters. Group order is
// fixed; within a group the caller's value order is preserved.
func buildFilters(sel FilterSelections, enrichmentWorkers int) ([]filter.Filter, error) {
	var filters []filter.Filter

	if len(sel.SizeRanges) > 0 {
		ranges := make([]casefile.SizeRange, 0, len(sel.SizeRanges))
		for _, sr := range sel.SizeRanges {
			r, err := casefile.NewSizeRange(sr.MinBytes, sr.MaxBytes)
			if err != nil {
				return nil, fmt.Errorf("size range: %w", err)
			}
			ranges = append(ranges, r)
		}
		f, err := filter.NewSize(ranges)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	if len(sel.ParentPaths) > 0 {
		terms := make([]filter.ParentSearchTerm, 0, len(sel.ParentPaths))
		for _, p := range sel.ParentPaths {
			t, err := filter.NewParentSearchTerm(p.Term, p.Exact)
			if err != nil {
				return nil, fmt.Errorf("parent path: %w", err)
			}
			terms = append(terms, t)
		}
		f, err := filter.NewParentPath(terms)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	if len(sel.DataSources) > 0 {
		sources := make([]casefile.DataSource, 0, len(sel.DataSources))
		for _, d := range sel.DataSources {
			ds, err := casefile.NewDataSource(d.ObjID, d.Name)
			if err != nil {
				return nil, fmt.Errorf("data source: %w", err)
			}
			sources = append(sources, ds)
		}
		f, err := filter.NewDataSource(sources)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	if len(sel.KeywordLists) > 0 {
		f, err := filter.NewKeywordList(sel.KeywordLists)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	if len(sel.FileTypes) > 0 {
		cats := make([]casefile.Category, 0, len(sel.FileTypes))
		for _, s := range sel.FileTypes {
			c, err := casefile.ParseCategory(s)
			if err != nil {
				return nil, err
			}
			cats = append(cats, c)
		}
		f, err := filter.NewFileType(cats)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	if len(sel.Frequencies) > 0 {
		buckets := make([]casefile.Frequency, 0, len(sel.Frequencies))
		for _, s := range sel.Frequencies {
			b, err := casefile.ParseFrequency(s)
			if err != nil {
				return nil, err
			}
			buckets = append(buckets, b)
		}
		f, err := filter.NewFrequency(buckets)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f.WithLookupLimit(enrichmentWorkers))
	}

	return filters, nil
}

// fileToResult converts a result file into its API shape. The unknown bucket
// is rendered as absent: it means "never evaluated", not a real finding.
func fileToResult(rf *result.File) FileResult {
	f := rf.CaseFile()
	out := FileResult{
		ObjID:           f.ObjID,
		DataSourceObjID: f.DataSourceObjID,
		Name:            f.Name,
		ParentPath:      f.ParentPath,
		Size:            f.Size,
		MimeType:        f.MimeType,
		MD5Hash:         f.MD5Hash,
	}
	if rf.Frequency() != casefile.FrequencyUnknown {
		out.Frequency = rf.Frequency().String()
	}
	return out
}
