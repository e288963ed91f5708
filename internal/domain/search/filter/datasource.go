package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casevault/filesift/internal/domain/casefile"
)

// DataSource matches files belonging to any of the given data sources.
type DataSource struct {
	bulkOnly
	sources []casefile.DataSource
}

// NewDataSource validates and creates a DataSource filter.
func NewDataSource(sources []casefile.DataSource) (DataSource, error) {
	if len(sources) == 0 {
		return DataSource{}, fmt.Errorf("data source filter requires at least one source")
	}
	return DataSource{sources: append([]casefile.DataSource(nil), sources...)}, nil
}

func (f DataSource) WhereClause() string {
	ids := make([]string, 0, len(f.sources))
	for _, ds := range f.sources {
		ids = append(ids, "'"+strconv.FormatInt(ds.ObjID(), 10)+"'")
	}
	return "data_source_obj_id IN (" + strings.Join(ids, ",") + ")"
}

func (f DataSource) Describe() string {
	parts := make([]string, 0, len(f.sources))
	for _, ds := range f.sources {
		parts = append(parts, ds.String())
	}
	return "Files in data source(s): " + joinOr(parts)
}
