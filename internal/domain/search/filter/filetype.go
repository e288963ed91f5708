package filter

import (
	"fmt"
	"strings"

	"github.com/casevault/filesift/internal/domain/casefile"
)

// FileType matches files whose media type belongs to any of the given
// categories.
type FileType struct {
	bulkOnly
	categories []casefile.Category
}

// NewFileType validates and creates a FileType filter.
func NewFileType(categories []casefile.Category) (FileType, error) {
	if len(categories) == 0 {
		return FileType{}, fmt.Errorf("file type filter requires at least one category")
	}
	for _, c := range categories {
		if len(c.MediaTypes()) == 0 {
			return FileType{}, fmt.Errorf("unknown file type category %q", c)
		}
	}
	return FileType{categories: append([]casefile.Category(nil), categories...)}, nil
}

// WhereClause expands each category into its concrete media types and builds
// one membership test over all of them.
func (f FileType) WhereClause() string {
	var types []string
	for _, c := range f.categories {
		for _, mt := range c.MediaTypes() {
			types = append(types, sqlLiteral(mt))
		}
	}
	return "mime_type IN (" + strings.Join(types, ",") + ")"
}

func (f FileType) Describe() string {
	parts := make([]string, 0, len(f.categories))
	for _, c := range f.categories {
		parts = append(parts, c.String())
	}
	return "Files with type: " + joinOr(parts)
}
