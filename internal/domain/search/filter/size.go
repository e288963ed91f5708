package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casevault/filesift/internal/domain/casefile"
)

// Size matches files whose byte size falls in any of the given ranges.
type Size struct {
	bulkOnly
	ranges []casefile.SizeRange
}

// NewSize validates and creates a Size filter.
func NewSize(ranges []casefile.SizeRange) (Size, error) {
	if len(ranges) == 0 {
		return Size{}, fmt.Errorf("size filter requires at least one range")
	}
	return Size{ranges: append([]casefile.SizeRange(nil), ranges...)}, nil
}

func (f Size) WhereClause() string {
	var sb strings.Builder
	for i, r := range f.ranges {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		if r.Unbounded() {
			sb.WriteString("(size >= '" + strconv.FormatInt(r.MinBytes(), 10) + "')")
		} else {
			sb.WriteString("(size > '" + strconv.FormatInt(r.MinBytes(), 10) +
				"' AND size <= '" + strconv.FormatInt(r.MaxBytes(), 10) + "')")
		}
	}
	return sb.String()
}

func (f Size) Describe() string {
	parts := make([]string, 0, len(f.ranges))
	for _, r := range f.ranges {
		parts = append(parts, r.String())
	}
	return "Files with size in range(s): " + joinOr(parts)
}
