package filter

import (
	"fmt"
	"strings"
)

// KeywordList matches files that produced a keyword hit from any of the
// given keyword lists.
type KeywordList struct {
	bulkOnly
	listNames []string
}

// NewKeywordList validates and creates a KeywordList filter.
func NewKeywordList(listNames []string) (KeywordList, error) {
	if len(listNames) == 0 {
		return KeywordList{}, fmt.Errorf("keyword list filter requires at least one list name")
	}
	for _, name := range listNames {
		if name == "" {
			return KeywordList{}, fmt.Errorf("keyword list name must not be empty")
		}
	}
	return KeywordList{listNames: append([]string(nil), listNames...)}, nil
}

// WhereClause renders a nested existence check against keyword hit rows:
// hits are recorded per file and keyed by the list that produced them.
func (f KeywordList) WhereClause() string {
	var lists strings.Builder
	for i, name := range f.listNames {
		if i > 0 {
			lists.WriteString(" OR ")
		}
		lists.WriteString("list_name = " + sqlLiteral(name))
	}
	return "(obj_id IN (SELECT file_obj_id FROM keyword_hits WHERE " + lists.String() + "))"
}

func (f KeywordList) Describe() string {
	return "Files with keywords in list(s): " + strings.Join(f.listNames, ", ")
}
