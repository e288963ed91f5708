package filter

import (
	"strings"
	"testing"

	"github.com/casevault/filesift/internal/domain/casefile"
)

func mustSizeRange(t *testing.T, min, max int64) casefile.SizeRange {
	t.Helper()
	r, err := casefile.NewSizeRange(min, max)
	if err != nil {
		t.Fatalf("NewSizeRange(%d, %d): %v", min, max, err)
	}
	return r
}

func mustDataSource(t *testing.T, id int64, name string) casefile.DataSource {
	t.Helper()
	ds, err := casefile.NewDataSource(id, name)
	if err != nil {
		t.Fatalf("NewDataSource(%d, %q): %v", id, name, err)
	}
	return ds
}

func TestSize_WhereClause(t *testing.T) {
	tests := []struct {
		name   string
		ranges []casefile.SizeRange
		want   string
	}{
		{
			name:   "bounded range",
			ranges: []casefile.SizeRange{mustSizeRange(t, 1024, 1048576)},
			want:   "(size > '1024' AND size <= '1048576')",
		},
		{
			name:   "unbounded range",
			ranges: []casefile.SizeRange{mustSizeRange(t, 1073741824, casefile.NoMaximum)},
			want:   "(size >= '1073741824')",
		},
		{
			name: "ranges are OR-joined",
			ranges: []casefile.SizeRange{
				mustSizeRange(t, 0, 1024),
				mustSizeRange(t, 1048576, casefile.NoMaximum),
			},
			want: "(size > '0' AND size <= '1024') OR (size >= '1048576')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewSize(tt.ranges)
			if err != nil {
				t.Fatalf("NewSize: %v", err)
			}
			if got := f.WhereClause(); got != tt.want {
				t.Errorf("WhereClause() = %q, want %q", got, tt.want)
			}
			if f.NeedsAlternate() {
				t.Error("size filter should not need alternate evaluation")
			}
		})
	}
}

func TestNewSize_Empty(t *testing.T) {
	if _, err := NewSize(nil); err == nil {
		t.Error("expected error for empty range list")
	}
}

func TestParentPath_WhereClause(t *testing.T) {
	exact, err := NewParentSearchTerm("/docs/reports/", true)
	if err != nil {
		t.Fatalf("NewParentSearchTerm: %v", err)
	}
	sub, err := NewParentSearchTerm("temp", false)
	if err != nil {
		t.Fatalf("NewParentSearchTerm: %v", err)
	}

	f, err := NewParentPath([]ParentSearchTerm{exact, sub})
	if err != nil {
		t.Fatalf("NewParentPath: %v", err)
	}

	want := "parent_path='/docs/reports/' OR parent_path LIKE '%temp%'"
	if got := f.WhereClause(); got != want {
		t.Errorf("WhereClause() = %q, want %q", got, want)
	}
}

func TestParentSearchTerm_Validation(t *testing.T) {
	if _, err := NewParentSearchTerm("", true); err == nil {
		t.Error("expected error for empty term")
	}
}

func TestParentPath_EscapesQuotes(t *testing.T) {
	term, err := NewParentSearchTerm("/o'brien/", true)
	if err != nil {
		t.Fatalf("NewParentSearchTerm: %v", err)
	}
	f, err := NewParentPath([]ParentSearchTerm{term})
	if err != nil {
		t.Fatalf("NewParentPath: %v", err)
	}
	if got := f.WhereClause(); !strings.Contains(got, "'/o''brien/'") {
		t.Errorf("quote not escaped: %q", got)
	}
}

func TestDataSource_WhereClause(t *testing.T) {
	f, err := NewDataSource([]casefile.DataSource{
		mustDataSource(t, 2, "laptop-image"),
		mustDataSource(t, 5, "usb-stick"),
	})
	if err != nil {
		t.Fatalf("NewDataSource: %v", err)
	}

	want := "data_source_obj_id IN ('2','5')"
	if got := f.WhereClause(); got != want {
		t.Errorf("WhereClause() = %q, want %q", got, want)
	}
}

func TestKeywordList_WhereClause(t *testing.T) {
	f, err := NewKeywordList([]string{"pii", "account numbers"})
	if err != nil {
		t.Fatalf("NewKeywordList: %v", err)
	}

	want := "(obj_id IN (SELECT file_obj_id FROM keyword_hits WHERE " +
		"list_name = 'pii' OR list_name = 'account numbers'))"
	if got := f.WhereClause(); got != want {
		t.Errorf("WhereClause() = %q, want %q", got, want)
	}
}

func TestFileType_WhereClause(t *testing.T) {
	f, err := NewFileType([]casefile.Category{casefile.CategoryImage})
	if err != nil {
		t.Fatalf("NewFileType: %v", err)
	}

	got := f.WhereClause()
	if !strings.HasPrefix(got, "mime_type IN (") {
		t.Fatalf("WhereClause() = %q", got)
	}
	for _, mt := range casefile.CategoryImage.MediaTypes() {
		if !strings.Contains(got, "'"+mt+"'") {
			t.Errorf("WhereClause() missing media type %q: %q", mt, got)
		}
	}
}

func TestNewFileType_UnknownCategory(t *testing.T) {
	if _, err := NewFileType([]casefile.Category{"spreadsheet"}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestDescribe(t *testing.T) {
	sizeF, _ := NewSize([]casefile.SizeRange{
		mustSizeRange(t, 1024, 1048576),
		mustSizeRange(t, 1073741824, casefile.NoMaximum),
	})
	kwF, _ := NewKeywordList([]string{"pii", "exports"})
	freqF, _ := NewFrequency([]casefile.Frequency{casefile.FrequencyUnique, casefile.FrequencyRare})

	tests := []struct {
		name string
		f    Filter
		want string
	}{
		{
			name: "size ranges joined with or",
			f:    sizeF,
			want: "Files with size in range(s): (1024 to 1048576) or (1073741824 and above)",
		},
		{
			name: "keyword lists joined with comma",
			f:    kwF,
			want: "Files with keywords in list(s): pii, exports",
		},
		{
			name: "frequency buckets joined with or",
			f:    freqF,
			want: "Files with frequency: unique or rare",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
