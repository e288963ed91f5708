package filesift

import (
	"context"
	"errors"
	"testing"

	"github.com/casevault/filesift/internal/domain"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(WithCatalog(":memory:"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func seedCase(t *testing.T, c *Client) int64 {
	t.Helper()
	ctx := context.Background()

	dsID, err := c.AddDataSource(ctx, "laptop-image")
	if err != nil {
		t.Fatalf("add data source: %v", err)
	}

	files := []File{
		{DataSourceObjID: dsID, Name: "photo.jpg", ParentPath: "/dcim/camera/", Size: 2048, MimeType: "image/jpeg", MD5Hash: "a1"},
		{DataSourceObjID: dsID, Name: "clip.mp4", ParentPath: "/dcim/camera/", Size: 5 << 20, MimeType: "video/mp4", MD5Hash: "b2"},
		{DataSourceObjID: dsID, Name: "notes.txt", ParentPath: "/documents/", Size: 128, MimeType: "text/plain"},
	}
	for i, f := range files {
		var hits []KeywordHit
		if f.Name == "notes.txt" {
			hits = append(hits, KeywordHit{ListName: "pii", Keyword: "ssn"})
		}
		if _, err := c.AddFile(ctx, f, hits...); err != nil {
			t.Fatalf("add file %d: %v", i, err)
		}
	}
	return dsID
}

func TestClient_SearchBySizeAndType(t *testing.T) {
	c := newTestClient(t)
	seedCase(t, c)

	files, err := c.Search().
		SizeBetween(1024, 10<<20).
		OfType("image", "video").
		Do(context.Background())
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("result count: got %d, want 2", len(files))
	}
	if files[0].Name != "photo.jpg" || files[1].Name != "clip.mp4" {
		t.Errorf("unexpected result order: %q, %q", files[0].Name, files[1].Name)
	}
}

func TestClient_SearchByPathAndKeywordList(t *testing.T) {
	c := newTestClient(t)
	seedCase(t, c)

	files, err := c.Search().
		UnderPath("documents").
		WithKeywordsIn("pii").
		Do(context.Background())
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(files) != 1 || files[0].Name != "notes.txt" {
		t.Fatalf("unexpected results: %+v", files)
	}
}

func TestClient_SearchByDataSource(t *testing.T) {
	c := newTestClient(t)
	dsID := seedCase(t, c)

	files, err := c.Search().FromDataSources(dsID).Do(context.Background())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("result count: got %d, want 3", len(files))
	}

	files, err = c.Search().FromDataSources(dsID + 1).Do(context.Background())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("foreign source result count: got %d, want 0", len(files))
	}
}

func TestClient_BuilderErrorDeferredToDo(t *testing.T) {
	c := newTestClient(t)
	seedCase(t, c)

	_, err := c.Search().
		OfType("spreadsheet").
		SizeAtLeast(1024).
		Do(context.Background())
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestClient_EmptyQueryRejected(t *testing.T) {
	c := newTestClient(t)
	seedCase(t, c)

	_, err := c.Search().Do(context.Background())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty query: got %v, want ErrInvalidInput", err)
	}
}

func TestClient_FrequencyWithoutStoreMisconfigured(t *testing.T) {
	c := newTestClient(t)
	seedCase(t, c)

	_, err := c.Search().
		SizeAtLeast(0).
		WithFrequency("unique").
		Do(context.Background())
	if !errors.Is(err, domain.ErrMisconfiguredFilter) {
		t.Errorf("frequency without store: got %v, want ErrMisconfiguredFilter", err)
	}
}

func TestClient_RecordOccurrenceWithoutStore(t *testing.T) {
	c := newTestClient(t)

	if err := c.RecordOccurrence(context.Background(), "abc", "case-1", "ds-1"); err == nil {
		t.Fatal("expected error without occurrence store")
	}
}

func TestClient_DataSources(t *testing.T) {
	c := newTestClient(t)
	dsID := seedCase(t, c)

	sources, err := c.DataSources(context.Background())
	if err != nil {
		t.Fatalf("data sources: %v", err)
	}
	if len(sources) != 1 || sources[0].ObjID != dsID || sources[0].Name != "laptop-image" {
		t.Errorf("unexpected sources: %+v", sources)
	}
}

func TestClient_RequiresCatalogPath(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without catalog path")
	}
}
