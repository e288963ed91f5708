// Package casefile holds the catalog-side domain model: the file entity and
// the value objects search criteria are expressed in.
package casefile

// CaseFile is one catalogued file in a case. It is owned by the case catalog;
// the search engine reads identifying attributes and never mutates it.
type CaseFile struct {
	ObjID           int64
	DataSourceObjID int64
	Name            string
	ParentPath      string
	Size            int64
	MimeType        string
	MD5Hash         string
}

// HasHash reports whether the file carries a usable content hash.
func (f *CaseFile) HasHash() bool {
	return f != nil && f.MD5Hash != ""
}
