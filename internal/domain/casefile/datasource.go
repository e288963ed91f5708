package casefile

import "fmt"

// DataSource identifies one evidence source (disk image, logical file set)
// attached to a case.
type DataSource struct {
	objID int64
	name  string
}

// NewDataSource validates and creates a DataSource reference.
func NewDataSource(objID int64, name string) (DataSource, error) {
	if objID <= 0 {
		return DataSource{}, fmt.Errorf("data source id must be positive, got %d", objID)
	}
	return DataSource{objID: objID, name: name}, nil
}

// ObjID returns the catalog object id of the source.
func (d DataSource) ObjID() int64 { return d.objID }

// Name returns the display name of the source.
func (d DataSource) Name() string { return d.name }

func (d DataSource) String() string {
	return fmt.Sprintf("%s(%d)", d.name, d.objID)
}
