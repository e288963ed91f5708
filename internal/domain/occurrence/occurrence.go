// Package occurrence holds the domain model of the cross-case occurrence
// (reputation) repository: correlation attribute types and their identifiers.
package occurrence

// FilesTypeID is the correlation type id under which file content hashes are
// recorded in the occurrence repository.
const FilesTypeID int64 = 0

// AttributeType identifies one correlatable attribute kind (file hash, and
// in future domains, email, phone, ...) in the occurrence repository.
type AttributeType struct {
	ID   int64
	Name string
}
