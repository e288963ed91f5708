// Package version carries the build identity of a filesift binary. Release
// builds stamp these through -ldflags; plain go build keeps the defaults.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
