// Package result holds the per-invocation wrapper around catalog files.
package result

import "github.com/casevault/filesift/internal/domain/casefile"

// File wraps one candidate returned by the bulk catalog query, plus
// enrichment attributes computed by later pipeline stages. The underlying
// CaseFile stays owned by the catalog; only the enrichment fields mutate,
// each at most once per invocation.
type File struct {
	file      *casefile.CaseFile
	frequency casefile.Frequency
}

// New wraps a catalog file. Frequency starts unknown.
func New(f *casefile.CaseFile) *File {
	return &File{file: f, frequency: casefile.FrequencyUnknown}
}

// CaseFile returns the wrapped catalog file.
func (r *File) CaseFile() *casefile.CaseFile { return r.file }

// Frequency returns the occurrence frequency bucket, FrequencyUnknown until
// an enrichment stage sets it.
func (r *File) Frequency() casefile.Frequency { return r.frequency }

// SetFrequency records the computed occurrence bucket.
func (r *File) SetFrequency(f casefile.Frequency) { r.frequency = f }

// Wrap converts a batch of catalog files preserving order.
func Wrap(files []*casefile.CaseFile) []*File {
	out := make([]*File, 0, len(files))
	for _, f := range files {
		out = append(out, New(f))
	}
	return out
}
