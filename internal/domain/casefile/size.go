package casefile

import "fmt"

// NoMaximum marks a size range with no upper bound.
const NoMaximum int64 = -1

// Byte multiples used by the named size presets.
const (
	kiloByte int64 = 1024
	megaByte       = 1024 * kiloByte
	gigaByte       = 1024 * megaByte
)

// SizeRange is a half-open byte range (min, max]. A range with Max set to
// NoMaximum matches everything strictly above Min.
type SizeRange struct {
	min int64
	max int64
}

// NewSizeRange validates and creates a SizeRange.
func NewSizeRange(minBytes, maxBytes int64) (SizeRange, error) {
	if minBytes < 0 {
		return SizeRange{}, fmt.Errorf("minimum size must be non-negative, got %d", minBytes)
	}
	if maxBytes != NoMaximum && maxBytes <= minBytes {
		return SizeRange{}, fmt.Errorf("maximum size %d must exceed minimum %d", maxBytes, minBytes)
	}
	return SizeRange{min: minBytes, max: maxBytes}, nil
}

// MinBytes returns the exclusive lower bound.
func (r SizeRange) MinBytes() int64 { return r.min }

// MaxBytes returns the inclusive upper bound, or NoMaximum.
func (r SizeRange) MaxBytes() int64 { return r.max }

// Unbounded reports whether the range has no upper bound.
func (r SizeRange) Unbounded() bool { return r.max == NoMaximum }

func (r SizeRange) String() string {
	if r.Unbounded() {
		return fmt.Sprintf("(%d and above)", r.min)
	}
	return fmt.Sprintf("(%d to %d)", r.min, r.max)
}

// Named size presets offered by interactive callers.
var (
	SizeXSmall = SizeRange{min: 0, max: 16 * kiloByte}
	SizeSmall  = SizeRange{min: 16 * kiloByte, max: megaByte}
	SizeMedium = SizeRange{min: megaByte, max: 64 * megaByte}
	SizeLarge  = SizeRange{min: 64 * megaByte, max: gigaByte}
	SizeXLarge = SizeRange{min: gigaByte, max: NoMaximum}
)
