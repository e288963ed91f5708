package casefile

import "fmt"

// Frequency classifies how often a file's content hash has been observed
// across known cases and data sources.
type Frequency string

// Frequency buckets, from rarest to most widespread. FrequencyUnknown marks
// a file whose hash was never evaluated (or is missing).
const (
	FrequencyUnique  Frequency = "unique"
	FrequencyRare    Frequency = "rare"
	FrequencyCommon  Frequency = "common"
	FrequencyUnknown Frequency = "unknown"
)

// Count boundaries for the frequency buckets. A count of zero means the hash
// has never been seen outside the current case.
const (
	rareMaxCount = 5
)

// FrequencyFromCount maps a distinct (case, data source) occurrence count to
// its bucket.
func FrequencyFromCount(count int64) Frequency {
	switch {
	case count <= 0:
		return FrequencyUnique
	case count <= rareMaxCount:
		return FrequencyRare
	default:
		return FrequencyCommon
	}
}

// ParseFrequency converts a string into a Frequency bucket.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case FrequencyUnique, FrequencyRare, FrequencyCommon, FrequencyUnknown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown frequency bucket %q", s)
	}
}

func (f Frequency) String() string { return string(f) }
