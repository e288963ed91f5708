package casefile

import "fmt"

// Category is a broad file type grouping. Each category expands to the
// concrete media types the catalog records for its members.
type Category string

// The fixed set of categories.
const (
	CategoryImage      Category = "image"
	CategoryVideo      Category = "video"
	CategoryAudio      Category = "audio"
	CategoryDocument   Category = "document"
	CategoryExecutable Category = "executable"
)

var categoryMediaTypes = map[Category][]string{
	CategoryImage: {
		"image/jpeg", "image/png", "image/gif", "image/bmp",
		"image/tiff", "image/webp",
	},
	CategoryVideo: {
		"video/mp4", "video/quicktime", "video/x-msvideo",
		"video/x-matroska", "video/webm", "video/mpeg",
	},
	CategoryAudio: {
		"audio/mpeg", "audio/wav", "audio/flac", "audio/aac", "audio/ogg",
	},
	CategoryDocument: {
		"application/pdf", "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"text/plain", "text/html", "application/rtf",
	},
	CategoryExecutable: {
		"application/x-dosexec", "application/x-executable",
		"application/x-sharedlib", "application/x-mach-binary",
	},
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryMediaTypes[c]; !ok {
		return "", fmt.Errorf("unknown file type category %q", s)
	}
	return c, nil
}

// MediaTypes returns the concrete media type strings for the category, in a
// stable order. Unknown categories return nil.
func (c Category) MediaTypes() []string {
	return categoryMediaTypes[c]
}

func (c Category) String() string { return string(c) }
