package files

import "strings"

// Category is the display classification of a stored file.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryMedia    Category = "media"
	CategoryDocument Category = "document"
)

var imageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "webp": {}, "svg": {}, "tiff": {},
}

var mediaExtensions = map[string]struct{}{
	"mp4": {}, "mov": {}, "avi": {}, "mkv": {}, "mp3": {}, "ogg": {}, "wav": {}, "flac": {}, "aac": {},
}

// Classify derives a category from an optional mime type and file name.
// The mime prefix wins over the extension; anything unknown is a document.
func Classify(mimeType, fileName string) Category {
	switch {
	case strings.HasPrefix(mimeType, "image"):
		return CategoryImage
	case strings.HasPrefix(mimeType, "video"), strings.HasPrefix(mimeType, "audio"):
		return CategoryMedia
	}

	ext := extension(fileName)
	if _, ok := imageExtensions[ext]; ok {
		return CategoryImage
	}
	if _, ok := mediaExtensions[ext]; ok {
		return CategoryMedia
	}
	return CategoryDocument
}

// Title returns the category name with an upper-case first letter.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func extension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(fileName[idx+1:])
}
