package constants

import "strings"

// Document formats accepted by the extraction pipeline.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// MediaTypePDF is the only media type accepted by the PDF endpoint.
const MediaTypePDF = "application/pdf"

// AllowedExtensions holds the file extensions accepted by batch ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"bmp":  {},
	"tif":  {},
	"tiff": {},
	"webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a document format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	ext = NormalizeExt(ext)
	if ext == "pdf" {
		return PDF
	}
	if _, ok := AllowedExtensions[ext]; ok {
		return IMAGE
	}
	return ""
}

// IsImageMediaType reports whether a declared media type is image/*.
func IsImageMediaType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

// IsPDFMediaType reports whether a declared media type is application/pdf.
func IsPDFMediaType(mediaType string) bool {
	return mediaType == MediaTypePDF ||
		strings.HasPrefix(mediaType, MediaTypePDF+";")
}

// MediaTypeForExt returns the media type implied by a file extension,
// used by the batch CLI where no upload header exists.
func MediaTypeForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return MediaTypePDF
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}
