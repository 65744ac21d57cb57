package fileloader

import (
	"strings"
)

// compressionExtensions maps compression extensions to their CompressionType
var compressionExtensions = map[string]CompressionType{
	".gz":  CompressionGzip,
	".bz2": CompressionBzip2,
	".xz":  CompressionXZ,
}

// DetectFileType determines the file type from the extension, ignoring any
// compression suffix. Unknown extensions are treated as CSV, which is what a
// plain paragraph-per-line text file parses as.
func DetectFileType(filePath string) FileType {
	if filePath == "" {
		return FileTypeUnknown
	}
	ft, _ := detectFromName(filePath)
	return ft
}

// DetectFileTypeAndCompression determines both the inner file type and the
// compression type. Compression is detected from the extension first and from
// the leading bytes of data when the name carries no compression suffix.
func DetectFileTypeAndCompression(filePath string, data []byte) (FileType, CompressionType) {
	if filePath == "" {
		return FileTypeUnknown, CompressionNone
	}

	fileType, compression := detectFromName(filePath)
	if compression != CompressionNone {
		return fileType, compression
	}

	// No compression suffix, so sniff the content
	return fileType, DetectCompressionByMagic(data)
}

// detectFromName strips a compression suffix and maps the remaining extension
func detectFromName(filePath string) (FileType, CompressionType) {
	lower := strings.ToLower(filePath)

	compression := CompressionNone
	for ext, ct := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			compression = ct
			lower = strings.TrimSuffix(lower, ext)
			break
		}
	}

	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return FileTypeXLSX, compression
	case strings.HasSuffix(lower, ".json"), strings.HasSuffix(lower, ".jsonl"), strings.HasSuffix(lower, ".ndjson"):
		return FileTypeJSON, compression
	default:
		return FileTypeCSV, compression
	}
}

// GetUncompressedExtension returns the file extension without compression suffix
// e.g., "data.csv.gz" -> ".csv", "data.json.bz2" -> ".json"
func GetUncompressedExtension(filePath string) string {
	lower := strings.ToLower(filePath)

	for ext := range compressionExtensions {
		if strings.HasSuffix(lower, ext) {
			lower = strings.TrimSuffix(lower, ext)
			break
		}
	}

	lastDot := strings.LastIndex(lower, ".")
	if lastDot == -1 || strings.ContainsAny(lower[lastDot:], `/\`) {
		return ""
	}
	return lower[lastDot:]
}
