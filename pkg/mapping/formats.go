package mapping

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the on-disk encodings of a mapping file
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // indented UTF-8 JSON object
	FormatMsgpack            // msgpack map
)

var ErrUnknownFormat = errors.New("mapping: unknown file format")

// FormatInfo contains metadata about a mapping file format
type FormatInfo struct {
	Format      FileFormat
	Name        string
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Name:        "json",
		Description: "JSON Mapping",
		Extensions:  []string{".json"},
		MinSize:     2, // {}
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Name:        "msgpack",
		Description: "Msgpack Mapping",
		Extensions:  []string{".msgpack", ".mp"},
		MinSize:     1, // fixmap header
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return "unknown"
}

// Ext returns the default file extension of the format.
func (f FileFormat) Ext() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Extensions[0]
	}
	return ""
}

// ParseFormat maps a config / flag value to a format.
func ParseFormat(name string) (FileFormat, error) {
	for format, info := range supportedFormats {
		if strings.EqualFold(name, info.Name) {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ValidateFile checks if a file matches the expected format
func ValidateFile(filename string, expected FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expected]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expected)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expected == FormatJSON {
		return validateJSONHeader(filename)
	}
	return nil
}

// validateJSONHeader checks that the first non-space byte opens an object
func validateJSONHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return fmt.Errorf("failed to read from %s: %w", filename, err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			log.Debugf("JSON file %s validated", filename)
			return nil
		default:
			return fmt.Errorf("file %s does not start with a JSON object", filename)
		}
	}
}

// DetectFormat infers the format from the file name and validates the file
func DetectFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e != ext {
				continue
			}
			if err := ValidateFile(filename, format); err != nil {
				return FormatUnknown, err
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnknownFormat, filename)
}
