package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/archetype-tools/proteusview/internal/model"
)

// Parser decodes a serialized Proteus document into the model.
type Parser interface {
	Parse(r io.Reader) (*model.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".xml":  true,
	".json": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return &XMLParser{}, nil
	case ".json":
		return &JSONParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// ForContentType returns the parser matching an HTTP content type.
func ForContentType(contentType string) (Parser, error) {
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	switch mediaType {
	case "application/xml", "text/xml":
		return &XMLParser{}, nil
	case "application/json":
		return &JSONParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported content type: %s", mediaType)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
