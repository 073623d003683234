package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a snapshot file encoding.
type Format string

const (
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTOML       Format = "toml"
	FormatObfuscated Format = "obf" // base64 XOR-obfuscated JSON
)

// String implements fmt.Stringer.
func (f Format) String() string { return string(f) }

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".obf":
		return FormatObfuscated, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}
