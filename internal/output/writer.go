// Package output handles manifest serialization and output destinations.
package output

import (
	"fmt"
	"io"
	"os"
)

// Format represents manifest output formats.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer serializes manifest entries.
type Writer interface {
	// Write buffers a single item.
	Write(data any) error

	// WriteAll buffers multiple items.
	WriteAll(data []any) error

	// Flush writes all buffered data.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// nopWriteCloser wraps stdout so callers can Close destinations
// uniformly without closing the process's stdout.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Destination opens path for writing, or wraps stdout when path is
// empty.
func Destination(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}
