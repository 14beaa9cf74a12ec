package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
)

const (
	jsonExt   = ".json"
	snappyExt = ".json.sz"
)

// Sink stores one encoded export under a name and returns where it went
type Sink interface {
	Name() string
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// encode compresses data with snappy when compress is set and returns the file
// extension to use.
func encode(data []byte, compress bool) ([]byte, string) {
	if !compress {
		return data, jsonExt
	}
	return snappy.Encode(nil, data), snappyExt
}

// decode reverses encode based on the object name
func decode(name string, data []byte) ([]byte, error) {
	if !strings.HasSuffix(name, snappyExt) {
		return data, nil
	}
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	return out, nil
}

// FileSink writes exports into a directory
type FileSink struct {
	Dir      string
	Compress bool
}

// NewFileSink creates a sink writing to dir
func NewFileSink(dir string, compress bool) *FileSink {
	return &FileSink{Dir: dir, Compress: compress}
}

// Name implements Sink
func (s *FileSink) Name() string {
	return "file"
}

// Write implements Sink
func (s *FileSink) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	body, ext := encode(data, s.Compress)
	path := filepath.Join(s.Dir, name+ext)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", path, err)
	}
	return path, nil
}

// ReadFile loads an export written by FileSink, compressed or not
func ReadFile(path string) (*NodeLink, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	data, err := decode(path, raw)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
