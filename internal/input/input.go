package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound marks a reference file path that does not exist.
var ErrNotFound = errors.New("file not found")

// ReadError wraps an I/O failure while reading a reference file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// PlaylistResolver expands a playlist reference into its video URLs.
type PlaylistResolver interface {
	Resolve(ctx context.Context, ref string) ([]string, error)
}

// FromFile reads references from a text file, one per line. Blank lines
// and lines starting with "#" are skipped.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	var refs []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if ref, ok := acceptLine(scanner.Text()); ok {
			refs = append(refs, ref)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	return refs, nil
}

// FromLines filters references out of a newline-separated blob, with
// the same blank-and-comment rules as FromFile.
func FromLines(text string) []string {
	var refs []string
	for _, line := range strings.Split(text, "\n") {
		if ref, ok := acceptLine(line); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// FromURL wraps a single reference into a one-element batch.
func FromURL(ref string) []string {
	return []string{ref}
}

// FromPlaylist expands a playlist reference through the resolver.
func FromPlaylist(ctx context.Context, resolver PlaylistResolver, ref string) ([]string, error) {
	return resolver.Resolve(ctx, ref)
}

func acceptLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	return trimmed, true
}
