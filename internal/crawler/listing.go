package crawler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// ListingSource provides the listing document the links are collected from
type ListingSource interface {
	HTML(ctx context.Context) (string, error)
	// BaseURL resolves relative detail links
	BaseURL() *url.URL
}

// FileListing is a listing page saved to disk
type FileListing struct {
	path string
	base *url.URL
}

// NewFileListing creates a FileListing. base is the page's original URL; when empty
// links resolve against the file location.
func NewFileListing(path, base string) (*FileListing, error) {
	var u *url.URL
	if base != "" {
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid listing base URL: %w", err)
		}
		u = parsed
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		u = &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	}
	return &FileListing{path: path, base: u}, nil
}

func (f *FileListing) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to read listing file: %w", err)
	}
	return string(data), nil
}

func (f *FileListing) BaseURL() *url.URL {
	return f.base
}
