package skillmap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Source produces a fully loaded lookup table.
type Source interface {
	Load(ctx context.Context) (Table, error)
}

// NewSource picks an HTTP or file source from location.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location, Client: client}
	}
	return &FileSource{Path: location}
}

// FileSource reads the table from disk; a .xlsx extension selects the
// workbook parser.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) (Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open skill map %s: %w", s.Path, err)
	}
	defer f.Close()

	return parseFor(s.Path, f)
}

// HTTPSource fetches the table with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) (Table, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Table{}, fmt.Errorf("failed to build skill map request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Table{}, fmt.Errorf("failed to fetch skill map: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return Table{}, fmt.Errorf("failed to fetch skill map: status %d", resp.StatusCode)
	}

	name := s.URL
	if u, err := url.Parse(s.URL); err == nil {
		name = u.Path
	}
	return parseFor(name, resp.Body)
}

// StaticSource serves a table that is already in memory.
type StaticSource struct {
	Table Table
}

func (s StaticSource) Load(ctx context.Context) (Table, error) {
	return s.Table, nil
}

func parseFor(name string, r io.Reader) (Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return ParseXLSX(r)
	}
	return ParseCSV(r)
}

// LoadOrEmpty loads the table and degrades to an empty one on failure, so that
// resolution falls back to the raw skill name.
func LoadOrEmpty(ctx context.Context, src Source, logger *slog.Logger) Table {
	if src == nil {
		return Table{}
	}
	table, err := src.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Skill map unavailable, resolving skills by name", "error", err)
		return Table{}
	}
	return table
}
