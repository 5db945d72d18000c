package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pnwcoord/repeater-qa/internal/coordination"
	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// Client fetches the published coordination database extract over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an extract fetcher for the given URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the extract archive and parses every active CSV inside it.
func (c *Client) Fetch(ctx context.Context) ([]domain.Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch extract: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch extract: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read extract body: %w", err)
	}

	channels, err := fromZip(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched extract", "url", c.url, "channels", len(channels))
	return channels, nil
}

// Load reads an extract from disk. Zip archives are walked the same way the
// fetcher walks a downloaded one; a bare .csv is parsed directly.
func Load(path string) ([]domain.Channel, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open extract: %w", err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat extract: %w", err)
		}
		return fromZip(f, info.Size())
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open extract: %w", err)
		}
		defer f.Close()
		return coordination.Parse(f)
	}
}

// fromZip parses every CSV member of the archive, skipping the expiring
// coordination files the extract also ships.
func fromZip(ra io.ReaderAt, size int64) ([]domain.Channel, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var channels []domain.Channel
	for _, member := range zr.File {
		name := member.Name
		if strings.ToLower(filepath.Ext(name)) != ".csv" || strings.Contains(name, "Expire") {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		parsed, err := coordination.Parse(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		channels = append(channels, parsed...)
	}
	return channels, nil
}
