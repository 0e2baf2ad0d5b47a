package mediaimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
)

// Download streams url into dest through a ".part" file so an interrupted
// transfer never leaves a complete-looking file behind.
func (m *MediaImpl) Download(ctx context.Context, url, dest string) (int64, error) {
	if err := m.gate.Wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer safeClose(resp.Body, m)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", part, err)
	}

	n, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(part)
		if copyErr != nil {
			return 0, fmt.Errorf("failed to write %s: %w", dest, copyErr)
		}
		return 0, fmt.Errorf("failed to close %s: %w", dest, closeErr)
	}
	if n == 0 {
		_ = os.Remove(part)
		return 0, fmt.Errorf("empty body from %s", url)
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return 0, fmt.Errorf("failed to finalize %s: %w", dest, err)
	}

	m.logger.Info("Downloaded media", "url", url, "size", humanize.Bytes(uint64(n)))
	return n, nil
}

// Exists issues a HEAD request; any error counts as a miss.
func (m *MediaImpl) Exists(ctx context.Context, url string) bool {
	if err := m.gate.Wait(ctx); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.http.Do(req)
	if err != nil {
		m.logger.Debug("Probe failed", "url", url, "error", err)
		return false
	}
	defer safeClose(resp.Body, m)

	m.logger.Debug("Probed media", "url", url, "status", resp.StatusCode)
	return resp.StatusCode == http.StatusOK
}

func safeClose(closer io.Closer, m *MediaImpl) {
	if err := closer.Close(); err != nil {
		m.logger.Error("Error closing response body", "error", err)
	}
}
