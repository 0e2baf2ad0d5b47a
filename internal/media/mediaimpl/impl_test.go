package mediaimpl

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/ratelimit"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
)

func newTestImpl(ffmpeg string) *MediaImpl {
	return &MediaImpl{
		http:       &http.Client{Timeout: 5 * time.Second},
		gate:       ratelimit.NewGate(0),
		logger:     logger.New(logger.Opts{Writer: io.Discard}),
		userAgent:  "test-agent",
		ffmpegPath: ffmpeg,
	}
}

func newMediaServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/DASH_720.mp4", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("video-bytes"))
	})
	mux.HandleFunc("/empty.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownload(t *testing.T) {
	srv := newMediaServer(t)
	m := newTestImpl("ffmpeg")
	dest := filepath.Join(t.TempDir(), "media_video.mp4")

	n, err := m.Download(context.Background(), srv.URL+"/DASH_720.mp4", dest)
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if n != int64(len("video-bytes")) {
		t.Fatalf("n = %d", n)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "video-bytes" {
		t.Fatalf("file = %q", data)
	}
	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Fatal(".part file left behind")
	}
}

func TestDownloadFailures(t *testing.T) {
	srv := newMediaServer(t)
	m := newTestImpl("ffmpeg")
	dir := t.TempDir()

	for _, path := range []string{"/missing.mp4", "/empty.jpg"} {
		dest := filepath.Join(dir, filepath.Base(path))
		if _, err := m.Download(context.Background(), srv.URL+path, dest); err == nil {
			t.Errorf("Download(%s) should fail", path)
		}
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Errorf("Download(%s) left a file behind", path)
		}
	}
}

func TestExists(t *testing.T) {
	srv := newMediaServer(t)
	m := newTestImpl("ffmpeg")

	if !m.Exists(context.Background(), srv.URL+"/DASH_720.mp4") {
		t.Fatal("existing url reported missing")
	}
	if m.Exists(context.Background(), srv.URL+"/DASH_1080.mp4") {
		t.Fatal("missing url reported present")
	}
	if m.Exists(context.Background(), "http://127.0.0.1:0/nothing") {
		t.Fatal("unreachable url reported present")
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRemux(t *testing.T) {
	script := writeScript(t, `for last; do :; done; echo merged > "$last"`)
	m := newTestImpl(script)
	out := filepath.Join(t.TempDir(), "merged_video.mp4")

	if err := m.Remux(context.Background(), "v.mp4", "a.mp4", out); err != nil {
		t.Fatalf("Remux error: %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) != "merged\n" {
		t.Fatalf("out = %q", data)
	}
}

func TestRemuxFailures(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged_video.mp4")

	failing := newTestImpl(writeScript(t, `echo "Invalid data found" >&2; exit 1`))
	if err := failing.Remux(context.Background(), "v.mp4", "a.mp4", out); err == nil {
		t.Fatal("nonzero exit should fail")
	}

	silent := newTestImpl(writeScript(t, `exit 0`))
	if err := silent.Remux(context.Background(), "v.mp4", "a.mp4", out); err == nil {
		t.Fatal("missing output should fail")
	}

	missing := newTestImpl(filepath.Join(t.TempDir(), "no-such-binary"))
	if err := missing.Remux(context.Background(), "v.mp4", "a.mp4", out); err == nil {
		t.Fatal("missing binary should fail")
	}
}
