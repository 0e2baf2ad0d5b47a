package media

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=media.go -destination=mocks/mock.go
type Fetcher interface {
	// Download streams url into dest and returns the number of bytes written.
	// A non-200 response or an empty body is an error.
	Download(ctx context.Context, url, dest string) (int64, error)

	// Exists probes url and reports whether it answers 200.
	Exists(ctx context.Context, url string) bool

	// Remux merges a video and an audio file into out without re-encoding.
	Remux(ctx context.Context, videoPath, audioPath, out string) error
}
