package reddit

import (
	"context"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
)

// Source reads the community being mirrored.
//
//go:generate go run go.uber.org/mock/mockgen -source=reddit.go -destination=mocks/mock.go
type Source interface {
	// GetPost fetches one post. A post that no longer exists yields an error
	// matching errors.ErrNotFound.
	GetPost(ctx context.Context, id string) (*domain.Post, error)

	// NewPosts lists the newest posts, newest first.
	NewPosts(ctx context.Context, limit int) ([]domain.Post, error)

	// Rules lists the community rules.
	Rules(ctx context.Context) ([]domain.Rule, error)
}

// Destination writes to the archive community.
type Destination interface {
	NewPosts(ctx context.Context, limit int) ([]domain.Post, error)
	Replies(ctx context.Context, postID string) ([]domain.Reply, error)
	CategoryTemplates(ctx context.Context) ([]domain.CategoryTemplate, error)

	// Submit* create a post and return its id.
	SubmitText(ctx context.Context, title, body string) (string, error)
	SubmitLink(ctx context.Context, title, url string) (string, error)
	SubmitImage(ctx context.Context, title, path string) (string, error)
	SubmitVideo(ctx context.Context, title, path string) (string, error)
	SubmitGallery(ctx context.Context, title string, paths []string) (string, error)

	Reply(ctx context.Context, postID, text string) error
	SetCategory(ctx context.Context, postID string, choice domain.CategoryChoice) error
}
