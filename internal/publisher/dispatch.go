package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/reddit"
)

// StepGalleryVideo is recorded for every gallery video left out of the
// destination post.
const StepGalleryVideo = "gallery_video_dropped"

var errNoAsset = errors.New("resolution carries no usable media")

// submitFunc may record degradations on res for media it had to leave out.
type submitFunc func(ctx context.Context, dest reddit.Destination, post *domain.Post, res *domain.Resolution) (string, error)

// dispatch maps a resolved shape onto the most faithful submission.
var dispatch = map[domain.Shape]submitFunc{
	domain.ShapeSelfText:    submitSelfText,
	domain.ShapeGallery:     submitGallery,
	domain.ShapeHostedVideo: submitVideo,
	domain.ShapeDirectImage: submitImage,
	domain.ShapeGenericLink: submitLink,
}

func submitSelfText(ctx context.Context, dest reddit.Destination, post *domain.Post, _ *domain.Resolution) (string, error) {
	return dest.SubmitText(ctx, post.Title, post.SelfText)
}

// submitGallery posts two or more images as a gallery and a single image as
// an image post. Video items cannot join a gallery; a gallery of only
// videos is published as its first video.
func submitGallery(ctx context.Context, dest reddit.Destination, post *domain.Post, res *domain.Resolution) (string, error) {
	var images []string
	var videos []domain.MediaAsset
	for _, a := range res.Assets {
		if a.Kind == domain.MediaImage {
			images = append(images, a.Path)
		} else {
			videos = append(videos, a)
		}
	}

	switch {
	case len(images) > 0:
		dropVideos(res, videos, "videos cannot join an image gallery")
		if len(images) == 1 {
			return dest.SubmitImage(ctx, post.Title, images[0])
		}
		return dest.SubmitGallery(ctx, post.Title, images)
	case len(videos) > 0:
		dropVideos(res, videos[1:], "only the first video of a video gallery is posted")
		return dest.SubmitVideo(ctx, post.Title, videos[0].Path)
	default:
		return "", errNoAsset
	}
}

func dropVideos(res *domain.Resolution, videos []domain.MediaAsset, why string) {
	for _, v := range videos {
		res.Degrade(StepGalleryVideo, fmt.Errorf("%s: %s", why, v.SourceURL))
	}
}

func submitVideo(ctx context.Context, dest reddit.Destination, post *domain.Post, res *domain.Resolution) (string, error) {
	if len(res.Assets) == 0 {
		return "", errNoAsset
	}
	return dest.SubmitVideo(ctx, post.Title, res.Assets[0].Path)
}

func submitImage(ctx context.Context, dest reddit.Destination, post *domain.Post, res *domain.Resolution) (string, error) {
	if len(res.Assets) == 0 {
		return "", errNoAsset
	}
	return dest.SubmitImage(ctx, post.Title, res.Assets[0].Path)
}

func submitLink(ctx context.Context, dest reddit.Destination, post *domain.Post, _ *domain.Resolution) (string, error) {
	link := post.URL
	if link == "" {
		link = post.PermalinkURL()
	}
	return dest.SubmitLink(ctx, post.Title, link)
}
