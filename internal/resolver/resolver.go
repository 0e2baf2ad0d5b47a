package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/internal/media"
	"github.com/orgball2608/subreddit-archiver/pkg/logger"
	"go.uber.org/fx"
)

// Degradation steps recorded on a Resolution.
const (
	StepItemInvalid     = "gallery_item_invalid"
	StepItemUnresolved  = "gallery_item_unresolved"
	StepItemDownload    = "gallery_item_download"
	StepGalleryEmpty    = "gallery_empty"
	StepVideoUnresolved = "video_unresolved"
	StepVideoDownload   = "video_download"
	StepAudioGuess      = "audio_guess"
	StepAudioDownload   = "audio_download"
	StepRemux           = "remux"
	StepImageDownload   = "image_download"
)

var errNoCandidate = errors.New("no candidate url")

type Opts struct {
	fx.In

	Fetcher media.Fetcher
	Logger  logger.Logger
}

// Resolver turns a classified post into locally materialized media.
type Resolver struct {
	fetcher    media.Fetcher
	logger     logger.Logger
	guessAudio AudioGuesser
}

func New(opts Opts) *Resolver {
	return &Resolver{
		fetcher:    opts.Fetcher,
		logger:     opts.Logger.WithComponent("Resolver"),
		guessAudio: GuessAudioURLs,
	}
}

// WithAudioGuesser replaces the audio URL derivation rules.
func (r *Resolver) WithAudioGuesser(g AudioGuesser) *Resolver {
	r.guessAudio = g
	return r
}

// Resolve materializes the media of post into dir. It never fails: every
// miss is recorded as a degradation and, when nothing usable is left, the
// resolution shape drops to ShapeGenericLink.
func (r *Resolver) Resolve(ctx context.Context, post *domain.Post, shape domain.Shape, dir string) domain.Resolution {
	res := domain.Resolution{Shape: shape}

	switch shape {
	case domain.ShapeGallery:
		r.resolveGallery(ctx, post, dir, &res)
	case domain.ShapeHostedVideo:
		r.resolveVideo(ctx, post, dir, &res)
	case domain.ShapeDirectImage:
		r.resolveImage(ctx, post, dir, &res)
	}

	for _, d := range res.Degradations {
		r.logger.Warn("Media degraded", "source_id", post.ID, "step", d.Step, "cause", d.Cause)
	}
	return res
}

func (r *Resolver) resolveGallery(ctx context.Context, post *domain.Post, dir string, res *domain.Resolution) {
	for i, item := range post.Gallery {
		if !item.Valid {
			res.Degrade(StepItemInvalid, fmt.Errorf("item %s is not valid", item.MediaID))
			continue
		}

		u := r.galleryItemURL(ctx, post, item)
		if u == "" {
			res.Degrade(StepItemUnresolved, fmt.Errorf("item %s: %w", item.MediaID, errNoCandidate))
			continue
		}

		dest := filepath.Join(dir, fmt.Sprintf("%02d_%s%s", i, item.MediaID, extension(u)))
		if _, err := r.fetcher.Download(ctx, u, dest); err != nil {
			res.Degrade(StepItemDownload, err)
			continue
		}

		kind := domain.MediaImage
		if extension(u) == ".mp4" {
			kind = domain.MediaVideo
		}
		res.Assets = append(res.Assets, domain.MediaAsset{Kind: kind, Path: dest, SourceURL: u})
	}

	if len(res.Assets) == 0 {
		res.Degrade(StepGalleryEmpty, errNoCandidate)
		res.Shape = domain.ShapeGenericLink
	}
}

// galleryItemURL picks one terminal URL per item type. Animated items prefer
// the animated raster over the video container.
func (r *Resolver) galleryItemURL(ctx context.Context, post *domain.Post, item domain.GalleryItem) string {
	switch item.Kind {
	case domain.GalleryImage:
		if item.Image != "" {
			return NormalizeImageURL(item.Image)
		}
	case domain.GalleryAnimatedImage:
		if item.GIF != "" {
			return item.GIF
		}
		return item.MP4
	case domain.GalleryVideo:
		if u := r.probeRanked(ctx, item.DashURL); u != "" {
			return u
		}
		if post.Video != nil {
			return post.Video.FallbackURL
		}
	}
	return ""
}

// probeRanked returns the first DASH rendition that answers the probe.
func (r *Resolver) probeRanked(ctx context.Context, dashURL string) string {
	for _, candidate := range DashCandidates(dashURL) {
		if r.fetcher.Exists(ctx, candidate) {
			return candidate
		}
	}
	return ""
}

// resolveVideo walks merged -> video-only -> generic link.
func (r *Resolver) resolveVideo(ctx context.Context, post *domain.Post, dir string, res *domain.Resolution) {
	v := post.Video

	videoURL := r.probeRanked(ctx, v.DashURL)
	if videoURL == "" {
		videoURL = v.FallbackURL
	}
	if videoURL == "" {
		res.Degrade(StepVideoUnresolved, errNoCandidate)
		res.Shape = domain.ShapeGenericLink
		return
	}

	videoPath := filepath.Join(dir, "media_video.mp4")
	if _, err := r.fetcher.Download(ctx, videoURL, videoPath); err != nil {
		res.Degrade(StepVideoDownload, err)
		res.Shape = domain.ShapeGenericLink
		return
	}

	res.MediaURL = videoURL
	res.Assets = []domain.MediaAsset{{Kind: domain.MediaVideo, Path: videoPath, SourceURL: videoURL}}

	if !v.HasAudio || v.IsGIF {
		return
	}

	audioURL := ""
	for _, candidate := range r.guessAudio(videoURL) {
		if r.fetcher.Exists(ctx, candidate) {
			audioURL = candidate
			break
		}
	}
	if audioURL == "" {
		res.Degrade(StepAudioGuess, fmt.Errorf("no audio track found next to %s", videoURL))
		return
	}

	audioPath := filepath.Join(dir, "media_audio.mp4")
	if _, err := r.fetcher.Download(ctx, audioURL, audioPath); err != nil {
		res.Degrade(StepAudioDownload, err)
		return
	}

	mergedPath := filepath.Join(dir, "merged_video.mp4")
	if err := r.fetcher.Remux(ctx, videoPath, audioPath, mergedPath); err != nil {
		res.Degrade(StepRemux, err)
		return
	}

	res.AudioURL = audioURL
	res.Assets = []domain.MediaAsset{{Kind: domain.MediaMergedVideo, Path: mergedPath, SourceURL: videoURL}}
}

func (r *Resolver) resolveImage(ctx context.Context, post *domain.Post, dir string, res *domain.Resolution) {
	u := NormalizeImageURL(post.URL)
	dest := filepath.Join(dir, "image"+extension(u))

	if _, err := r.fetcher.Download(ctx, u, dest); err != nil {
		res.Degrade(StepImageDownload, err)
		res.Shape = domain.ShapeGenericLink
		return
	}

	res.MediaURL = post.URL
	res.Assets = []domain.MediaAsset{{Kind: domain.MediaImage, Path: dest, SourceURL: u}}
}
