package redditimpl

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/orgball2608/subreddit-archiver/pkg/errors"
	"github.com/orgball2608/subreddit-archiver/pkg/formatter"
	"github.com/orgball2608/subreddit-archiver/pkg/retry"
	"github.com/tidwall/gjson"
)

// asset is an uploaded media file the platform can attach to a post.
type asset struct {
	ID           string
	URL          string
	WebsocketURL string
}

var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

func (r *RedditImpl) uploadFile(ctx context.Context, path string) (*asset, error) {
	name := filepath.Base(path)
	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return nil, errors.Mark(fmt.Errorf("unsupported media file %s", name), errors.ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	a, err := r.upload(ctx, name, mimeType, func() (io.ReadCloser, error) {
		return os.Open(path)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Uploaded media", "file", name, "size", humanize.Bytes(uint64(info.Size())), "asset_id", a.ID)
	return a, nil
}

// uploadPoster uploads a plain frame used as the video thumbnail.
func (r *RedditImpl) uploadPoster(ctx context.Context) (*asset, error) {
	frame, err := posterFrame()
	if err != nil {
		return nil, err
	}
	return r.upload(ctx, "poster.png", "image/png", func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(frame)), nil
	})
}

func posterFrame() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 160, 90))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode poster frame: %w", err)
	}
	return buf.Bytes(), nil
}

// upload leases an upload slot and posts the file to the storage bucket
// named in the lease.
func (r *RedditImpl) upload(ctx context.Context, name, mimeType string, open func() (io.ReadCloser, error)) (*asset, error) {
	body, err := r.postForm(ctx, "lease upload for "+name, "/api/media/asset.json", url.Values{
		"filepath": {name},
		"mimetype": {mimeType},
	})
	if err != nil {
		return nil, err
	}

	lease := gjson.ParseBytes(body)
	action := lease.Get("args.action").String()
	if action == "" {
		return nil, errors.Mark(fmt.Errorf("lease for %s carries no upload url", name), errors.ErrBadRequest)
	}
	if strings.HasPrefix(action, "//") {
		action = "https:" + action
	}

	var (
		fields [][2]string
		key    string
	)
	lease.Get("args.fields").ForEach(func(_, f gjson.Result) bool {
		field := [2]string{f.Get("name").String(), f.Get("value").String()}
		if field[0] == "key" {
			key = field[1]
		}
		fields = append(fields, field)
		return true
	})

	op := "upload " + name
	err = retry.Do(ctx, r.logger, op, func() error {
		if err := r.gate.Wait(ctx); err != nil {
			return err
		}
		return r.postMultipart(ctx, op, action, fields, name, open)
	}, r.retry)
	if err != nil {
		return nil, err
	}

	return &asset{
		ID:           lease.Get("asset.asset_id").String(),
		URL:          action + "/" + key,
		WebsocketURL: lease.Get("asset.websocket_url").String(),
	}, nil
}

// postMultipart streams the form so large videos are never held in memory.
func (r *RedditImpl) postMultipart(ctx context.Context, op, target string, fields [][2]string, name string, open func() (io.ReadCloser, error)) error {
	src, err := open()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		for _, f := range fields {
			if err := form.WriteField(f[0], f[1]); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		part, err := form.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := r.storage.Do(req)
	if err != nil {
		_ = pr.CloseWithError(err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Mark(fmt.Errorf("%s: %w", op, err), errors.ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	err = fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, formatter.Truncate(string(data), maxErrorBody))
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return errors.Mark(err, errors.ErrTransient)
	}
	return errors.Mark(err, errors.ErrBadRequest)
}
