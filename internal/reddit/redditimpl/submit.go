package redditimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"

	"github.com/orgball2608/subreddit-archiver/pkg/errors"
	"github.com/tidwall/gjson"
)

var postIDPattern = regexp.MustCompile(`/comments/([A-Za-z0-9]+)`)

func (r *RedditImpl) SubmitText(ctx context.Context, title, body string) (string, error) {
	return r.submit(ctx, title, url.Values{
		"kind": {"self"},
		"text": {body},
	})
}

func (r *RedditImpl) SubmitLink(ctx context.Context, title, link string) (string, error) {
	return r.submit(ctx, title, url.Values{
		"kind": {"link"},
		"url":  {link},
	})
}

func (r *RedditImpl) SubmitImage(ctx context.Context, title, path string) (string, error) {
	a, err := r.uploadFile(ctx, path)
	if err != nil {
		return "", err
	}
	return r.submitAsset(ctx, title, a, url.Values{
		"kind": {"image"},
		"url":  {a.URL},
	})
}

// SubmitVideo uploads the video together with a generated poster frame,
// which the platform requires for hosted videos.
func (r *RedditImpl) SubmitVideo(ctx context.Context, title, path string) (string, error) {
	a, err := r.uploadFile(ctx, path)
	if err != nil {
		return "", err
	}
	poster, err := r.uploadPoster(ctx)
	if err != nil {
		return "", err
	}
	return r.submitAsset(ctx, title, a, url.Values{
		"kind":             {"video"},
		"url":              {a.URL},
		"video_poster_url": {poster.URL},
	})
}

type galleryItem struct {
	Caption     string `json:"caption"`
	OutboundURL string `json:"outbound_url"`
	MediaID     string `json:"media_id"`
}

type galleryRequest struct {
	APIType          string        `json:"api_type"`
	Items            []galleryItem `json:"items"`
	NSFW             bool          `json:"nsfw"`
	SendReplies      bool          `json:"sendreplies"`
	ShowErrorList    bool          `json:"show_error_list"`
	Spoiler          bool          `json:"spoiler"`
	Subreddit        string        `json:"sr"`
	Title            string        `json:"title"`
	ValidateOnSubmit bool          `json:"validate_on_submit"`
}

// SubmitGallery uploads every image and creates one gallery post, keeping
// the order of paths.
func (r *RedditImpl) SubmitGallery(ctx context.Context, title string, paths []string) (string, error) {
	req := galleryRequest{
		APIType:          "json",
		SendReplies:      true,
		ShowErrorList:    true,
		Subreddit:        r.subreddit,
		Title:            title,
		ValidateOnSubmit: true,
	}
	for _, p := range paths {
		a, err := r.uploadFile(ctx, p)
		if err != nil {
			return "", err
		}
		req.Items = append(req.Items, galleryItem{MediaID: a.ID})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode gallery request: %w", err)
	}

	body, err := r.postJSON(ctx, "submit gallery", "/api/submit_gallery_post.json", payload)
	if err != nil {
		return "", err
	}

	id, err := postIDFromURL(gjson.GetBytes(body, "json.data.url").String())
	if err != nil {
		return "", err
	}
	r.logger.Info("Submitted gallery", "post_id", id, "items", len(req.Items))
	return id, nil
}

func (r *RedditImpl) submit(ctx context.Context, title string, form url.Values) (string, error) {
	body, err := r.postForm(ctx, "submit "+form.Get("kind"), "/api/submit", r.submitForm(title, form))
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(body, "json.data.id").String()
	if id == "" {
		return "", errors.Mark(fmt.Errorf("submit %s: response carries no post id", form.Get("kind")), errors.ErrBadRequest)
	}
	r.logger.Info("Submitted post", "post_id", id, "kind", form.Get("kind"))
	return id, nil
}

// submitAsset submits a media post and waits for the platform to finish
// processing it. The listener is connected before submitting so the
// completion event cannot be missed.
func (r *RedditImpl) submitAsset(ctx context.Context, title string, a *asset, form url.Values) (string, error) {
	conn, err := r.listen(ctx, a.WebsocketURL)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := r.postForm(ctx, "submit "+form.Get("kind"), "/api/submit", r.submitForm(title, form)); err != nil {
		return "", err
	}

	redirect, err := r.awaitProcessing(conn)
	if err != nil {
		return "", err
	}

	id, err := postIDFromURL(redirect)
	if err != nil {
		return "", err
	}
	r.logger.Info("Submitted post", "post_id", id, "kind", form.Get("kind"))
	return id, nil
}

func (r *RedditImpl) submitForm(title string, form url.Values) url.Values {
	out := url.Values{
		"api_type":    {"json"},
		"sr":          {r.subreddit},
		"title":       {title},
		"resubmit":    {"true"},
		"sendreplies": {"true"},
	}
	for k, v := range form {
		out[k] = v
	}
	return out
}

func postIDFromURL(u string) (string, error) {
	m := postIDPattern.FindStringSubmatch(u)
	if m == nil {
		return "", errors.Mark(fmt.Errorf("no post id in %q", u), errors.ErrBadRequest)
	}
	return m[1], nil
}
