package redditimpl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/pkg/errors"
	"github.com/tidwall/gjson"
)

// pageSize is the largest page a listing endpoint returns.
const pageSize = 100

func (r *RedditImpl) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	body, err := r.get(ctx, "get post "+id, "/comments/"+id, url.Values{
		"raw_json": {"1"},
		"limit":    {"1"},
		"depth":    {"1"},
	})
	if err != nil {
		return nil, err
	}

	children := gjson.GetBytes(body, "0.data.children")
	if !children.IsArray() || len(children.Array()) == 0 {
		return nil, errors.Mark(fmt.Errorf("post %s", id), errors.ErrNotFound)
	}

	post := parsePost(children.Array()[0].Get("data"))
	return &post, nil
}

// NewPosts pages through /new until limit posts were collected or the
// listing ends.
func (r *RedditImpl) NewPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	var (
		posts []domain.Post
		after string
	)

	for len(posts) < limit {
		query := url.Values{
			"raw_json": {"1"},
			"limit":    {strconv.Itoa(min(pageSize, limit-len(posts)))},
		}
		if after != "" {
			query.Set("after", after)
			query.Set("count", strconv.Itoa(len(posts)))
		}

		body, err := r.get(ctx, "list new posts", "/r/"+r.subreddit+"/new", query)
		if err != nil {
			return nil, err
		}

		listing := gjson.ParseBytes(body)
		page := listingPosts(listing)
		posts = append(posts, page...)

		after = listing.Get("data.after").String()
		if after == "" || len(page) == 0 {
			break
		}
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}
	r.logger.Debug("Listed new posts", "count", len(posts))
	return posts, nil
}

// Replies returns the top-level comments of a post, oldest first.
func (r *RedditImpl) Replies(ctx context.Context, postID string) ([]domain.Reply, error) {
	body, err := r.get(ctx, "list replies of "+postID, "/comments/"+postID, url.Values{
		"raw_json": {"1"},
		"sort":     {"old"},
		"depth":    {"1"},
		"limit":    {"500"},
	})
	if err != nil {
		return nil, err
	}

	if len(gjson.GetBytes(body, "0.data.children").Array()) == 0 {
		return nil, errors.Mark(fmt.Errorf("post %s", postID), errors.ErrNotFound)
	}

	var replies []domain.Reply
	gjson.GetBytes(body, "1.data.children").ForEach(func(_, child gjson.Result) bool {
		if child.Get("kind").String() == "t1" {
			replies = append(replies, parseReply(child.Get("data")))
		}
		return true
	})
	return replies, nil
}

func (r *RedditImpl) Rules(ctx context.Context) ([]domain.Rule, error) {
	body, err := r.get(ctx, "list rules", "/r/"+r.subreddit+"/about/rules", url.Values{"raw_json": {"1"}})
	if err != nil {
		return nil, err
	}

	var rules []domain.Rule
	gjson.GetBytes(body, "rules").ForEach(func(_, rule gjson.Result) bool {
		rules = append(rules, domain.Rule{
			Priority:        int(rule.Get("priority").Int()),
			ShortName:       rule.Get("short_name").String(),
			Description:     rule.Get("description").String(),
			Kind:            rule.Get("kind").String(),
			ViolationReason: rule.Get("violation_reason").String(),
		})
		return true
	})
	return rules, nil
}

func (r *RedditImpl) CategoryTemplates(ctx context.Context) ([]domain.CategoryTemplate, error) {
	body, err := r.get(ctx, "list link flair templates", "/r/"+r.subreddit+"/api/link_flair_v2", url.Values{"raw_json": {"1"}})
	if err != nil {
		return nil, err
	}

	var templates []domain.CategoryTemplate
	gjson.ParseBytes(body).ForEach(func(_, t gjson.Result) bool {
		templates = append(templates, domain.CategoryTemplate{
			ID:   t.Get("id").String(),
			Text: t.Get("text").String(),
		})
		return true
	})
	return templates, nil
}

func (r *RedditImpl) Reply(ctx context.Context, postID, text string) error {
	_, err := r.postForm(ctx, "reply to "+postID, "/api/comment", url.Values{
		"api_type": {"json"},
		"thing_id": {fullname(postID)},
		"text":     {text},
	})
	return err
}

// SetCategory applies a flair template when one is chosen, free text otherwise.
func (r *RedditImpl) SetCategory(ctx context.Context, postID string, choice domain.CategoryChoice) error {
	if choice.TemplateID != "" {
		_, err := r.postForm(ctx, "select flair on "+postID, "/r/"+r.subreddit+"/api/selectflair", url.Values{
			"api_type":          {"json"},
			"link":              {fullname(postID)},
			"flair_template_id": {choice.TemplateID},
		})
		return err
	}

	_, err := r.postForm(ctx, "set flair text on "+postID, "/r/"+r.subreddit+"/api/flair", url.Values{
		"api_type": {"json"},
		"link":     {fullname(postID)},
		"text":     {choice.Text},
	})
	return err
}

func fullname(postID string) string {
	return "t3_" + postID
}
