package redditimpl

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/pkg/errors"
)

const galleryPost = `[{"kind":"Listing","data":{"after":null,"children":[{"kind":"t3","data":{
	"id":"abc123",
	"title":"Two pictures",
	"created_utc":1700000000.5,
	"author":"[deleted]",
	"selftext":"",
	"url":"https://www.reddit.com/gallery/abc123",
	"permalink":"/r/source/comments/abc123/two_pictures/",
	"is_self":false,
	"is_gallery":true,
	"is_video":false,
	"removed_by_category":"moderator",
	"banned_by":true,
	"link_flair_text":"News",
	"link_flair_template_id":"tmpl-1",
	"gallery_data":{"items":[{"media_id":"m2"},{"media_id":"m1"}]},
	"media_metadata":{
		"m1":{"status":"valid","e":"Image","s":{"u":"https://preview.redd.it/m1.jpg?width=640"}},
		"m2":{"status":"valid","e":"AnimatedImage","s":{"gif":"https://i.redd.it/m2.gif","mp4":"https://preview.redd.it/m2.mp4"}}
	}
}}]}},{"kind":"Listing","data":{"after":null,"children":[]}}]`

func TestGetPostMapsFields(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/abc123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("raw_json") != "1" {
			t.Errorf("raw_json not requested")
		}
		writeJSON(w, galleryPost)
	}))

	post, err := c.GetPost(testContext(t), "abc123")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}

	if post.ID != "abc123" || post.Title != "Two pictures" {
		t.Fatalf("unexpected identity: %+v", post)
	}
	if post.HasAuthor() {
		t.Fatalf("deleted author should map to empty, got %q", post.Author)
	}
	if want := time.Unix(1700000000, 500000000).UTC(); !post.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", post.CreatedAt, want)
	}
	if post.RemovedByCategory != "moderator" || post.BannedBy != "true" {
		t.Fatalf("removal fields = %q/%q", post.RemovedByCategory, post.BannedBy)
	}
	if post.CategoryText != "News" || post.CategoryTemplateID != "tmpl-1" {
		t.Fatalf("category = %q/%q", post.CategoryText, post.CategoryTemplateID)
	}
	if post.PermalinkURL() != "https://www.reddit.com/r/source/comments/abc123/two_pictures/" {
		t.Fatalf("PermalinkURL = %s", post.PermalinkURL())
	}

	if len(post.Gallery) != 2 {
		t.Fatalf("gallery items = %d, want 2", len(post.Gallery))
	}
	first, second := post.Gallery[0], post.Gallery[1]
	if first.MediaID != "m2" || first.Kind != domain.GalleryAnimatedImage || first.GIF != "https://i.redd.it/m2.gif" {
		t.Fatalf("first item = %+v", first)
	}
	if second.MediaID != "m1" || !second.Valid || second.Image != "https://preview.redd.it/m1.jpg?width=640" {
		t.Fatalf("second item = %+v", second)
	}
	if post.Video != nil {
		t.Fatalf("gallery post should carry no video, got %+v", post.Video)
	}
}

func TestGetPostVideoFromMediaMetadata(t *testing.T) {
	body := `[{"kind":"Listing","data":{"children":[{"kind":"t3","data":{
		"id":"vid1","title":"clip","created_utc":1700000000,"author":"a","is_video":false,
		"media_metadata":{"x":{"status":"valid","e":"RedditVideo","dashUrl":"https://v.redd.it/x/DASHPlaylist.mpd","isGif":false}}
	}}]}}]`
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, body)
	}))

	post, err := c.GetPost(testContext(t), "vid1")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Video == nil {
		t.Fatal("expected a video descriptor")
	}
	if post.Video.DashURL != "https://v.redd.it/x/DASHPlaylist.mpd" || !post.Video.HasAudio || post.Video.IsGIF {
		t.Fatalf("video = %+v", post.Video)
	}
}

func TestGetPostHostedVideo(t *testing.T) {
	body := `[{"kind":"Listing","data":{"children":[{"kind":"t3","data":{
		"id":"vid2","title":"clip","created_utc":1700000000,"author":null,"is_video":true,
		"media":{"reddit_video":{"fallback_url":"https://v.redd.it/y/DASH_720.mp4?source=fallback","dash_url":"https://v.redd.it/y/DASHPlaylist.mpd","has_audio":true,"is_gif":false}}
	}}]}}]`
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, body)
	}))

	post, err := c.GetPost(testContext(t), "vid2")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.HasAuthor() {
		t.Fatalf("null author should map to empty")
	}
	if post.Video == nil || post.Video.FallbackURL != "https://v.redd.it/y/DASH_720.mp4?source=fallback" || !post.Video.HasAudio {
		t.Fatalf("video = %+v", post.Video)
	}
}

func TestGetPostNotFound(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	_, err := c.GetPost(testContext(t), "gone")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("not found must not be retried, calls = %d", calls.Load())
	}
}

func TestGetPostEmptyListingIsNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[{"kind":"Listing","data":{"children":[]}}]`)
	}))

	if _, err := c.GetPost(testContext(t), "gone"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransientStatusIsRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, `{"rules":[{"priority":0,"short_name":"Be kind","description":"No insults","kind":"all","violation_reason":"Unkind"}]}`)
	}))

	rules, err := c.Rules(testContext(t))
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
	if len(rules) != 1 || rules[0].ShortName != "Be kind" || rules[0].ViolationReason != "Unkind" {
		t.Fatalf("rules = %+v", rules)
	}
}

func TestForbiddenIsFatal(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.Rules(testContext(t))
	if err == nil || errors.KindOf(err) != errors.KindFatal {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestNewPostsPaginates(t *testing.T) {
	var afters []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/archive/new" {
			t.Errorf("path = %s", r.URL.Path)
		}
		after := r.URL.Query().Get("after")
		afters = append(afters, after)

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset := 0
		next := "t3_page2"
		if after == "t3_page2" {
			offset = 100
			next = "t3_page3"
		}

		var things []string
		for i := 0; i < limit; i++ {
			things = append(things, postThing("p"+strconv.Itoa(offset+i), 1700000000-int64(offset+i)))
		}
		writeJSON(w, listing(next, things))
	}))

	posts, err := c.NewPosts(testContext(t), 150)
	if err != nil {
		t.Fatalf("NewPosts: %v", err)
	}
	if len(posts) != 150 {
		t.Fatalf("posts = %d, want 150", len(posts))
	}
	if len(afters) != 2 || afters[0] != "" || afters[1] != "t3_page2" {
		t.Fatalf("after cursors = %q", afters)
	}
	if posts[0].ID != "p0" || posts[149].ID != "p149" {
		t.Fatalf("order broken: first %s last %s", posts[0].ID, posts[149].ID)
	}
}

func TestNewPostsStopsAtListingEnd(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, listing("", []string{postThing("a", 2), postThing("b", 1)}))
	}))

	posts, err := c.NewPosts(testContext(t), 100)
	if err != nil {
		t.Fatalf("NewPosts: %v", err)
	}
	if len(posts) != 2 || calls.Load() != 1 {
		t.Fatalf("posts = %d calls = %d", len(posts), calls.Load())
	}
}

func TestReplies(t *testing.T) {
	body := `[
		{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"d1"}}]}},
		{"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"id":"c1","author":"archivebot","body":"**Original Post ID:** abc"}},
			{"kind":"more","data":{"count":3}},
			{"kind":"t1","data":{"id":"c2","author":"[deleted]","body":"[deleted]"}}
		]}}
	]`
	var sort string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sort = r.URL.Query().Get("sort")
		writeJSON(w, body)
	}))

	replies, err := c.Replies(testContext(t), "d1")
	if err != nil {
		t.Fatalf("Replies: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("replies = %d, want 2", len(replies))
	}
	if replies[0].Body != "**Original Post ID:** abc" || replies[0].Author != "archivebot" {
		t.Fatalf("first reply = %+v", replies[0])
	}
	if replies[1].Author != "" {
		t.Fatalf("deleted reply author = %q", replies[1].Author)
	}
	if sort != "old" {
		t.Fatalf("sort = %q, want old", sort)
	}
}

func TestCategoryTemplates(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/archive/api/link_flair_v2" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(w, `[{"id":"t1","text":"News"},{"id":"t2","text":"Removed"}]`)
	}))

	templates, err := c.CategoryTemplates(testContext(t))
	if err != nil {
		t.Fatalf("CategoryTemplates: %v", err)
	}
	if len(templates) != 2 || templates[1] != (domain.CategoryTemplate{ID: "t2", Text: "Removed"}) {
		t.Fatalf("templates = %+v", templates)
	}
}

func TestSetCategory(t *testing.T) {
	type hit struct{ path, template, text, link string }
	var hits []hit
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		hits = append(hits, hit{r.URL.Path, r.PostForm.Get("flair_template_id"), r.PostForm.Get("text"), r.PostForm.Get("link")})
		writeJSON(w, `{"json":{"errors":[]}}`)
	}))

	if err := c.SetCategory(testContext(t), "d1", domain.CategoryChoice{TemplateID: "tmpl"}); err != nil {
		t.Fatalf("SetCategory template: %v", err)
	}
	if err := c.SetCategory(testContext(t), "d2", domain.CategoryChoice{Text: "Misc"}); err != nil {
		t.Fatalf("SetCategory text: %v", err)
	}

	want := []hit{
		{"/r/archive/api/selectflair", "tmpl", "", "t3_d1"},
		{"/r/archive/api/flair", "", "Misc", "t3_d2"},
	}
	if len(hits) != len(want) {
		t.Fatalf("hits = %+v", hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Fatalf("hit %d = %+v, want %+v", i, hits[i], want[i])
		}
	}
}

func TestReplyPostsComment(t *testing.T) {
	var thing, text string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/comment" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = r.ParseForm()
		thing, text = r.PostForm.Get("thing_id"), r.PostForm.Get("text")
		writeJSON(w, `{"json":{"errors":[],"data":{"things":[]}}}`)
	}))

	if err := c.Reply(testContext(t), "d1", "hello"); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if thing != "t3_d1" || text != "hello" {
		t.Fatalf("thing = %q text = %q", thing, text)
	}
}
