package provenance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/orgball2608/subreddit-archiver/internal/domain"
)

// idPattern finds the source id in a provenance reply.
var idPattern = regexp.MustCompile(`\*\*Original Post ID:\*\*\s*([A-Za-z0-9]+)`)

// Render renders the reply that links a mirrored post to its source.
// The audio link appears only when the audio track was actually merged.
func Render(post *domain.Post, res domain.Resolution) string {
	author := post.Author
	if author == "" {
		author = "[deleted]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Original post by u/%s:** [Here](%s)\n\n", author, post.PermalinkURL())
	fmt.Fprintf(&b, "**Original Post ID:** %s", post.ID)

	if res.MediaURL != "" {
		fmt.Fprintf(&b, "\n\n**Direct link to media:** [Media Here](%s)", res.MediaURL)
	}
	if res.AudioURL != "" {
		fmt.Fprintf(&b, "\n\n**Direct link to Audio:** [Audio Here](%s)", res.AudioURL)
	}
	if post.SelfText != "" {
		fmt.Fprintf(&b, "\n\n**Original post text:** %s\n\n---", post.SelfText)
	}
	if post.CategoryTemplateID != "" {
		fmt.Fprintf(&b, "\n\n**Original Flair ID:** %s", post.CategoryTemplateID)
	}
	if post.CategoryText != "" {
		fmt.Fprintf(&b, "\n\n**Original Flair Text:** %s", post.CategoryText)
	}
	return b.String()
}

// SourceID recovers the source id from the provenance replies written by
// author, first match wins. Replies by anyone else are ignored.
func SourceID(replies []domain.Reply, author string) (string, bool) {
	for _, r := range replies {
		if author == "" || !strings.EqualFold(r.Author, author) {
			continue
		}
		if m := idPattern.FindStringSubmatch(r.Body); m != nil {
			return m[1], true
		}
	}
	return "", false
}
