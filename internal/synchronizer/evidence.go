package synchronizer

import (
	"github.com/orgball2608/subreddit-archiver/internal/domain"
	"github.com/orgball2608/subreddit-archiver/pkg/errors"
)

// Reason names the evidence that a source post is gone.
type Reason string

const (
	ReasonNotFound          Reason = "not_found"
	ReasonRemovedByCategory Reason = "removed_by_category"
	ReasonBannedBy          Reason = "banned_by"
	ReasonSelfTextSentinel  Reason = "selftext_sentinel"
	ReasonAuthorDeleted     Reason = "author_deleted"
	ReasonRuleViolation     Reason = "rule_violation"
)

// ViolationRules lists the source categories moderators use for removed posts.
type ViolationRules struct {
	Texts       map[string]struct{}
	TemplateIDs map[string]struct{}
}

func NewViolationRules(texts, templateIDs []string) ViolationRules {
	r := ViolationRules{
		Texts:       make(map[string]struct{}, len(texts)),
		TemplateIDs: make(map[string]struct{}, len(templateIDs)),
	}
	for _, t := range texts {
		if t != "" {
			r.Texts[t] = struct{}{}
		}
	}
	for _, id := range templateIDs {
		if id != "" {
			r.TemplateIDs[id] = struct{}{}
		}
	}
	return r
}

func (r ViolationRules) matches(post *domain.Post) bool {
	if _, ok := r.Texts[post.CategoryText]; ok && post.CategoryText != "" {
		return true
	}
	_, ok := r.TemplateIDs[post.CategoryTemplateID]
	return ok && post.CategoryTemplateID != ""
}

// Evaluate applies the removal evidence cascade to the result of fetching
// the source post. Any one signal is sufficient and the first one found is
// reported. A fetch error other than not-found is returned unchanged.
func Evaluate(post *domain.Post, fetchErr error, rules ViolationRules) (Reason, bool, error) {
	if fetchErr != nil {
		if errors.IsNotFound(fetchErr) {
			return ReasonNotFound, true, nil
		}
		return "", false, fetchErr
	}

	switch {
	case post.RemovedByCategory != "":
		return ReasonRemovedByCategory, true, nil
	case post.BannedBy != "":
		return ReasonBannedBy, true, nil
	case post.SelfText == domain.SelfTextDeleted, post.SelfText == domain.SelfTextRemoved:
		return ReasonSelfTextSentinel, true, nil
	case !post.HasAuthor():
		return ReasonAuthorDeleted, true, nil
	case rules.matches(post):
		return ReasonRuleViolation, true, nil
	}
	return "", false, nil
}
