package redditimpl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/orgball2608/subreddit-archiver/pkg/errors"
	"github.com/orgball2608/subreddit-archiver/pkg/formatter"
	"github.com/orgball2608/subreddit-archiver/pkg/retry"
	"github.com/tidwall/gjson"
)

// maxErrorBody caps how much of a failed response ends up in an error message.
const maxErrorBody = 300

func (r *RedditImpl) get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	return r.call(ctx, op, func() (*http.Request, error) {
		u := r.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
}

func (r *RedditImpl) postForm(ctx context.Context, op, path string, form url.Values) ([]byte, error) {
	encoded := form.Encode()
	return r.call(ctx, op, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

func (r *RedditImpl) postJSON(ctx context.Context, op, path string, body []byte) ([]byte, error) {
	return r.call(ctx, op, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

// call passes the rate gate before every attempt and retries transient
// failures. newReq is invoked once per attempt so bodies are never reused.
func (r *RedditImpl) call(ctx context.Context, op string, newReq func() (*http.Request, error)) ([]byte, error) {
	var body []byte
	err := retry.Do(ctx, r.logger, op, func() error {
		if err := r.gate.Wait(ctx); err != nil {
			return err
		}

		req, err := newReq()
		if err != nil {
			return fmt.Errorf("%s: failed to create request: %w", op, err)
		}
		if r.userAgent != "" {
			req.Header.Set("User-Agent", r.userAgent)
		}

		resp, err := r.api.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Mark(fmt.Errorf("%s: %w", op, err), errors.ErrTransient)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Mark(fmt.Errorf("%s: failed to read response: %w", op, err), errors.ErrTransient)
		}

		if err := statusError(op, resp.StatusCode, data); err != nil {
			return err
		}
		if err := apiErrors(op, data); err != nil {
			return err
		}

		body = data
		return nil
	}, r.retry)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Request completed", "operation", op)
	return body, nil
}

// statusError maps an HTTP status onto the error classes callers act on.
func statusError(op string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	err := fmt.Errorf("%s: status %d: %s", op, status, formatter.Truncate(string(body), maxErrorBody))
	switch {
	case status == http.StatusNotFound:
		return errors.Mark(err, errors.ErrNotFound)
	case status == http.StatusTooManyRequests, status >= 500:
		return errors.Mark(err, errors.ErrTransient)
	case status == http.StatusUnauthorized:
		return errors.Mark(err, errors.ErrUnauthorized)
	case status == http.StatusForbidden:
		return errors.Mark(err, errors.ErrForbidden)
	default:
		return errors.Mark(err, errors.ErrBadRequest)
	}
}

// apiErrors inspects the json.errors list that write endpoints return with a
// 200 status. A RATELIMIT entry is transient, anything else is fatal.
func apiErrors(op string, body []byte) error {
	list := gjson.GetBytes(body, "json.errors")
	if !list.IsArray() || len(list.Array()) == 0 {
		return nil
	}

	first := list.Array()[0].Array()
	var code, message string
	if len(first) > 0 {
		code = first[0].String()
	}
	if len(first) > 1 {
		message = first[1].String()
	}

	err := fmt.Errorf("%s: api error %s: %s", op, code, message)
	if code == "RATELIMIT" {
		return errors.Mark(err, errors.ErrTransient)
	}
	return errors.Mark(err, errors.ErrBadRequest)
}
