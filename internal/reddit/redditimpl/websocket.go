package redditimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orgball2608/subreddit-archiver/pkg/errors"
	"github.com/tidwall/gjson"
)

// listen opens the processing-status channel of an uploaded asset.
func (r *RedditImpl) listen(ctx context.Context, wsURL string) (*websocket.Conn, error) {
	if wsURL == "" {
		return nil, errors.Mark(fmt.Errorf("upload lease carries no websocket url"), errors.ErrBadRequest)
	}

	conn, resp, err := r.dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to media status channel: %w", err)
	}
	return conn, nil
}

// awaitProcessing blocks until the platform reports the post created and
// returns its URL.
func (r *RedditImpl) awaitProcessing(conn *websocket.Conn) (string, error) {
	if err := conn.SetReadDeadline(time.Now().Add(r.wsTimeout)); err != nil {
		return "", err
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("media processing: no completion event: %w", err)
		}

		event := gjson.ParseBytes(msg)
		switch event.Get("type").String() {
		case "success":
			return event.Get("payload.redirect").String(), nil
		case "failed":
			return "", errors.Mark(fmt.Errorf("media processing failed: %s", event.Get("payload").Raw), errors.ErrBadRequest)
		default:
			r.logger.Debug("Media status event", "type", event.Get("type").String())
		}
	}
}
