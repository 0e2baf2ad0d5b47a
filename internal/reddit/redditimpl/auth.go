package redditimpl

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// passwordSource performs the resource-owner password grant used by script
// apps. The platform issues no refresh token, so a fresh grant is requested
// whenever the cached token expires.
type passwordSource struct {
	ctx      context.Context
	config   *oauth2.Config
	username string
	password string
}

func (s *passwordSource) Token() (*oauth2.Token, error) {
	return s.config.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

// userAgentTransport stamps every request with the account's user agent.
// Requests without one are throttled hard by the platform.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
