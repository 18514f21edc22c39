package client

import (
	"context"
	"drawbattle/transport"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// JoinURL turns the API base url into the websocket url of a session.
func JoinURL(base, sessionId string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/sessions/" + url.PathEscape(sessionId) + "/join"
	return u.String(), nil
}

// Dial connects to a session. header usually carries the auth cookie.
func Dial(ctx context.Context, base, sessionId string, header http.Header, cfg Config) (*Peer, error) {
	u, err := JoinURL(base, sessionId)
	if err != nil {
		return nil, err
	}
	conn, err := transport.Dial(ctx, u, header)
	if err != nil {
		return nil, fmt.Errorf("joining session %s: %w", sessionId, err)
	}
	return New(conn, cfg), nil
}
