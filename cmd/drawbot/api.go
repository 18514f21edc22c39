package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var errNoToken = errors.New("no-token-cookie")

// apiClient talks to the HTTP side of the server: auth and session creation.
type apiClient struct {
	base   string
	origin string
	http   *http.Client
	token  string
}

func newAPIClient(base, origin string) *apiClient {
	return &apiClient{base: strings.TrimSuffix(base, "/"), origin: origin, http: http.DefaultClient}
}

// header carries the auth cookie and the origin the server allow-lists.
func (c *apiClient) header() http.Header {
	h := http.Header{}
	h.Set("Origin", c.origin)
	if c.token != "" {
		h.Set("Cookie", (&http.Cookie{Name: "token", Value: c.token}).String())
	}
	return h
}

func (c *apiClient) do(ctx context.Context, method, path string, body any, want int) ([]byte, *http.Response, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, nil, err
	}
	req.Header = c.header()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}
	if res.StatusCode != want {
		return nil, nil, fmt.Errorf("%s %s: %d %s", method, path, res.StatusCode, strings.TrimSpace(string(out)))
	}
	return out, res, nil
}

// authenticate logs in, or signs up first when signup is set. The token
// cookie is kept by hand since the server marks it Secure.
func (c *apiClient) authenticate(ctx context.Context, username, password string, signup bool) error {
	creds := map[string]string{"username": username, "password": password}
	path, want := "/auth/login", http.StatusOK
	if signup {
		path, want = "/auth/signup", http.StatusCreated
	}
	_, res, err := c.do(ctx, http.MethodPost, path, creds, want)
	if err != nil {
		return err
	}
	for _, ck := range res.Cookies() {
		if ck.Name == "token" && ck.Value != "" {
			c.token = ck.Value
			return nil
		}
	}
	return errNoToken
}

type createSessionRequest struct {
	MaxPlayers int  `json:"maxPlayers,omitempty"`
	Width      int  `json:"width,omitempty"`
	Height     int  `json:"height,omitempty"`
	Private    bool `json:"private,omitempty"`
}

func (c *apiClient) createSession(ctx context.Context, req createSessionRequest) (string, error) {
	out, _, err := c.do(ctx, http.MethodPost, "/sessions", req, http.StatusCreated)
	if err != nil {
		return "", err
	}
	var resp struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", err
	}
	return resp.Id, nil
}
