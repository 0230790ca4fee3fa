// Package client is the HTTP wrapper every service call goes through.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ticketboard/internal/config"
	"ticketboard/internal/session"
)

const DefaultTimeout = 15 * time.Second

type Client struct {
	base *url.URL
	sess *session.Session
	http *http.Client
	log  zerolog.Logger
}

// New builds a client against cfg.APIURL. The session supplies the
// bearer token and is cleared when the server answers 401.
func New(cfg config.Client, sess *session.Session, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.APIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", cfg.APIURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: base,
		sess: sess,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

func (c *Client) Session() *session.Session { return c.sess }

// BaseURL is the configured API root.
func (c *Client) BaseURL() string { return c.base.String() }

// resolve appends a logical path, which may carry a query, to the base.
func (c *Client) resolve(path string) string {
	p, q, _ := strings.Cut(path, "?")
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(p, "/")
	u.RawQuery = q
	return u.String()
}

// Do sends in as JSON (when non-nil) and decodes the response into out
// (when non-nil). Every failure is an *Error.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := c.sess.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Kind: KindTransport, Message: genericMessages[KindTransport], Err: err}
	}
	defer resp.Body.Close()
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: genericMessages[KindTransport], Err: err}
	}

	if resp.StatusCode >= 400 {
		e := &Error{Kind: kindFor(resp.StatusCode), Status: resp.StatusCode, Message: serverMessage(raw)}
		if e.Message == "" {
			e.Message = genericMessages[e.Kind]
		}
		if e.Kind == KindUnauthorized {
			if cerr := c.sess.Clear(); cerr != nil {
				c.log.Warn().Err(cerr).Msg("could not clear session")
			}
		}
		return e
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: genericMessages[KindDecode], Err: err}
	}
	return nil
}

// serverMessage pulls {"error": ...} or {"message": ...} out of a body.
func serverMessage(raw []byte) string {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

// IsUnauthorized reports whether err came from a 401.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
