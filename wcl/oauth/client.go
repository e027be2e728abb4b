package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Client holds client-credentials OAuth2 state. The Bearer header is cached
// until the token expires; Reset drops it early when the API answers 401.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string

	headerLock    sync.Mutex
	headerValue   string
	headerExpires time.Time
}

func New(oauthID string, oauthSecret string, tokenURL string) *Client {
	return &Client{
		clientID:     oauthID,
		clientSecret: oauthSecret,
		tokenURL:     tokenURL,
	}
}

func (c *Client) Reset() {
	c.headerLock.Lock()
	c.headerValue = ""
	c.headerLock.Unlock()
}

// NewRequest returns an API request carrying a valid Authorization header,
// fetching a fresh token first when the cached one is missing or expired.
func (c *Client) NewRequest(ctx context.Context, method string, urlStr string, body io.Reader) (*http.Request, error) {
	c.headerLock.Lock()
	defer c.headerLock.Unlock()

	now := time.Now()
	if c.headerValue == "" || now.After(c.headerExpires) {
		form := url.Values{
			"grant_type":    []string{"client_credentials"},
			"client_id":     []string{c.clientID},
			"client_secret": []string{c.clientSecret},
		}

		req, err := http.NewRequestWithContext(
			ctx,
			"POST",
			c.tokenURL,
			strings.NewReader(form.Encode()),
		)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		req.Header = http.Header{
			"Content-Type": []string{"application/x-www-form-urlencoded"},
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer resp.Body.Close()

		var token struct {
			Error       string `json:"error"`
			AccessToken string `json:"access_token"`
			ExpiresIn   int64  `json:"expires_in"`
		}
		err = jsoniter.NewDecoder(resp.Body).Decode(&token)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if token.Error != "" {
			return nil, errors.Errorf("oauth: %s", token.Error)
		}

		c.headerValue = fmt.Sprintf("Bearer %s", token.AccessToken)
		c.headerExpires = now.Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header = http.Header{
		"Authorization": []string{c.headerValue},
		"Content-Type":  []string{"application/json; encoding=utf-8"},
	}

	return req, nil
}
