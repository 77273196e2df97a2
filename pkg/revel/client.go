package revel

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/tannerpowell/catch/pkg/session"
)

// Client issues authenticated platform calls over plain HTTP, presenting the
// cookies a browser pass collected. One client per store; nothing is shared
// across stores.
type Client struct {
	// Endpoint is the store's GraphQL endpoint, derived from its URL.
	Endpoint string

	headers map[string]string
	http    *retryablehttp.Client
}

// NewClient builds a client for one store. state may be nil, in which case
// requests go out without session cookies (useful for probing).
func NewClient(store Store, state *session.State, proxy string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 0 // a failed call is a failed call, never retried
	retryClient.HTTPClient.Jar = jar
	retryClient.HTTPClient.Timeout = RequestTimeout

	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		retryClient.HTTPClient.Transport = &http.Transport{
			Proxy:           http.ProxyURL(proxyURL),
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	endpoint := BuildGraphQLEndpoint(store.URL)
	if state != nil {
		var urls []*url.URL
		if u, err := url.Parse(endpoint); err == nil {
			urls = append(urls, u)
		}
		if u, err := url.Parse(store.URL); err == nil {
			urls = append(urls, u)
		}
		state.AddTo(jar, urls...)
	}

	return &Client{
		Endpoint: endpoint,
		headers:  BuildHeaders(store.URL),
		http:     retryClient,
	}, nil
}

// SetUserAgent overrides the User-Agent presented on every request. It must
// match the agent the browser pass used, or the session cookies look stolen.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.headers["User-Agent"] = ua
	}
}

// ExecuteGraphQL posts {operationName, variables, query} and returns the
// response's data object. A non-200 status or a non-empty errors array is a
// hard failure.
func (c *Client) ExecuteGraphQL(operation string, variables map[string]any, query string) (gjson.Result, error) {
	payload, err := json.Marshal(map[string]any{
		"operationName": operation,
		"variables":     variables,
		"query":         query,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	req, err := retryablehttp.NewRequest("POST", c.Endpoint, payload)
	if err != nil {
		return gjson.Result{}, err
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("graphql %s: %w", operation, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("graphql %s: %w", operation, err)
	}
	if res.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("graphql %s failed (%d): %s", operation, res.StatusCode, truncate(string(body), 300))
	}
	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		return gjson.Result{}, fmt.Errorf("graphql %s errors: %s", operation, errs.Raw)
	}
	return gjson.GetBytes(body, "data"), nil
}

// FetchBytes GETs url with the same header set and returns the raw body.
func (c *Client) FetchBytes(rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

func (c *Client) setHeaders(req *retryablehttp.Request) {
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
