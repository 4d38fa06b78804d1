// Package chronicle provides a Go client for the Google SecOps (Chronicle)
// Data Export v1alpha API.
//
// The Data Export API copies a time-bounded slice of a Chronicle instance's
// raw logs into a Cloud Storage bucket. This client covers the five
// operations the export workflow needs: create, get, list, cancel, and
// fetching the managed service account that writes into the bucket.
//
// Usage:
//
//	inst := chronicle.Instance{
//	    Project:  "my-project",
//	    Location: "us",
//	    ID:       "d9e8f7a6-1234-5678-9abc-def012345678",
//	}
//	client := chronicle.New("https://chronicle.us.googleapis.com", inst,
//	    chronicle.WithHTTPClient(authedClient))
//
//	export, err := client.CreateExport(ctx, chronicle.CreateExportRequest{
//	    Days:      1,
//	    GCSBucket: "gs://my-export-bucket",
//	})
package chronicle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// apiVersion is the version prefix every request URL carries. Resource
// names returned by the API do not include it.
const apiVersion = "v1alpha"

// Client is an authenticated Chronicle Data Export API client.
// The zero value is not usable; call New.
type Client struct {
	baseURL    string
	inst       Instance
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. This is how the bearer
// credential is injected: pass an oauth2-wrapped client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Data Export client for one Chronicle instance.
// baseURL is the regional API root (e.g. "https://chronicle.us.googleapis.com").
func New(baseURL string, inst Instance, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		inst:       inst,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Instance returns the instance this client is bound to.
func (c *Client) Instance() Instance {
	return c.inst
}

// --- internal helpers ---

// url builds the full request URL for an unversioned resource name or path.
func (c *Client) url(name string) string {
	return c.baseURL + "/" + apiVersion + "/" + strings.TrimLeft(name, "/")
}

func (c *Client) newRequest(ctx context.Context, method, name string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("chronicle: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(name), bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doRequest[T any](ctx context.Context, c *Client, method, name string, body any) (*T, error) {
	req, err := c.newRequest(ctx, method, name, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chronicle: %s %s: %w", method, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("chronicle: decode response: %w", err)
	}
	return &out, nil
}

func doRequestWithQuery[T any](ctx context.Context, c *Client, method, name string, query map[string]string) (*T, error) {
	req, err := c.newRequest(ctx, method, name, nil)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chronicle: %s %s: %w", method, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("chronicle: decode response: %w", err)
	}
	return &out, nil
}
