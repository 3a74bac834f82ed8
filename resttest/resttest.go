// Package resttest provides test helpers for resources built with the
// rest package.
package resttest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bjaus/rest"
)

// Client wraps an httptest.Server with every resource registered on a
// fresh mux.
type Client struct {
	Server *httptest.Server
}

// NewClient starts a test server for the given resources.
func NewClient(t testing.TB, resources ...*rest.Resource) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for _, rs := range resources {
		rs.Register(mux)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Result holds a fully read response.
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do sends a request and reads the whole response. A nil body sends an
// empty request body.
func (c *Client) Do(t testing.TB, method, path string, body []byte, headers ...http.Header) *Result {
	t.Helper()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.Server.URL+path, rd)
	if err != nil {
		t.Fatalf("building %s %s: %v", method, path, err)
	}
	for _, h := range headers {
		for key, values := range h {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	resp, err := c.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("sending %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s %s response: %v", method, path, err)
	}

	return &Result{Status: resp.StatusCode, Header: resp.Header, Body: data}
}

// Get sends a GET request.
func (c *Client) Get(t testing.TB, path string, headers ...http.Header) *Result {
	t.Helper()
	return c.Do(t, http.MethodGet, path, nil, headers...)
}

// Post sends a POST request with a raw body.
func (c *Client) Post(t testing.TB, path string, body []byte, headers ...http.Header) *Result {
	t.Helper()
	return c.Do(t, http.MethodPost, path, body, headers...)
}

// Put sends a PUT request with a raw body.
func (c *Client) Put(t testing.TB, path string, body []byte, headers ...http.Header) *Result {
	t.Helper()
	return c.Do(t, http.MethodPut, path, body, headers...)
}

// Delete sends a DELETE request.
func (c *Client) Delete(t testing.TB, path string, headers ...http.Header) *Result {
	t.Helper()
	return c.Do(t, http.MethodDelete, path, nil, headers...)
}

// JSON decodes a JSON response body into T.
func JSON[T any](t testing.TB, res *Result) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(res.Body, &v); err != nil {
		t.Fatalf("decoding response body %q: %v", res.Body, err)
	}
	return v
}
