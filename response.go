package rest

import (
	"errors"
	"net/http"
)

// Response is the outcome of one handler invocation: a status, optional
// headers, and an already-serialized body. It is the (status, body,
// content-type) triple of the engine's contract, decoupled from the
// http.ResponseWriter so handlers stay directly testable.
type Response struct {
	Status      int
	ContentType string
	Header      http.Header
	Body        []byte
}

// Write emits the response.
func (resp *Response) Write(w http.ResponseWriter) {
	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		w.Write(resp.Body) //nolint:errcheck,gosec // best-effort after WriteHeader
	}
}

func emptyResponse(status int) *Response {
	return &Response{Status: status}
}

func plainResponse(status int, body string) *Response {
	return &Response{
		Status:      status,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(body),
	}
}

// errorResponse converts a handler-level error into a plain-text response
// without leaking internal state: only StatusCoder errors carry their
// message out, anything else becomes a bare 500.
func errorResponse(err error) *Response {
	var sc StatusCoder
	status := ErrorStatus(err)
	if asStatusCoder(err, &sc) {
		return plainResponse(status, err.Error())
	}
	return emptyResponse(status)
}

func asStatusCoder(err error, target *StatusCoder) bool {
	return errors.As(err, target)
}
