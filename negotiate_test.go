package rest_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/rest"
)

func TestDetermineFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		target string
		accept string
		want   string
	}{
		"default": {
			target: "/notes/",
			want:   rest.FormatJSON,
		},
		"format json": {
			target: "/notes/?format=json",
			want:   rest.FormatJSON,
		},
		"format jsonp": {
			target: "/notes/?format=jsonp",
			want:   rest.FormatJSONP,
		},
		"format xml": {
			target: "/notes/?format=xml",
			want:   rest.FormatXML,
		},
		"format yaml": {
			target: "/notes/?format=yaml",
			want:   rest.FormatYAML,
		},
		"unrecognized format falls through": {
			target: "/notes/?format=foo",
			want:   rest.FormatJSON,
		},
		"unrecognized format falls through to accept": {
			target: "/notes/?format=foo",
			accept: "application/xml",
			want:   rest.FormatXML,
		},
		"format overrides accept": {
			target: "/notes/?format=yaml",
			accept: "application/xml",
			want:   rest.FormatYAML,
		},
		"accept json": {
			target: "/notes/",
			accept: "application/json",
			want:   rest.FormatJSON,
		},
		"accept javascript": {
			target: "/notes/",
			accept: "text/javascript",
			want:   rest.FormatJSONP,
		},
		"accept xml": {
			target: "/notes/",
			accept: "application/xml",
			want:   rest.FormatXML,
		},
		"accept yaml": {
			target: "/notes/",
			accept: "text/yaml",
			want:   rest.FormatYAML,
		},
		"accept html is its own token": {
			target: "/notes/",
			accept: "text/html",
			want:   rest.FormatHTML,
		},
		"weighted accept prefers highest q": {
			target: "/notes/",
			accept: "application/json,application/xml;q=0.9,*/*;q=0.8",
			want:   rest.FormatJSON,
		},
		"unknown entries are skipped": {
			target: "/notes/",
			accept: "text/plain,application/xml,application/json;q=0.9,*/*;q=0.8",
			want:   rest.FormatXML,
		},
		"wildcard only": {
			target: "/notes/",
			accept: "*/*",
			want:   rest.FormatJSON,
		},
		"nothing known defaults to json": {
			target: "/notes/",
			accept: "text/plain,image/png",
			want:   rest.FormatJSON,
		},
		"garbage accept defaults to json": {
			target: "/notes/",
			accept: ";;;",
			want:   rest.FormatJSON,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", tc.target, nil)
			if tc.accept != "" {
				r.Header.Set("Accept", tc.accept)
			}

			assert.Equal(t, tc.want, rest.DetermineFormat(r))

			// Negotiation is pure: a second pass yields the same token.
			assert.Equal(t, tc.want, rest.DetermineFormat(r))
		})
	}
}
