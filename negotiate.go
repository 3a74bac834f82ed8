package rest

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// shortNames maps the ?format= query override to format tokens. An
// unrecognized short name falls through to Accept negotiation.
var shortNames = map[string]string{
	"json":  FormatJSON,
	"jsonp": FormatJSONP,
	"xml":   FormatXML,
	"yaml":  FormatYAML,
}

// knownTokens are the media types Accept negotiation recognizes. text/html
// is its own token when asked for explicitly; there is no silent JSON
// substitution at negotiation time.
var knownTokens = []string{FormatJSON, FormatJSONP, FormatXML, FormatYAML, FormatHTML}

// DetermineFormat resolves the desired wire format for a request: the
// ?format= override first, then the Accept header by descending q weight
// (ties keep header order), then application/json. It never mutates the
// request and always returns a token.
func DetermineFormat(r *http.Request) string {
	if short := r.URL.Query().Get("format"); short != "" {
		if token, ok := shortNames[short]; ok {
			return token
		}
	}

	if token, ok := negotiateAccept(r.Header.Get("Accept")); ok {
		return token
	}
	return FormatJSON
}

// negotiateAccept picks the known token with the highest q weight from a
// comma-separated media range list. */* counts as a match for the default.
func negotiateAccept(accept string) (string, bool) {
	if accept == "" {
		return "", false
	}

	best := ""
	bestQ := -1.0

	for part := range strings.SplitSeq(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		q := 1.0
		if qs, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(qs, 64); err == nil {
				q = parsed
			}
		}

		if q <= bestQ {
			continue
		}

		if mediaType == "*/*" {
			best, bestQ = FormatJSON, q
			continue
		}

		for _, token := range knownTokens {
			if token == mediaType {
				best, bestQ = token, q
				break
			}
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}
