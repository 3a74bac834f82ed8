package rest

import (
	"net/http"
	"net/url"
	"strconv"
)

// resolveSlice bounds-checks the offset/limit query parameters for a list
// request. A limit of 0 means "no limit". An offset past the end of the
// collection is not an error — the page is simply empty, and the response
// echoes the requested values so the caller can tell "past the end" from
// "empty collection".
func resolveSlice(q url.Values, defaultLimit int) (offset, limit int, err error) {
	offset, err = intParam(q, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intParam(q, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}

	if offset < 0 {
		return 0, 0, Errorf(http.StatusBadRequest, "offset must not be negative, got %d", offset)
	}
	if limit < 0 {
		return 0, 0, Errorf(http.StatusBadRequest, "limit must not be negative, got %d", limit)
	}
	return offset, limit, nil
}

func intParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Errorf(http.StatusBadRequest, "%s must be an integer, got %q", name, raw)
	}
	return n, nil
}
