package rest

import (
	"net/http"
	"slices"
	"strings"
)

// DispatchList runs the full pipeline for the list endpoint:
// authenticate, negotiate format (validating any JSONP callback), check
// the verb, invoke the handler, emit.
func (rs *Resource) DispatchList(w http.ResponseWriter, r *http.Request) {
	rs.dispatch(w, r, rs.listMethods, func(verb string) *Response {
		switch verb {
		case "get":
			return rs.GetList(r)
		case "post":
			return rs.PostList(r)
		case "delete":
			return rs.DeleteList(r)
		default:
			// put against the whole collection has no defined semantics.
			return emptyResponse(http.StatusNotImplemented)
		}
	})
}

// DispatchDetail runs the full pipeline for the detail endpoint. The id is
// supplied by the surrounding router.
func (rs *Resource) DispatchDetail(w http.ResponseWriter, r *http.Request, id string) {
	rs.dispatch(w, r, rs.detailMethods, func(verb string) *Response {
		switch verb {
		case "get":
			return rs.GetDetail(r, id)
		case "post":
			return rs.PostDetail(r, id)
		case "put":
			return rs.PutDetail(r, id)
		default:
			return rs.DeleteDetail(r, id)
		}
	})
}

// dispatch is the strictly ordered per-request state machine shared by both
// endpoints. Every failure short-circuits into a response; nothing
// propagates past this boundary.
func (rs *Resource) dispatch(w http.ResponseWriter, r *http.Request, allowed []string, invoke func(verb string) *Response) {
	if !rs.auth.Authenticate(r) {
		emptyResponse(http.StatusUnauthorized).Write(w)
		return
	}

	if DetermineFormat(r) == FormatJSONP {
		if callback := r.URL.Query().Get("callback"); callback != "" && !ValidCallback(callback) {
			plainResponse(http.StatusBadRequest, "JSONP callback name is invalid.").Write(w)
			return
		}
	}

	verb := strings.ToLower(r.Method)
	if !slices.Contains(allowed, verb) {
		w.Header().Set("Allow", allowHeader(allowed))
		emptyResponse(http.StatusMethodNotAllowed).Write(w)
		return
	}

	invoke(verb).Write(w)
}

// allowHeader renders the permitted verb set for a 405 response.
func allowHeader(methods []string) string {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	return strings.Join(upper, ", ")
}
