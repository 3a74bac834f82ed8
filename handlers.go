package rest

import (
	"errors"
	"io"
	"mime"
	"net/http"
)

// The handler set. Each handler translates one (endpoint, verb) pair into
// a Response, touching only the Collection and Representation capabilities.
// Method membership is the dispatcher's concern, not the handlers'.

// GetList returns a bounds-checked page of the collection. The body echoes
// the requested limit and offset verbatim, even for an empty page.
func (rs *Resource) GetList(r *http.Request) *Response {
	offset, limit, err := resolveSlice(r.URL.Query(), rs.limit)
	if err != nil {
		return errorResponse(err)
	}

	reps, err := rs.collection.Slice(offset, limit)
	if err != nil {
		return errorResponse(err)
	}

	results := make([]Dict, 0, len(reps))
	for _, rep := range reps {
		results = append(results, rep.ToDict())
	}

	return rs.serialized(r, http.StatusOK, Dict{
		"limit":   limit,
		"offset":  offset,
		"results": results,
	})
}

// GetDetail returns one entity, or 410 when the id is not retrievable.
func (rs *Resource) GetDetail(r *http.Request, id string) *Response {
	rep, err := rs.collection.GetByID(id)
	if errors.Is(err, ErrNotFound) {
		return emptyResponse(http.StatusGone)
	}
	if err != nil {
		return errorResponse(err)
	}
	return rs.serialized(r, http.StatusOK, rep.ToDict())
}

// PostList creates a new entity from the request body: 201 with a Location
// header pointing at the new entity and the created entity as body.
func (rs *Resource) PostList(r *http.Request) *Response {
	rep, errResp := rs.hydrate(r)
	if errResp != nil {
		return errResp
	}

	saved, _, err := rs.collection.Save("", rep)
	if err != nil {
		return errorResponse(err)
	}

	resp := rs.serialized(r, http.StatusCreated, saved.ToDict())
	resp.Header = http.Header{"Location": {saved.ResourceURI()}}
	return resp
}

// PostDetail has no defined semantics: creating "inside" one entity is not
// an operation this engine models.
func (rs *Resource) PostDetail(_ *http.Request, _ string) *Response {
	return emptyResponse(http.StatusNotImplemented)
}

// PutDetail fully replaces the entity under id, creating it when absent:
// 201 with Location for a create, 204 with empty body for a replace.
func (rs *Resource) PutDetail(r *http.Request, id string) *Response {
	rep, errResp := rs.hydrate(r)
	if errResp != nil {
		return errResp
	}

	saved, created, err := rs.collection.Save(id, rep)
	if err != nil {
		return errorResponse(err)
	}

	if created {
		resp := emptyResponse(http.StatusCreated)
		resp.Header = http.Header{"Location": {saved.ResourceURI()}}
		return resp
	}
	return emptyResponse(http.StatusNoContent)
}

// DeleteDetail removes one entity, or 410 when the id is not retrievable.
func (rs *Resource) DeleteDetail(_ *http.Request, id string) *Response {
	removed, err := rs.collection.DeleteByID(id)
	if err != nil {
		return errorResponse(err)
	}
	if !removed {
		return emptyResponse(http.StatusGone)
	}
	return emptyResponse(http.StatusNoContent)
}

// DeleteList removes every entity the collection governs. Entities outside
// the collection's filter survive.
func (rs *Resource) DeleteList(_ *http.Request) *Response {
	if _, err := rs.collection.DeleteAll(); err != nil {
		return errorResponse(err)
	}
	return emptyResponse(http.StatusNoContent)
}

// hydrate decodes the request body and populates a fresh detail
// representation. Decode and validation failures both map to 400.
func (rs *Resource) hydrate(r *http.Request) (Representation, *Response) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errorResponse(Errorf(http.StatusBadRequest, "reading request body: %v", err))
	}

	d, err := rs.serializer.Decode(requestFormat(r), data)
	if err != nil {
		return nil, errorResponse(Errorf(http.StatusBadRequest, "decoding request body: %v", err))
	}

	rep := rs.detailFactory()
	if err := rep.PopulateFromDict(d); err != nil {
		return nil, errorResponse(Errorf(http.StatusBadRequest, "invalid entity: %v", err))
	}
	return rep, nil
}

// requestFormat resolves the format token of a request body from its
// Content-Type, defaulting to JSON.
func requestFormat(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return FormatJSON
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatJSON
	}
	return mediaType
}

// serialized encodes v for the request's negotiated format. A token the
// serializer does not recognize falls back to JSON rather than failing the
// request; JSONP output is wrapped in the caller-supplied callback.
func (rs *Resource) serialized(r *http.Request, status int, v any) *Response {
	format := DetermineFormat(r)

	data, err := rs.serializer.Encode(format, v)
	if err != nil {
		format = FormatJSON
		if data, err = rs.serializer.Encode(format, v); err != nil {
			return errorResponse(err)
		}
	}

	if format == FormatJSONP {
		callback := r.URL.Query().Get("callback")
		if callback == "" {
			callback = "callback"
		}
		data = append([]byte(callback+"("), append(data, ')')...)
	}

	return &Response{Status: status, ContentType: format, Body: data}
}
