// Package rest is a resource-oriented HTTP API dispatch engine. A Resource
// binds one kind of persisted entity to a pair of logical endpoints (list
// and detail), negotiates the wire format independently of storage, and
// maps CRUD verbs onto a backing Collection with precise status-code
// semantics.
//
// The collaborators are narrow capability interfaces passed into the
// Resource at construction time: a Collection over the entities, a
// Representation factory that renders and hydrates them, a Serializer
// keyed by format token, and an Authenticator gate.
//
//	notes, err := rest.NewResource(
//	    rest.WithName("notes"),
//	    rest.WithRepresentation(newNote),
//	    rest.WithCollection(store),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	notes.Register(mux)
//
// Each request flows authenticate → negotiate format → method lookup →
// handler → serialize. All failures are converted to HTTP responses at
// the boundary; no error escapes the dispatcher.
//
// Middleware uses the standard func(http.Handler) http.Handler signature,
// so the entire Go middleware ecosystem works natively.
package rest
