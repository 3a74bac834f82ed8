package rest

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator decides whether a request may proceed to dispatch. A false
// return yields 401 with an empty body before any handler runs.
type Authenticator interface {
	Authenticate(r *http.Request) bool
}

// NoAuthentication accepts every request. It is the default gate.
type NoAuthentication struct{}

// Authenticate always returns true.
func (NoAuthentication) Authenticate(*http.Request) bool { return true }

// PrincipalStore checks a username/password pair against an external
// principal source.
type PrincipalStore interface {
	Check(username, password string) bool
}

// BasicAuthentication parses an Authorization: Basic header and delegates
// the credential check to a PrincipalStore.
type BasicAuthentication struct {
	Store PrincipalStore
}

// Authenticate validates the request's basic credentials.
func (a BasicAuthentication) Authenticate(r *http.Request) bool {
	username, password, ok := r.BasicAuth()
	if !ok || a.Store == nil {
		return false
	}
	return a.Store.Check(username, password)
}

// StaticPrincipals is an in-memory PrincipalStore mapping username to
// password. Comparison is constant time.
type StaticPrincipals map[string]string

// Check reports whether the pair matches a stored principal.
func (p StaticPrincipals) Check(username, password string) bool {
	want, ok := p[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
}

// JWTAuthentication validates an Authorization: Bearer token signed with
// an HMAC key.
type JWTAuthentication struct {
	Key []byte
}

// Authenticate parses and verifies the bearer token.
func (a JWTAuthentication) Authenticate(r *http.Request) bool {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return false
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.Key, nil
	})
	return err == nil && tok.Valid
}
