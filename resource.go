package rest

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// DefaultLimit is the page size used when a Resource does not configure its
// own.
const DefaultLimit = 20

var defaultAllowedMethods = []string{"get", "post", "put", "delete"}

// Resource binds one entity kind to a list endpoint and a detail endpoint.
// It is immutable after construction and holds no per-request state, so a
// single Resource is safe for concurrently served requests without locking.
type Resource struct {
	name    string
	apiName string
	limit   int

	listFactory   Factory
	detailFactory Factory

	listMethods   []string
	detailMethods []string

	serializer Serializer
	auth       Authenticator
	collection Collection
}

type resourceConfig struct {
	name    string
	apiName string
	limit   int
	limitOK bool

	factory       Factory
	listFactory   Factory
	detailFactory Factory

	methods       []string
	listMethods   []string
	detailMethods []string

	serializer Serializer
	auth       Authenticator
	collection Collection
}

// ResourceOption configures a Resource under construction.
type ResourceOption func(*resourceConfig)

// WithName sets the resource name, used in generated route patterns and
// names. Required.
func WithName(name string) ResourceOption {
	return func(c *resourceConfig) { c.name = name }
}

// WithAPIName sets an optional namespace prefix for generated routes. It
// plays no role in dispatch.
func WithAPIName(apiName string) ResourceOption {
	return func(c *resourceConfig) { c.apiName = apiName }
}

// WithLimit sets the default page size for list requests.
func WithLimit(limit int) ResourceOption {
	return func(c *resourceConfig) { c.limit = limit; c.limitOK = true }
}

// WithRepresentation sets one factory for both endpoints.
func WithRepresentation(f Factory) ResourceOption {
	return func(c *resourceConfig) { c.factory = f }
}

// WithListRepresentation sets the factory for list output only.
func WithListRepresentation(f Factory) ResourceOption {
	return func(c *resourceConfig) { c.listFactory = f }
}

// WithDetailRepresentation sets the factory for detail output and request
// hydration only.
func WithDetailRepresentation(f Factory) ResourceOption {
	return func(c *resourceConfig) { c.detailFactory = f }
}

// WithAllowedMethods sets the permitted verbs for both endpoints.
func WithAllowedMethods(methods ...string) ResourceOption {
	return func(c *resourceConfig) { c.methods = methods }
}

// WithListAllowedMethods sets the permitted verbs for the list endpoint.
func WithListAllowedMethods(methods ...string) ResourceOption {
	return func(c *resourceConfig) { c.listMethods = methods }
}

// WithDetailAllowedMethods sets the permitted verbs for the detail endpoint.
func WithDetailAllowedMethods(methods ...string) ResourceOption {
	return func(c *resourceConfig) { c.detailMethods = methods }
}

// WithSerializer replaces the default serializer.
func WithSerializer(s Serializer) ResourceOption {
	return func(c *resourceConfig) { c.serializer = s }
}

// WithAuthentication sets the authentication gate. The default accepts all
// requests.
func WithAuthentication(a Authenticator) ResourceOption {
	return func(c *resourceConfig) { c.auth = a }
}

// WithCollection sets the backing store. Required.
func WithCollection(col Collection) ResourceOption {
	return func(c *resourceConfig) { c.collection = col }
}

// NewResource validates the configuration eagerly and returns an immutable
// Resource. All invariants are checked here, once — a construction-time
// mistake never turns into a request-time surprise.
func NewResource(opts ...ResourceOption) (*Resource, error) {
	var c resourceConfig
	for _, opt := range opts {
		opt(&c)
	}

	listFactory := c.listFactory
	if listFactory == nil {
		listFactory = c.factory
	}
	if listFactory == nil {
		return nil, configErrorf("no list representation supplied")
	}

	detailFactory := c.detailFactory
	if detailFactory == nil {
		detailFactory = c.factory
	}
	if detailFactory == nil {
		return nil, configErrorf("no detail representation supplied")
	}

	if c.name == "" {
		return nil, configErrorf("resource name is required")
	}
	if c.collection == nil {
		return nil, configErrorf("resource %q has no collection", c.name)
	}

	limit := DefaultLimit
	if c.limitOK {
		if c.limit < 0 {
			return nil, configErrorf("resource %q limit must not be negative, got %d", c.name, c.limit)
		}
		limit = c.limit
	}

	listMethods, err := resolveMethods(c.listMethods, c.methods)
	if err != nil {
		return nil, configErrorf("resource %q: %v", c.name, err)
	}
	detailMethods, err := resolveMethods(c.detailMethods, c.methods)
	if err != nil {
		return nil, configErrorf("resource %q: %v", c.name, err)
	}

	serializer := c.serializer
	if serializer == nil {
		serializer = DefaultSerializer{}
	} else if !slices.Contains(serializer.Formats(), FormatJSON) {
		return nil, configErrorf("resource %q serializer cannot encode %s", c.name, FormatJSON)
	}

	auth := c.auth
	if auth == nil {
		auth = NoAuthentication{}
	}

	return &Resource{
		name:          c.name,
		apiName:       c.apiName,
		limit:         limit,
		listFactory:   listFactory,
		detailFactory: detailFactory,
		listMethods:   listMethods,
		detailMethods: detailMethods,
		serializer:    serializer,
		auth:          auth,
		collection:    c.collection,
	}, nil
}

func resolveMethods(specific, generic []string) ([]string, error) {
	src := specific
	if src == nil {
		src = generic
	}
	if src == nil {
		return slices.Clone(defaultAllowedMethods), nil
	}

	methods := make([]string, 0, len(src))
	for _, m := range src {
		m = strings.ToLower(m)
		if !slices.Contains(defaultAllowedMethods, m) {
			return nil, fmt.Errorf("unsupported method %q", m)
		}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("empty allowed method set")
	}
	return methods, nil
}

// Name returns the resource name.
func (rs *Resource) Name() string { return rs.name }

// Limit returns the default page size.
func (rs *Resource) Limit() int { return rs.limit }

// ListAllowedMethods returns the verbs permitted on the list endpoint.
func (rs *Resource) ListAllowedMethods() []string { return slices.Clone(rs.listMethods) }

// DetailAllowedMethods returns the verbs permitted on the detail endpoint.
func (rs *Resource) DetailAllowedMethods() []string { return slices.Clone(rs.detailMethods) }

// Route is a logical endpoint as pure data: a stable name plus an
// http.ServeMux pattern. Binding routes into a router is the caller's job.
type Route struct {
	Name    string
	Pattern string
}

// Routes generates the two logical endpoints for this resource. The detail
// pattern carries an {id} path value.
func (rs *Resource) Routes() []Route {
	prefix := "/"
	if rs.apiName != "" {
		prefix += rs.apiName + "/"
	}
	return []Route{
		{Name: rs.name + "_dispatch_list", Pattern: prefix + rs.name + "/"},
		{Name: rs.name + "_dispatch_detail", Pattern: prefix + rs.name + "/{id}/"},
	}
}

// Register binds both endpoints onto mux. Patterns carry no method so that
// disallowed verbs reach the dispatcher and earn a 405 with an Allow
// header instead of the mux's own response.
func (rs *Resource) Register(mux *http.ServeMux) {
	routes := rs.Routes()
	mux.HandleFunc(routes[0].Pattern+"{$}", func(w http.ResponseWriter, r *http.Request) {
		rs.DispatchList(w, r)
	})
	mux.HandleFunc(routes[1].Pattern, func(w http.ResponseWriter, r *http.Request) {
		rs.DispatchDetail(w, r, r.PathValue("id"))
	})
}
