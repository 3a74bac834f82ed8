package rest

// Dict is the format-agnostic structured form of an entity: field name to
// scalar or nested value. Serializers own key ordering on the wire
// (encoding/json and yaml.v3 both emit map keys sorted, so output stays
// deterministic).
type Dict map[string]any

// Representation is the render/hydrate adapter between one persisted entity
// and its structured form. A Resource holds representation factories, never
// live instances — instances are built per request and discarded with it.
type Representation interface {
	// ToDict renders the entity as format-agnostic structured data.
	ToDict() Dict

	// ResourceURI returns the canonical URI of the entity.
	ResourceURI() string

	// PopulateFromDict hydrates the representation from decoded request
	// data. A non-nil error marks the data invalid and maps to 400.
	PopulateFromDict(d Dict) error
}

// Factory constructs a blank Representation, ready to be populated.
type Factory func() Representation

// Collection is the persisted backing store for a resource. The engine
// assumes nothing about storage beyond this contract; a single Save or
// delete is expected to be atomic and immediately visible to subsequent
// reads in-process. Implementations may scope every operation to a filtered
// view of the underlying data (an "active" predicate, a tenant, ...): the
// engine never looks behind the filter.
type Collection interface {
	// Count reports how many entities the collection governs.
	Count() (int, error)

	// Slice returns entities in collection order, starting at offset.
	// A limit of 0 means no limit. An offset at or past the end yields an
	// empty slice, not an error.
	Slice(offset, limit int) ([]Representation, error)

	// GetByID returns the entity stored under id, or ErrNotFound.
	GetByID(id string) (Representation, error)

	// Save stores rep under id, assigning a fresh id when id is empty.
	// It returns the stored representation and whether a new entity was
	// created rather than replaced.
	Save(id string, rep Representation) (Representation, bool, error)

	// DeleteByID removes the entity stored under id, reporting whether
	// anything was removed.
	DeleteByID(id string) (bool, error)

	// DeleteAll removes every entity the collection governs and returns
	// the number removed. Entities outside the collection's filter are
	// untouched.
	DeleteAll() (int, error)
}
