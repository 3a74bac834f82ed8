package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dictRep is a minimal pass-through representation for exercising
// collections without an entity type.
type dictRep struct{ d Dict }

func newDictRep() Representation { return &dictRep{} }

func (r *dictRep) ToDict() Dict { return r.d }

func (r *dictRep) ResourceURI() string {
	id, _ := r.d["id"].(string)
	return "/items/" + id + "/"
}

func (r *dictRep) PopulateFromDict(d Dict) error {
	r.d = d
	return nil
}

func activeFilter(d Dict) bool {
	active, _ := d["active"].(bool)
	return active
}

func newSeededMemory(t *testing.T) *MemoryCollection {
	t.Helper()

	mc := NewMemoryCollection(newDictRep, WithFilter(activeFilter))
	mc.Load(
		Dict{"id": "1", "name": "one", "active": true},
		Dict{"id": "2", "name": "two", "active": true},
		Dict{"id": "3", "name": "three", "active": true},
		Dict{"id": "4", "name": "four", "active": false},
	)
	return mc
}

func TestMemoryCollection_count_honors_filter(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)
	n, err := mc.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMemoryCollection_slice(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)

	tests := map[string]struct {
		offset, limit int
		wantNames     []string
	}{
		"full":          {offset: 0, limit: 0, wantNames: []string{"one", "two", "three"}},
		"page":          {offset: 1, limit: 1, wantNames: []string{"two"}},
		"tail":          {offset: 1, limit: 0, wantNames: []string{"two", "three"}},
		"past the end":  {offset: 10, limit: 5, wantNames: nil},
		"limit clamped": {offset: 2, limit: 10, wantNames: []string{"three"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reps, err := mc.Slice(tc.offset, tc.limit)
			require.NoError(t, err)

			var names []string
			for _, rep := range reps {
				names = append(names, rep.ToDict()["name"].(string))
			}
			assert.Equal(t, tc.wantNames, names)
		})
	}
}

func TestMemoryCollection_get_by_id(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)

	rep, err := mc.GetByID("2")
	require.NoError(t, err)
	assert.Equal(t, "two", rep.ToDict()["name"])

	_, err = mc.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Stored but outside the filter: indistinguishable from absent.
	_, err = mc.GetByID("4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCollection_save(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)

	rep := &dictRep{d: Dict{"name": "five", "active": true}}
	saved, created, err := mc.Save("", rep)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, saved.ToDict()["id"])

	n, err := mc.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// Replacing keeps the count and the insertion slot.
	id := saved.ToDict()["id"].(string)
	_, created, err = mc.Save(id, &dictRep{d: Dict{"name": "five-b", "active": true}})
	require.NoError(t, err)
	assert.False(t, created)

	n, err = mc.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := mc.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "five-b", got.ToDict()["name"])
}

func TestMemoryCollection_save_over_filtered_row_creates(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)

	// id 4 is stored but hidden by the filter, so overwriting it is a
	// create from the collection's point of view.
	_, err := mc.GetByID("4")
	require.ErrorIs(t, err, ErrNotFound)

	saved, created, err := mc.Save("4", &dictRep{d: Dict{"name": "four-b", "active": true}})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "four-b", saved.ToDict()["name"])

	n, err := mc.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := mc.GetByID("4")
	require.NoError(t, err)
	assert.Equal(t, "four-b", got.ToDict()["name"])
}

func TestMemoryCollection_delete_by_id(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)

	removed, err := mc.DeleteByID("1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = mc.DeleteByID("1")
	require.NoError(t, err)
	assert.False(t, removed)

	// A filtered-out row cannot be deleted through the collection.
	removed, err = mc.DeleteByID("4")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryCollection_delete_all_leaves_filtered_rows(t *testing.T) {
	t.Parallel()

	mc := newSeededMemory(t)

	n, err := mc.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := mc.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The inactive row survived underneath the filter.
	assert.Len(t, mc.rows, 1)
	assert.Contains(t, mc.rows, "4")
}

func TestMemoryCollection_save_does_not_alias_caller_dict(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollection(newDictRep)

	d := Dict{"name": "one"}
	saved, _, err := mc.Save("x", &dictRep{d: d})
	require.NoError(t, err)

	d["name"] = "mutated"
	assert.Equal(t, "one", saved.ToDict()["name"])

	got, err := mc.GetByID("x")
	require.NoError(t, err)
	assert.Equal(t, "one", got.ToDict()["name"])
}
