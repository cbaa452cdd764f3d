// Package store is a thin generic layer over the document database. It
// exposes the small set of operations the services need: insert with a
// generated identifier, lookups by id and by equality filters, and partial
// updates built from explicit ops. Every write stamps updatedAt with the
// store's clock; I/O failures propagate to the caller unmodified.
package store

import "context"

// serverNow marks a field to be filled with the store's server-side clock.
type serverNow struct{}

// ServerNow is the sentinel value for "the store's current time". It is
// valid both in Insert field maps and as a Now op target.
var ServerNow = serverNow{}

// Filter is an equality predicate on a single field.
type Filter struct {
	Field string
	Value any
}

// Where builds an equality filter.
func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

type opKind int

const (
	opSet opKind = iota
	opUnion
	opIncrement
	opNow
)

// Op is one explicit mutation of a partial update. The distinction between
// Set (assign verbatim) and Union (deduplicated set-union merge) is part of
// the API contract, not an implementation detail.
type Op struct {
	Field string
	Value any
	kind  opKind
}

// Set assigns a field verbatim, replacing any stored value.
func Set(field string, value any) Op {
	return Op{Field: field, Value: value, kind: opSet}
}

// Union merges values into a stored string list, keeping the deduplicated
// union. Order of the resulting list is not significant.
func Union(field string, values ...string) Op {
	return Op{Field: field, Value: values, kind: opUnion}
}

// Increment adds n to a stored numeric field.
func Increment(field string, n int64) Op {
	return Op{Field: field, Value: n, kind: opIncrement}
}

// Now stamps a field with the store's server-side clock.
func Now(field string) Op {
	return Op{Field: field, Value: ServerNow, kind: opNow}
}

// Snapshot is a single record read from a collection.
type Snapshot struct {
	ID     string
	decode func(out any) error
}

// Decode unmarshals the record's fields into out.
func (s *Snapshot) Decode(out any) error {
	return s.decode(out)
}

// Store is the record-store contract shared by the Firestore backend and the
// in-memory backend used in tests.
type Store interface {
	// Insert creates a record with a generated identifier, stamping
	// createdAt and updatedAt with the server clock.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Get returns the record with the given id, or nil when absent.
	Get(ctx context.Context, collection, id string) (*Snapshot, error)

	// FindOne returns the first record matching all filters, or nil when
	// nothing matches.
	FindOne(ctx context.Context, collection string, filters ...Filter) (*Snapshot, error)

	// FindAll returns every record matching all filters.
	FindAll(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)

	// Update applies a partial update; unspecified fields are untouched.
	// An updatedAt server-clock stamp is always appended.
	Update(ctx context.Context, collection, id string, ops ...Op) error

	// Mutate runs a transactional read-modify-write: fn receives the
	// current record and returns the ops to apply atomically against it.
	Mutate(ctx context.Context, collection, id string, fn func(snap *Snapshot) ([]Op, error)) error

	// Delete removes a record. Only the connectivity probe uses it.
	Delete(ctx context.Context, collection, id string) error
}
