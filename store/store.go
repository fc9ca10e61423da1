// Package store is the local document store behind the POS: MongoDB in
// production, an in-memory double in tests. Documents are the models structs;
// filters address fields by their json tag names (kept identical to the bson
// tags so both backends match the same documents).
package store

import "context"

// Filter operators.
const (
	OpEq  = "eq"
	OpGte = "gte"
	OpLte = "lte"
)

type Predicate struct {
	Field string
	Op    string
	Value any
}

func Eq(field string, v any) Predicate  { return Predicate{Field: field, Op: OpEq, Value: v} }
func Gte(field string, v any) Predicate { return Predicate{Field: field, Op: OpGte, Value: v} }
func Lte(field string, v any) Predicate { return Predicate{Field: field, Op: OpLte, Value: v} }

type Query struct {
	Filter []Predicate
	SortBy string
	Desc   bool
	Limit  int64
}

// Store is the persistence contract the services depend on.
type Store interface {
	// Get loads the document with the given id into out (a struct pointer).
	Get(ctx context.Context, collection, id string, out any) error
	// Find loads all documents matching q into out (a slice pointer).
	Find(ctx context.Context, collection string, q Query, out any) error
	// Set upserts the full document under id.
	Set(ctx context.Context, collection, id string, doc any) error
	// Add inserts doc under a freshly generated id and returns it.
	Add(ctx context.Context, collection string, doc any) (string, error)
	// Update applies a partial $set-style update to the document with id.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document with id.
	Delete(ctx context.Context, collection, id string) error
}
