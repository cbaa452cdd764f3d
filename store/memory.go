package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by the test suite and for running
// the server without Firestore credentials. It honours the same contract:
// generated ids, equality filters, updatedAt stamping, set-union merges.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

func (s *MemoryStore) Insert(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		if _, ok := v.(serverNow); ok {
			v = time.Now()
		}
		doc[k] = v
	}
	now := time.Now()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id := uuid.NewString()
	col := s.collections[collection]
	if col == nil {
		col = make(map[string]map[string]any)
		s.collections[collection] = col
	}
	col[id] = doc
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return snapshotOf(id, doc), nil
}

func (s *MemoryStore) FindOne(_ context.Context, collection string, filters ...Filter) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, doc := range s.collections[collection] {
		if matches(doc, filters) {
			return snapshotOf(id, doc), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindAll(_ context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snaps []Snapshot
	for id, doc := range s.collections[collection] {
		if matches(doc, filters) {
			snaps = append(snaps, *snapshotOf(id, doc))
		}
	}
	return snaps, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, ops ...Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(collection, id, ops)
}

func (s *MemoryStore) Mutate(_ context.Context, collection, id string, fn func(snap *Snapshot) ([]Op, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("store: %s/%s not found", collection, id)
	}
	ops, err := fn(snapshotOf(id, doc))
	if err != nil {
		return err
	}
	return s.apply(collection, id, ops)
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) apply(collection, id string, ops []Op) error {
	doc, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("store: %s/%s not found", collection, id)
	}
	for _, op := range ops {
		switch op.kind {
		case opSet:
			doc[op.Field] = op.Value
		case opUnion:
			doc[op.Field] = unionInto(doc[op.Field], op.Value.([]string))
		case opIncrement:
			doc[op.Field] = asInt64(doc[op.Field]) + op.Value.(int64)
		case opNow:
			doc[op.Field] = time.Now()
		}
	}
	doc["updatedAt"] = time.Now()
	return nil
}

func snapshotOf(id string, doc map[string]any) *Snapshot {
	return &Snapshot{
		ID: id,
		decode: func(out any) error {
			raw, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			return json.Unmarshal(raw, out)
		},
	}
}

func matches(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if doc[f.Field] != f.Value {
			return false
		}
	}
	return true
}

func unionInto(existing any, values []string) []string {
	merged := toStrings(existing)
	seen := make(map[string]bool, len(merged))
	for _, v := range merged {
		seen[v] = true
	}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}
	return merged
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

func asInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
