package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"goldenwine/errs"
)

// MemStore keeps documents as JSON blobs per collection. Good enough for
// tests and local development without a MongoDB.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]map[string]json.RawMessage)}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) Get(ctx context.Context, collection, id string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[collection][id]
	if !ok {
		return errs.NotFound(collection, id)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Persistence("get "+collection, err)
	}
	return nil
}

func (s *MemStore) Find(ctx context.Context, collection string, q Query, out any) error {
	s.mu.RLock()
	docs := make([]map[string]any, 0, len(s.data[collection]))
	for _, raw := range s.data[collection] {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.mu.RUnlock()
			return errs.Persistence("find "+collection, err)
		}
		if matches(doc, q.Filter) {
			docs = append(docs, doc)
		}
	}
	s.mu.RUnlock()

	if q.SortBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			less := compare(docs[i][q.SortBy], docs[j][q.SortBy]) < 0
			if q.Desc {
				return !less
			}
			return less
		})
	}
	if q.Limit > 0 && int64(len(docs)) > q.Limit {
		docs = docs[:q.Limit]
	}

	buf, err := json.Marshal(docs)
	if err != nil {
		return errs.Persistence("find "+collection, err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return errs.Persistence("decode "+collection, err)
	}
	return nil
}

func (s *MemStore) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return errs.Persistence("set "+collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]json.RawMessage)
	}
	s.data[collection][id] = raw
	return nil
}

func (s *MemStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", errs.Persistence("add "+collection, err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", errs.Persistence("add "+collection, err)
	}
	id := uuid.NewString()
	m["id"] = id
	buf, err := json.Marshal(m)
	if err != nil {
		return "", errs.Persistence("add "+collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]json.RawMessage)
	}
	s.data[collection][id] = buf
	return id, nil
}

func (s *MemStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[collection][id]
	if !ok {
		return errs.NotFound(collection, id)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errs.Persistence("update "+collection, err)
	}
	for k, v := range fields {
		doc[k] = normalize(v)
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return errs.Persistence("update "+collection, err)
	}
	s.data[collection][id] = buf
	return nil
}

func (s *MemStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return errs.NotFound(collection, id)
	}
	delete(s.data[collection], id)
	return nil
}

func matches(doc map[string]any, preds []Predicate) bool {
	for _, p := range preds {
		got, ok := doc[p.Field]
		if !ok {
			return false
		}
		c := compare(got, normalize(p.Value))
		switch p.Op {
		case OpEq:
			if c != 0 {
				return false
			}
		case OpGte:
			if c < 0 {
				return false
			}
		case OpLte:
			if c > 0 {
				return false
			}
		}
	}
	return true
}

// normalize round-trips a value through JSON so predicate values compare
// against decoded documents on equal footing (ints become float64, times
// become RFC3339 strings).
func normalize(v any) any {
	buf, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return v
	}
	return out
}

func compare(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	return 0
}
