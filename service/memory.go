package service

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// MemoryService is a map-backed Service. Records are keyed by a
// configurable id field; creates without an id are assigned an
// auto-incremented one. Find supports field-equality queries via
// Params.Query. Safe for concurrent use.
type MemoryService struct {
	mu      sync.Mutex
	idField string
	nextID  int
	records map[string]Record
}

// NewMemoryService returns an empty MemoryService keyed by idField.
// An empty idField defaults to "id".
func NewMemoryService(idField string) *MemoryService {
	if idField == "" {
		idField = "id"
	}
	return &MemoryService{
		idField: idField,
		records: make(map[string]Record),
	}
}

func (m *MemoryService) Find(_ context.Context, params Params) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	for _, rec := range m.records {
		if matches(rec, params.Query) {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func (m *MemoryService) Get(_ context.Context, id string, _ Params) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	return clone(rec), nil
}

func (m *MemoryService) Create(_ context.Context, data Record, _ Params) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := clone(data)
	id, ok := rec[m.idField].(string)
	if !ok || id == "" {
		m.nextID++
		id = strconv.Itoa(m.nextID)
		rec[m.idField] = id
	}
	if _, exists := m.records[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrRecordExists, id)
	}
	m.records[id] = rec
	return clone(rec), nil
}

func (m *MemoryService) Update(_ context.Context, id string, data Record, _ Params) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	rec := clone(data)
	rec[m.idField] = id
	m.records[id] = rec
	return clone(rec), nil
}

func (m *MemoryService) Patch(_ context.Context, id string, data Record, _ Params) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	for k, v := range data {
		if k == m.idField {
			continue
		}
		rec[k] = v
	}
	return clone(rec), nil
}

func (m *MemoryService) Remove(_ context.Context, id string, _ Params) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	delete(m.records, id)
	return rec, nil
}

func matches(rec Record, query map[string]any) bool {
	for k, want := range query {
		got, ok := rec[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func clone(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
