// Package store provides persistence for saved charts.
//
// This package defines the chart storage interface with implementations
// for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// A saved chart is a named snapshot: the serialized spec plus the
// pipeline options that produced it. Both are stored as raw JSON so the
// store stays decoupled from the spec grammar; callers deserialize on
// the way out.
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "vegaline",
//	})
//
// Save and retrieve charts:
//
//	chart := store.NewChart("cpu usage", optionsJSON, specJSON)
//	if err := st.Save(ctx, chart); err != nil { ... }
//	saved, err := st.Get(ctx, chart.ID)
package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/vegaline/pkg/errors"
)

// Chart is a saved chart document.
type Chart struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	Options   json.RawMessage `bson:"options,omitempty" json:"options,omitempty"`
	Spec      json.RawMessage `bson:"spec" json:"spec"`
}

// NewChart creates a chart document with a fresh ID and timestamp.
func NewChart(name string, options, spec json.RawMessage) *Chart {
	return &Chart{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Options:   options,
		Spec:      spec,
	}
}

// Store is the interface for chart persistence backends.
type Store interface {
	// Save stores a chart, replacing any existing document with the same ID.
	Save(ctx context.Context, c *Chart) error

	// Get retrieves a chart by ID. A missing chart is a CHART_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Chart, error)

	// List returns all charts, newest first.
	List(ctx context.Context) ([]Chart, error)

	// Delete removes a chart by ID. A missing chart is a CHART_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory chart store for development and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]Chart
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]Chart)}
}

// Save stores a chart, replacing any existing document with the same ID.
func (s *MemoryStore) Save(ctx context.Context, c *Chart) error {
	if c.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "chart ID is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[c.ID] = *c
	return nil
}

// Get retrieves a chart by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.charts[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	return &c, nil
}

// List returns all charts, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Chart, 0, len(s.charts))
	for _, c := range s.charts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a chart by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	delete(s.charts, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
