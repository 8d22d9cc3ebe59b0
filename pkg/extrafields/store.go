package extrafields

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound reports that no record exists for a plugin type and site.
var ErrNotFound = errors.New("extrafields: record not found")

// Store reads configuration records.
type Store interface {
	Get(ctx context.Context, pluginType, siteID string) (Record, error)
}

// WritableStore persists records edited through the admin or CLI.
type WritableStore interface {
	Store
	Put(ctx context.Context, record Record) error
	Delete(ctx context.Context, pluginType, siteID string) error
	List(ctx context.Context) ([]Record, error)
}

// MemoryStore keeps records in memory. The zero value is not usable; call
// NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[Key]Record
	groups  []StyleGroup
}

var _ WritableStore = (*MemoryStore)(nil)

// NewMemoryStore seeds a store with records, validating each one.
func NewMemoryStore(records ...Record) (*MemoryStore, error) {
	store := &MemoryStore{
		records: make(map[Key]Record, len(records)),
		groups:  DefaultStyleGroups(),
	}
	for _, record := range records {
		if err := store.Put(context.Background(), record); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *MemoryStore) Get(_ context.Context, pluginType, siteID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[Key{PluginType: pluginType, SiteID: siteID}]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s@%s", ErrNotFound, pluginType, siteID)
	}
	return record, nil
}

func (s *MemoryStore) Put(_ context.Context, record Record) error {
	if err := record.Validate(s.groups); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Key()] = record
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, pluginType, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key{PluginType: pluginType, SiteID: siteID}
	if _, ok := s.records[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(s.records, key)
	return nil
}

// List returns records ordered by plugin type then site.
func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	SortRecords(out)
	return out, nil
}

// SortRecords orders records by plugin type then site.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].PluginType == records[j].PluginType {
			return records[i].SiteID < records[j].SiteID
		}
		return records[i].PluginType < records[j].PluginType
	})
}
