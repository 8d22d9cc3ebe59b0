package config

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-cascade/pkg/extrafields"
	"github.com/goliatone/go-cascade/pkg/extrafields/sqlstore"
	"github.com/goliatone/go-cascade/pkg/extrafields/yamlstore"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore opens the configured record store. The closer releases
// database connections and is safe to call for every driver.
func (c Config) OpenStore(ctx context.Context) (extrafields.WritableStore, io.Closer, error) {
	switch c.StoreDriver {
	case StoreSQLite:
		store, err := sqlstore.Open(ctx, c.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case StoreYAML:
		store, err := yamlstore.Open(c.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil
	case StoreMemory:
		store, err := extrafields.NewMemoryStore()
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("config: unknown store %q", c.StoreDriver)
	}
}
