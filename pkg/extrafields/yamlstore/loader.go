// Package yamlstore loads extra fields records from JSON or YAML documents and
// persists edits back to a single YAML file.
package yamlstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cascade/pkg/extrafields"
)

type documentFile struct {
	Records []extrafields.Record `json:"records" yaml:"records"`
}

// LoadFS walks fsys and loads every .json/.yaml/.yml document into a memory
// store. A nil fsys yields an empty store. Duplicate records across files are
// rejected.
func LoadFS(fsys fs.FS) (*extrafields.MemoryStore, error) {
	store, err := extrafields.NewMemoryStore()
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		return store, nil
	}

	seen := make(map[extrafields.Key]string)
	err = fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRecordFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("yamlstore: read %s: %w", path, err)
		}
		records, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, record := range records {
			key := record.Key()
			if previous, exists := seen[key]; exists {
				return fmt.Errorf("yamlstore: duplicate record %s (files %s and %s)", key, previous, path)
			}
			seen[key] = path
			if err := store.Put(context.Background(), record); err != nil {
				return fmt.Errorf("yamlstore: %s: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a JSON or YAML records document.
func Parse(data []byte, source string) ([]extrafields.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Records, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlstore: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc.Records, nil
}

// Marshal encodes records as a YAML document.
func Marshal(records []extrafields.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(documentFile{Records: records}); err != nil {
		return nil, fmt.Errorf("yamlstore: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlstore: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func isRecordFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
