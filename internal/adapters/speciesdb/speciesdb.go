package speciesdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileRepository serves the species database from a JSON file on disk.
//
// The file maps fossil-type labels to lists of species names. It is a
// collaborator resource separate from the classifier's built-in suggestion
// table, and is loaded once on first use. A missing or malformed file is a
// setup error reported to the caller, not worked around.
type FileRepository struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
	db map[string][]string
}

// NewFileRepository creates a repository backed by the JSON file at path
func NewFileRepository(path string, logger *zap.Logger) *FileRepository {
	return &FileRepository{
		path:   path,
		logger: logger,
	}
}

// List returns the full database keyed by fossil type
func (r *FileRepository) List(ctx context.Context) (map[string][]string, error) {
	db, err := r.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(db))
	for fossilType, species := range db {
		out[fossilType] = append([]string(nil), species...)
	}
	return out, nil
}

// Search returns the entries whose fossil type or any species name contains
// the query, case-insensitively. Matching types are returned with all their
// species; otherwise only the matching species are kept.
func (r *FileRepository) Search(ctx context.Context, query string) (map[string][]string, error) {
	db, err := r.load()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}

	matches := make(map[string][]string)
	for fossilType, species := range db {
		if strings.Contains(strings.ToLower(fossilType), q) {
			matches[fossilType] = append([]string(nil), species...)
			continue
		}
		for _, name := range species {
			if strings.Contains(strings.ToLower(name), q) {
				matches[fossilType] = append(matches[fossilType], name)
			}
		}
	}
	return matches, nil
}

func (r *FileRepository) load() (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species database: %w", err)
	}

	db := make(map[string][]string)
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse species database: %w", err)
	}

	r.logger.Debug("Loaded species database",
		zap.String("path", r.path),
		zap.Int("fossil_types", len(db)))

	r.db = db
	return db, nil
}
