package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/core"
)

// SQLiteHistory is a SQLite implementation of the HistoryRepository
// interface. Results are stored as JSON rows so the wire shape of a record,
// degraded ones included, survives a round trip unchanged.
type SQLiteHistory struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteHistory creates a new SQLite-backed history
func NewSQLiteHistory(dbPath string, logger *zap.Logger) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Insertion order is the only identity a result has, so the rowid
	// sequence doubles as the history order.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_path TEXT,
			result_json TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteHistory{
		db:     db,
		logger: logger,
	}, nil
}

// Append adds a result to the end of the history
func (h *SQLiteHistory) Append(ctx context.Context, result *core.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO analysis_history (image_path, result_json)
		VALUES (?, ?)
	`, result.ImagePath, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// All returns the history in insertion order
func (h *SQLiteHistory) All(ctx context.Context) ([]*core.AnalysisResult, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT result_json
		FROM analysis_history
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var results []*core.AnalysisResult
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		result := &core.AnalysisResult{}
		if err := json.Unmarshal([]byte(data), result); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return results, nil
}

// Stop closes the database connection
func (h *SQLiteHistory) Stop() {
	if err := h.db.Close(); err != nil {
		h.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
