package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/core"
)

// MySQLHistory is a MySQL implementation of the HistoryRepository interface,
// for deployments that collect results from several analyzer hosts into one
// shared table. Same JSON-row scheme as the SQLite backend.
type MySQLHistory struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLHistory creates a new MySQL-backed history
func NewMySQLHistory(dsn string, logger *zap.Logger) (*MySQLHistory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_history (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			image_path VARCHAR(1024),
			result_json MEDIUMTEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLHistory{
		db:     db,
		logger: logger,
	}, nil
}

// Append adds a result to the end of the history
func (h *MySQLHistory) Append(ctx context.Context, result *core.AnalysisResult) error {
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
func (h *MySQLHistory) All(ctx context.Context) ([]*core.AnalysisResult, error) {
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
func (h *MySQLHistory) Stop() {
	if err := h.db.Close(); err != nil {
		h.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
