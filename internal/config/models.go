package config

// HistoryConfig represents the configuration for the history backend
type HistoryConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// ExportConfig represents the configuration for result export
type ExportConfig struct {
	Format string
	Output string
}

// BatchConfig represents the configuration for batch analysis
type BatchConfig struct {
	SkipDuplicates bool
}

// DatabaseConfig represents the configuration for the species database
type DatabaseConfig struct {
	Path string
}

// GetHistory returns the history configuration
func (c *Config) GetHistory() HistoryConfig {
	return HistoryConfig{
		Type:       c.GetString("history.type"),
		SQLitePath: c.GetString("history.sqlite_path"),
		MySQLDSN:   c.GetString("history.mysql_dsn"),
	}
}

// GetExport returns the export configuration
func (c *Config) GetExport() ExportConfig {
	return ExportConfig{
		Format: c.GetString("export.format"),
		Output: c.GetString("export.output"),
	}
}

// GetBatch returns the batch analysis configuration
func (c *Config) GetBatch() BatchConfig {
	return BatchConfig{
		SkipDuplicates: c.GetBool("batch.skip_duplicates"),
	}
}

// GetDatabase returns the species database configuration
func (c *Config) GetDatabase() DatabaseConfig {
	return DatabaseConfig{
		Path: c.GetString("database.path"),
	}
}
