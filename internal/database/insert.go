package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// BulkInserter handles efficient batch insertion of catalog rows
type BulkInserter struct {
	db        *Database
	batchSize int
}

// BulkInsertOptions configures bulk insertion behavior
type BulkInsertOptions struct {
	// BatchSize determines how many rows to insert per transaction
	BatchSize int
}

// DefaultBulkInsertOptions returns sensible defaults for bulk insertion
func DefaultBulkInsertOptions() *BulkInsertOptions {
	return &BulkInsertOptions{
		BatchSize: 1000,
	}
}

// NewBulkInserter creates a new bulk inserter with the given database and options
func NewBulkInserter(db *Database, options *BulkInsertOptions) *BulkInserter {
	if options == nil {
		options = DefaultBulkInsertOptions()
	}

	return &BulkInserter{
		db:        db,
		batchSize: max(options.BatchSize, 1),
	}
}

// TableData holds rows for a single table. Each row carries one value per
// schema column, in column order.
type TableData struct {
	Schema *TableSchema
	Rows   [][]any
}

// InsertTableData performs bulk insertion of table data with transaction batching
func (bi *BulkInserter) InsertTableData(ctx context.Context, tableData *TableData) error {
	if tableData == nil {
		return fmt.Errorf("table data cannot be nil")
	}

	if tableData.Schema == nil {
		return fmt.Errorf("table schema cannot be nil")
	}

	if len(tableData.Rows) == 0 {
		slog.Debug("No rows to insert", "table", tableData.Schema.Name)
		return nil
	}

	insertSQL := bi.generateInsertSQL(tableData.Schema)
	width := len(tableData.Schema.Columns)

	for i := 0; i < len(tableData.Rows); i += bi.batchSize {
		end := min(i+bi.batchSize, len(tableData.Rows))
		batch := tableData.Rows[i:end]

		if err := bi.insertBatch(ctx, insertSQL, width, batch); err != nil {
			return fmt.Errorf("inserting batch %d-%d for table %s: %w", i, end-1, tableData.Schema.Name, err)
		}
	}

	slog.Debug("Inserted rows", "table", tableData.Schema.Name, "rows", len(tableData.Rows))
	return nil
}

// generateInsertSQL creates the INSERT SQL statement for a table
func (bi *BulkInserter) generateInsertSQL(schema *TableSchema) string {
	names := schema.ColumnNames()
	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteSQLIdentifier(name)
		placeholders[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteSQLIdentifier(schema.Name),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
}

// insertBatch inserts a single batch of rows within a transaction
func (bi *BulkInserter) insertBatch(ctx context.Context, insertSQL string, width int, batch [][]any) error {
	// Start transaction
	tx, err := bi.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	// Prepare statement
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range batch {
		if len(row) != width {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), width)
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
