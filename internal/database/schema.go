package database

import (
	"context"
	"fmt"
	"strings"
)

// SchemaProgressCallback is called during schema creation to report progress
type SchemaProgressCallback func(current int, total int, description string)

// TableSchema describes one catalog table
type TableSchema struct {
	Name       string
	Columns    []string // column definitions, name first
	PrimaryKey []string
}

// ColumnNames returns the bare column names in definition order
func (t *TableSchema) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i], _, _ = strings.Cut(col, " ")
	}
	return names
}

// Catalog tables, one per decoded record kind
var (
	GeneralTable = TableSchema{
		Name: "general",
		Columns: []string{
			"name TEXT", "display_name TEXT", "filename TEXT", "config TEXT",
			"version TEXT", "game_id INTEGER", "debug INTEGER",
			"window_width INTEGER", "window_height INTEGER", "info INTEGER",
			"license_md5 TEXT", "license_crc32 INTEGER", "timestamp INTEGER",
			"active_targets INTEGER", "steam_app_id INTEGER", "numbers TEXT",
		},
	}

	OptionsTable = TableSchema{
		Name:       "options",
		Columns:    []string{"_index INTEGER", "name TEXT", "value TEXT"},
		PrimaryKey: []string{"_index"},
	}

	AtlasTable = TableSchema{
		Name: "atlas",
		Columns: []string{
			"_index INTEGER", "x INTEGER", "y INTEGER", "width INTEGER", "height INTEGER",
			"render_x INTEGER", "render_y INTEGER", "bounding_x INTEGER", "bounding_y INTEGER",
			"bounding_width INTEGER", "bounding_height INTEGER", "page INTEGER",
		},
		PrimaryKey: []string{"_index"},
	}

	PagesTable = TableSchema{
		Name:       "pages",
		Columns:    []string{"_index INTEGER", "image_addr INTEGER", "width INTEGER", "height INTEGER"},
		PrimaryKey: []string{"_index"},
	}

	SpritesTable = TableSchema{
		Name: "sprites",
		Columns: []string{
			"_index INTEGER", "name TEXT NOT NULL", "width INTEGER", "height INTEGER",
			"margin_left INTEGER", "margin_right INTEGER", "margin_bottom INTEGER", "margin_top INTEGER",
			"bbox_mode INTEGER", "sep_masks INTEGER", "origin_x INTEGER", "origin_y INTEGER",
			"frame_count INTEGER",
		},
		PrimaryKey: []string{"_index"},
	}

	SoundsTable = TableSchema{
		Name: "sounds",
		Columns: []string{
			"_index INTEGER", "name TEXT NOT NULL", "type TEXT", "file TEXT", "flags INTEGER",
			"volume REAL", "pitch REAL", "group_id INTEGER", "audio_id INTEGER",
			"external INTEGER", "size INTEGER",
		},
		PrimaryKey: []string{"_index"},
	}

	FontsTable = TableSchema{
		Name: "fonts",
		Columns: []string{
			"_index INTEGER", "name TEXT NOT NULL", "system_name TEXT", "em_size REAL",
			"bold INTEGER", "italic INTEGER", "range_start INTEGER", "range_end INTEGER",
			"charset INTEGER", "antialiasing INTEGER", "scale_x REAL", "scale_y REAL",
			"glyph_count INTEGER",
		},
		PrimaryKey: []string{"_index"},
	}

	GlyphsTable = TableSchema{
		Name: "glyphs",
		Columns: []string{
			"font TEXT NOT NULL", "_index INTEGER", "char INTEGER",
			"x INTEGER", "y INTEGER", "width INTEGER", "height INTEGER",
		},
		PrimaryKey: []string{"font", "_index"},
	}

	BackgroundsTable = TableSchema{
		Name: "backgrounds",
		Columns: []string{
			"_index INTEGER", "name TEXT NOT NULL", "tile_width INTEGER", "tile_height INTEGER",
			"margin_x INTEGER", "margin_y INTEGER", "columns INTEGER", "rows INTEGER",
			"items_per_tile INTEGER", "tile_count INTEGER", "tile_ids TEXT",
		},
		PrimaryKey: []string{"_index"},
	}
)

// Tables lists every catalog table in creation order
var Tables = []*TableSchema{
	&GeneralTable, &OptionsTable, &AtlasTable, &PagesTable, &SpritesTable,
	&SoundsTable, &FontsTable, &GlyphsTable, &BackgroundsTable,
}

// DDLManager handles schema creation
type DDLManager struct {
	db *Database
}

// NewDDLManager creates a new DDL manager
func NewDDLManager(db *Database) *DDLManager {
	return &DDLManager{db: db}
}

// GenerateTableDDL generates CREATE TABLE SQL for a given table schema
func (dm *DDLManager) GenerateTableDDL(table *TableSchema) (string, error) {
	if table == nil {
		return "", fmt.Errorf("table schema cannot be nil")
	}

	if table.Name == "" {
		return "", fmt.Errorf("table name cannot be empty")
	}

	if len(table.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", table.Name)
	}

	columns := make([]string, 0, len(table.Columns)+1)
	for _, col := range table.Columns {
		name, def, _ := strings.Cut(col, " ")
		columns = append(columns, strings.TrimSpace(quoteSQLIdentifier(name)+" "+def))
	}

	if len(table.PrimaryKey) > 0 {
		quoted := make([]string, len(table.PrimaryKey))
		for i, k := range table.PrimaryKey {
			quoted[i] = quoteSQLIdentifier(k)
		}
		columns = append(columns, "PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		quoteSQLIdentifier(table.Name),
		strings.Join(columns, ",\n    "))

	return ddl, nil
}

// CreateSchemas drops and recreates the given tables in a single transaction
func (dm *DDLManager) CreateSchemas(ctx context.Context, tables []*TableSchema, progressCallback SchemaProgressCallback) error {
	tx, err := dm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for i, table := range tables {
		ddl, err := dm.GenerateTableDDL(table)
		if err != nil {
			return fmt.Errorf("generating DDL for %s: %w", table.Name, err)
		}

		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteSQLIdentifier(table.Name)); err != nil {
			return fmt.Errorf("dropping table %s: %w", table.Name, err)
		}
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating table %s: %w", table.Name, err)
		}

		if progressCallback != nil {
			progressCallback(i+1, len(tables), table.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

// quoteSQLIdentifier quotes SQL identifiers to prevent conflicts with reserved words
func quoteSQLIdentifier(identifier string) string {
	// In SQLite, identifiers can be quoted with double quotes
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
