package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jchantrell/winextract/internal/cache"
	"github.com/jchantrell/winextract/internal/database"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Query the metadata catalog directly from command line",
	Long: `Query allows you to execute SQL queries against the catalog written by
extract, list available tables, or show table schemas.

Without --catalog the catalog belonging to --archive is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		listTables, err := cmd.Flags().GetBool("tables")
		if err != nil {
			return fmt.Errorf("failed to get tables flag: %w", err)
		}
		schemaTable, err := cmd.Flags().GetString("schema")
		if err != nil {
			return fmt.Errorf("failed to get schema flag: %w", err)
		}

		path, err := catalogPath()
		if err != nil {
			return err
		}
		slog.Debug("Query parameters",
			"catalog", path,
			"list-tables", listTables,
			"schema", schemaTable)

		db, err := database.NewDatabase(database.ReadOnlyDatabaseOptions(path))
		if err != nil {
			return fmt.Errorf("%w (run extract first)", err)
		}
		defer db.Close()

		if listTables {
			tables, err := db.ListTables(ctx)
			if err != nil {
				return err
			}

			fmt.Println("Available tables:")
			for _, name := range tables {
				fmt.Printf("  %s\n", name)
			}
			return nil
		}

		if schemaTable != "" {
			return printSchema(ctx, db, schemaTable)
		}

		if len(args) > 0 {
			return runQuery(ctx, db, args[0])
		}

		return fmt.Errorf("no query provided, use --tables to list tables or --schema <table> to show schema")
	},
}

// catalogPath returns the configured catalog, or the default cache location
// for the configured archive
func catalogPath() (string, error) {
	if cfg.Catalog != "" {
		return cfg.Catalog, nil
	}

	a, err := openArchive()
	if err != nil {
		return "", err
	}
	g, err := a.DecodeGeneral()
	if err != nil {
		return "", fmt.Errorf("reading game metadata: %w", err)
	}
	return cache.CacheManager().GetCatalogPath(g.DisplayName, g.Timestamp), nil
}

func printSchema(ctx context.Context, db *database.Database, table string) error {
	tables, err := db.ListTables(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(tables, table) {
		return fmt.Errorf("unknown table '%s'", table)
	}

	slog.Debug("Getting table schema", "table", table)

	rows, err := db.Query(ctx, `SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, table)
	if err != nil {
		return fmt.Errorf("getting schema for table %s: %w", table, err)
	}
	defer rows.Close()

	fmt.Printf("Schema for table '%s':\n", table)
	fmt.Printf("%-20s %-15s %-10s %-10s %-10s\n", "Column", "Type", "NotNull", "Default", "Primary")
	fmt.Println(strings.Repeat("-", 70))

	yesNo := map[bool]string{false: "NO", true: "YES"}
	for rows.Next() {
		var name, dataType string
		var notNull, primaryKey int
		var defaultValue any

		if err := rows.Scan(&name, &dataType, &notNull, &defaultValue, &primaryKey); err != nil {
			return fmt.Errorf("scanning schema row: %w", err)
		}

		defaultStr := "NULL"
		if defaultValue != nil {
			defaultStr = fmt.Sprintf("%v", defaultValue)
		}

		fmt.Printf("%-20s %-15s %-10s %-10s %-10s\n",
			name, dataType, yesNo[notNull != 0], defaultStr, yesNo[primaryKey != 0])
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating schema: %w", err)
	}
	return nil
}

func runQuery(ctx context.Context, db *database.Database, query string) error {
	slog.Debug("Executing SQL query", "query", query)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("getting column names: %w", err)
	}

	fmt.Println(strings.Join(columns, "\t"))
	underline := make([]string, len(columns))
	for i, col := range columns {
		underline[i] = strings.Repeat("-", len(col))
	}
	fmt.Println(strings.Join(underline, "\t"))

	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	cells := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}

		for i, val := range values {
			switch v := val.(type) {
			case nil:
				cells[i] = "NULL"
			case []byte:
				cells[i] = string(v)
			default:
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Println(strings.Join(cells, "\t"))
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("tables", false, "List available tables")
	queryCmd.Flags().String("schema", "", "Show schema for specified table")
}
