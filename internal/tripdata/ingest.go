package tripdata

import (
	"context"
	"fmt"
	"strings"

	"tarediiran-industries.com/bikeshare-tools/internal/db"
)

// IngestTarget is satisfied by *db.Database.
type IngestTarget interface {
	db.DBTX
	db.CopyCapable
}

// unnamed leading CSV columns cannot be Postgres identifiers
const unnamedColumn = "row_index"

func IngestColumns(header []string) []string {
	columns := make([]string, len(header))
	for i, column := range header {
		column = strings.TrimSpace(column)
		if column == "" {
			column = unnamedColumn
			if i > 0 {
				column = fmt.Sprintf("%s_%d", unnamedColumn, i)
			}
		}
		columns[i] = column
	}
	return columns
}

// Ingest copies the city's CSV file into its Postgres table, creating the table when missing.
func Ingest(ctx context.Context, target IngestTarget, source CSVSource, city string) (int64, error) {
	path, err := source.Path(city)
	if err != nil {
		return 0, err
	}

	header, err := ReadCSVForColumnNames(path)
	if err != nil {
		return 0, fmt.Errorf("read header %s: %w", path, err)
	}
	columns := IngestColumns(header)
	tableName := CityTableName(city)

	if _, err := target.ExecContext(ctx, db.BuildCreateTextTableQuery(tableName, columns)); err != nil {
		return 0, fmt.Errorf("create %s: %w", tableName, err)
	}

	copied, err := target.CopyFrom(ctx, tableName, columns, path)
	if err != nil {
		return 0, fmt.Errorf("copy %s into %s: %w", path, tableName, err)
	}
	return copied, nil
}
