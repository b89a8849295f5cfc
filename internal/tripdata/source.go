package tripdata

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"tarediiran-industries.com/bikeshare-tools/internal/db"
)

// Source yields the unfiltered trip table of a city.
type Source interface {
	LoadCity(ctx context.Context, city string) (*Table, error)
}

// CSVSource reads <Dir>/<CityData[city]>.
type CSVSource struct {
	Dir string
}

func (source CSVSource) Path(city string) (string, error) {
	fileName, ok := CityData[city]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return filepath.Join(source.Dir, fileName), nil
}

func (source CSVSource) LoadCity(ctx context.Context, city string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := source.Path(city)
	if err != nil {
		return nil, err
	}

	header, records, err := ReadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return BuildTable(city, header, records)
}

// ReadCSV returns the header row and all data rows of a CSV file.
func ReadCSV(filePath string) ([]string, [][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty file")
		}
		return nil, nil, err
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, row)
	}
	return headers, records, nil
}

// ReadCSVForColumnNames returns only the header row.
func ReadCSVForColumnNames(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, err
	}

	return headers, nil
}

// DBSource reads trips previously ingested into Postgres.
type DBSource struct {
	DB db.DBTX
}

func (source DBSource) LoadCity(ctx context.Context, city string) (*Table, error) {
	if _, ok := CityData[city]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}

	tableName := CityTableName(city)
	rows, err := source.DB.QueryContext(ctx, "SELECT * FROM "+db.QuoteIdentifier(tableName))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tableName, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", tableName, err)
	}

	var records [][]string
	cells := make([]sql.NullString, len(header))
	targets := make([]any, len(header))
	for i := range cells {
		targets[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableName, err)
		}
		record := make([]string, len(cells))
		for i, cell := range cells {
			record[i] = cell.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", tableName, err)
	}

	sortByRowIndex(header, records)
	return BuildTable(city, header, records)
}

// sortByRowIndex restores file order for tables written by Ingest. Postgres
// returns rows in no particular order and row_index is stored as text, so
// the sort is numeric and done here rather than with ORDER BY. Rows whose
// index does not parse keep their relative order after the indexed ones.
func sortByRowIndex(header []string, records [][]string) {
	column := slices.Index(header, unnamedColumn)
	if column < 0 {
		return
	}

	rowIndex := func(record []string) (float64, bool) {
		value, err := strconv.ParseFloat(record[column], 64)
		return value, err == nil
	}
	slices.SortStableFunc(records, func(a, b []string) int {
		left, leftOK := rowIndex(a)
		right, rightOK := rowIndex(b)
		switch {
		case leftOK && rightOK:
			if left < right {
				return -1
			}
			if left > right {
				return 1
			}
			return 0
		case leftOK:
			return -1
		case rightOK:
			return 1
		}
		return 0
	})
}
