package tripdata

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	ColumnStartTime    = "Start Time"
	ColumnEndTime      = "End Time"
	ColumnTripDuration = "Trip Duration"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
)

var requiredColumns = []string{ColumnStartTime, ColumnTripDuration, ColumnStartStation, ColumnEndStation}

// Trip is one row of a city table. Record holds the raw fields in Table.Columns order;
// Month, DayOfWeek and Hour are derived from StartTime.
type Trip struct {
	Position int
	Record   []string

	StartTime    time.Time
	StartStation string
	EndStation   string
	Duration     float64
	UserType     string
	Gender       string
	BirthYear    float64
	HasBirthYear bool

	Month     int
	DayOfWeek string
	Hour      int
}

type Table struct {
	City    string
	Columns []string
	Trips   []Trip
}

func (table *Table) Len() int {
	if table == nil {
		return 0
	}
	return len(table.Trips)
}

func (table *Table) HasColumn(name string) bool {
	return slices.Contains(table.Columns, name)
}

// Filter returns a new table holding only the trips matching month and day.
// "all" disables the corresponding filter.
func (table *Table) Filter(month, day string) *Table {
	wantMonth := 0
	if normalize(month) != All {
		wantMonth = MonthNumber(month)
	}
	wantDay := ""
	if normalize(day) != All {
		wantDay = DayName(day)
	}

	filtered := &Table{City: table.City, Columns: table.Columns, Trips: make([]Trip, 0, len(table.Trips))}
	for _, trip := range table.Trips {
		if wantMonth != 0 && trip.Month != wantMonth {
			continue
		}
		if wantDay != "" && trip.DayOfWeek != wantDay {
			continue
		}
		filtered.Trips = append(filtered.Trips, trip)
	}
	return filtered
}

// BuildTable parses raw records under header into a Table with derived time columns.
func BuildTable(city string, header []string, records [][]string) (*Table, error) {
	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.TrimSpace(column)] = i
	}

	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", city, column)
		}
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	table := &Table{City: city, Columns: header, Trips: make([]Trip, 0, len(records))}
	for position, record := range records {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, header has %d", city, position+1, len(record), len(header))
		}

		startTime, err := dateparse.ParseIn(field(record, ColumnStartTime), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %s: %w", city, position+1, ColumnStartTime, err)
		}

		duration, err := strconv.ParseFloat(field(record, ColumnTripDuration), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %s: %w", city, position+1, ColumnTripDuration, err)
		}

		trip := Trip{
			Position:     position,
			Record:       record,
			StartTime:    startTime,
			StartStation: field(record, ColumnStartStation),
			EndStation:   field(record, ColumnEndStation),
			Duration:     duration,
			UserType:     field(record, ColumnUserType),
			Gender:       field(record, ColumnGender),
			Month:        int(startTime.Month()),
			DayOfWeek:    startTime.Weekday().String(),
			Hour:         startTime.Hour(),
		}

		if raw := field(record, ColumnBirthYear); raw != "" {
			year, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %s: %w", city, position+1, ColumnBirthYear, err)
			}
			trip.BirthYear = year
			trip.HasBirthYear = true
		}

		table.Trips = append(table.Trips, trip)
	}

	return table, nil
}
