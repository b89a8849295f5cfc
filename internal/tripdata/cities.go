// Package tripdata loads bikeshare trip tables for the supported cities and
// narrows them to a month and day-of-week selection.
package tripdata

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const All = "all"

var (
	ErrUnknownCity  = errors.New("unknown city")
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidDay   = errors.New("invalid day")
)

// CityData maps each supported city to its data file name.
var CityData = map[string]string{
	"chicago":       "chicago.csv",
	"new york city": "new_york_city.csv",
	"washington":    "washington.csv",
}

var ValidCities = []string{"chicago", "new york city", "washington"}

var ValidMonths = []string{
	"all", "january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// "wendesday" has always been accepted and is kept as an alias of "wednesday".
var ValidDays = []string{
	"all", "monday", "tuesday", "wendesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// dayAliases maps accepted misspellings onto the weekday name trips carry.
// "wendesday" used to be compared against day names verbatim and so matched
// no trips at all; with the alias it now selects Wednesday trips.
var dayAliases = map[string]string{
	"wendesday": "wednesday",
}

// Selection is one validated (city, month, day) choice.
type Selection struct {
	City  string
	Month string
	Day   string
}

func (selection Selection) String() string {
	return fmt.Sprintf("city=%s month=%s day=%s", selection.City, selection.Month, selection.Day)
}

func normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func ParseCity(input string) (string, error) {
	city := normalize(input)
	if !slices.Contains(ValidCities, city) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCity, input)
	}
	return city, nil
}

func ParseMonth(input string) (string, error) {
	month := normalize(input)
	if !slices.Contains(ValidMonths, month) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, input)
	}
	return month, nil
}

func ParseDay(input string) (string, error) {
	day := normalize(input)
	if !slices.Contains(ValidDays, day) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, input)
	}
	return day, nil
}

// ParseSelection validates all three parts, reporting the first failure.
func ParseSelection(city, month, day string) (Selection, error) {
	var selection Selection
	var err error

	if selection.City, err = ParseCity(city); err != nil {
		return Selection{}, err
	}
	if selection.Month, err = ParseMonth(month); err != nil {
		return Selection{}, err
	}
	if selection.Day, err = ParseDay(day); err != nil {
		return Selection{}, err
	}
	return selection, nil
}

// MonthNumber is the 1-based calendar month of a whitelisted month name, or 0 for "all".
func MonthNumber(month string) int {
	index := slices.Index(ValidMonths, normalize(month))
	if index < 0 {
		return 0
	}
	return index
}

// MonthName is the display name of a calendar month, e.g. 6 -> "June".
func MonthName(month int) string {
	if month < 1 || month >= len(ValidMonths) {
		return ""
	}
	return titleCase(ValidMonths[month])
}

// DayName is the weekday name as it appears in the derived day_of_week column.
func DayName(day string) string {
	day = normalize(day)
	if alias, ok := dayAliases[day]; ok {
		day = alias
	}
	return titleCase(day)
}

// a Caser holds state, so each call gets its own
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// CityTableName is the Postgres table a city's trips are ingested into.
func CityTableName(city string) string {
	return "bikeshare_" + strings.ReplaceAll(normalize(city), " ", "_")
}
