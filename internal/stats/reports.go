package stats

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

const NoDataMessage = "No trip data for the selected filters."

type TimeStats struct {
	Month     int
	MonthName string
	DayOfWeek string
	Hour      int
}

// Route is a (start, end) station pair.
type Route struct {
	Start string
	End   string
}

func (route Route) String() string {
	return route.Start + " to " + route.End
}

func compareRoutes(a, b Route) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

type StationStats struct {
	StartStation string
	EndStation   string
	Route        Route
}

type DurationStats struct {
	Trips int
	Total float64
	Mean  float64
}

type UserStats struct {
	HasUserType bool
	UserTypes   []Count[string]

	HasGender bool
	Genders   []Count[string]

	HasBirthYear      bool
	BirthYearKnown    bool
	EarliestBirthYear int
	LatestBirthYear   int
	CommonBirthYear   int
}

func ComputeTimeStats(table *tripdata.Table) (TimeStats, error) {
	if table.Len() == 0 {
		return TimeStats{}, ErrNoTrips
	}

	months := make([]int, 0, table.Len())
	days := make([]string, 0, table.Len())
	hours := make([]int, 0, table.Len())
	for _, trip := range table.Trips {
		months = append(months, trip.Month)
		days = append(days, trip.DayOfWeek)
		hours = append(hours, trip.Hour)
	}

	var stats TimeStats
	stats.Month, _ = Mode(months)
	stats.MonthName = tripdata.MonthName(stats.Month)
	stats.DayOfWeek, _ = Mode(days)
	stats.Hour, _ = Mode(hours)
	return stats, nil
}

func ComputeStationStats(table *tripdata.Table) (StationStats, error) {
	if table.Len() == 0 {
		return StationStats{}, ErrNoTrips
	}

	starts := make([]string, 0, table.Len())
	ends := make([]string, 0, table.Len())
	routes := make([]Route, 0, table.Len())
	for _, trip := range table.Trips {
		starts = append(starts, trip.StartStation)
		ends = append(ends, trip.EndStation)
		routes = append(routes, Route{Start: trip.StartStation, End: trip.EndStation})
	}

	var stats StationStats
	stats.StartStation, _ = Mode(starts)
	stats.EndStation, _ = Mode(ends)
	stats.Route, _ = ModeFunc(routes, func(a, b Route) bool { return compareRoutes(a, b) < 0 })
	return stats, nil
}

func ComputeDurationStats(table *tripdata.Table) (DurationStats, error) {
	if table.Len() == 0 {
		return DurationStats{}, ErrNoTrips
	}

	stats := DurationStats{Trips: table.Len()}
	for _, trip := range table.Trips {
		stats.Total += trip.Duration
	}
	stats.Mean = stats.Total / float64(stats.Trips)
	return stats, nil
}

// ComputeUserStats skips empty cells; sections depend on the city's columns, not on row content.
func ComputeUserStats(table *tripdata.Table) (UserStats, error) {
	if table.Len() == 0 {
		return UserStats{}, ErrNoTrips
	}

	stats := UserStats{
		HasUserType:  table.HasColumn(tripdata.ColumnUserType),
		HasGender:    table.HasColumn(tripdata.ColumnGender),
		HasBirthYear: table.HasColumn(tripdata.ColumnBirthYear),
	}

	var userTypes, genders []string
	var years []int
	for _, trip := range table.Trips {
		if trip.UserType != "" {
			userTypes = append(userTypes, trip.UserType)
		}
		if trip.Gender != "" {
			genders = append(genders, trip.Gender)
		}
		if trip.HasBirthYear {
			years = append(years, int(trip.BirthYear))
		}
	}

	if stats.HasUserType {
		stats.UserTypes = ValueCounts(userTypes)
	}
	if stats.HasGender {
		stats.Genders = ValueCounts(genders)
	}
	if stats.HasBirthYear && len(years) > 0 {
		stats.BirthYearKnown = true
		stats.EarliestBirthYear = years[0]
		stats.LatestBirthYear = years[0]
		for _, year := range years {
			stats.EarliestBirthYear = min(stats.EarliestBirthYear, year)
			stats.LatestBirthYear = max(stats.LatestBirthYear, year)
		}
		stats.CommonBirthYear, _ = Mode(years)
	}
	return stats, nil
}

// Reporter prints each report to Out followed by its own elapsed time.
type Reporter struct {
	Out     io.Writer
	Metrics *common.Metrics
}

func NewReporter(out io.Writer, metrics *common.Metrics) *Reporter {
	return &Reporter{Out: out, Metrics: metrics}
}

func (reporter *Reporter) All(table *tripdata.Table) {
	reporter.TimeStats(table)
	reporter.StationStats(table)
	reporter.TripDurationStats(table)
	reporter.UserStats(table)
}

func (reporter *Reporter) begin(title, report string) *common.Stopwatch {
	fmt.Fprintf(reporter.Out, "\n%s\n\n", title)
	return common.NewStopwatch(reporter.Out, reporter.Metrics.ReportObserver(report))
}

func (reporter *Reporter) fail(err error) {
	if errors.Is(err, ErrNoTrips) {
		fmt.Fprintln(reporter.Out, NoDataMessage)
		return
	}
	fmt.Fprintln(reporter.Out, "Error:", err)
}

func (reporter *Reporter) TimeStats(table *tripdata.Table) {
	stopwatch := reporter.begin("Calculating The Most Frequent Times of Travel...", "time")
	defer stopwatch.Close()

	stats, err := ComputeTimeStats(table)
	if err != nil {
		reporter.fail(err)
		return
	}

	fmt.Fprintln(reporter.Out, "Most common month:", stats.MonthName)
	fmt.Fprintln(reporter.Out, "Most common day of week:", stats.DayOfWeek)
	fmt.Fprintln(reporter.Out, "Most common start hour:", stats.Hour)
}

func (reporter *Reporter) StationStats(table *tripdata.Table) {
	stopwatch := reporter.begin("Calculating The Most Popular Stations and Trip...", "station")
	defer stopwatch.Close()

	stats, err := ComputeStationStats(table)
	if err != nil {
		reporter.fail(err)
		return
	}

	fmt.Fprintln(reporter.Out, "Most commonly used start station:", stats.StartStation)
	fmt.Fprintln(reporter.Out, "Most commonly used end station:", stats.EndStation)
	fmt.Fprintln(reporter.Out, "Most frequent combination of start station and end station trip:", stats.Route)
}

func (reporter *Reporter) TripDurationStats(table *tripdata.Table) {
	stopwatch := reporter.begin("Calculating Trip Duration...", "duration")
	defer stopwatch.Close()

	stats, err := ComputeDurationStats(table)
	if err != nil {
		reporter.fail(err)
		return
	}

	fmt.Fprintln(reporter.Out, "Trips counted:", humanize.Comma(int64(stats.Trips)))
	fmt.Fprintln(reporter.Out, "Total travel time:", FormatNumber(stats.Total))
	fmt.Fprintln(reporter.Out, "Mean travel time:", FormatMean(stats.Mean))
}

func (reporter *Reporter) UserStats(table *tripdata.Table) {
	stopwatch := reporter.begin("Calculating User Stats...", "user")
	defer stopwatch.Close()

	stats, err := ComputeUserStats(table)
	if err != nil {
		reporter.fail(err)
		return
	}

	if stats.HasUserType {
		fmt.Fprintln(reporter.Out, "\nCounts of user type:")
		reporter.printCounts(stats.UserTypes)
	}
	if stats.HasGender {
		fmt.Fprintln(reporter.Out, "\nCounts of gender:")
		reporter.printCounts(stats.Genders)
	}
	if stats.HasBirthYear {
		if !stats.BirthYearKnown {
			fmt.Fprintln(reporter.Out, "No birth year data for the selected filters.")
			return
		}
		fmt.Fprintf(reporter.Out, "Earliest year of birth: %d\n\n", stats.EarliestBirthYear)
		fmt.Fprintf(reporter.Out, "Most recent year of birth: %d\n\n", stats.LatestBirthYear)
		fmt.Fprintf(reporter.Out, "Most common year of birth: %d\n\n", stats.CommonBirthYear)
	}
}

func (reporter *Reporter) printCounts(counts []Count[string]) {
	for _, count := range counts {
		fmt.Fprintf(reporter.Out, "\nCount of %s is: %s\n", count.Value, humanize.Comma(int64(count.Count)))
	}
}

// FormatNumber drops the fraction of whole numbers: 60 -> "60", 1.5 -> "1.5".
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatMean always keeps a fractional part: 20 -> "20.0".
func FormatMean(value float64) string {
	formatted := FormatNumber(value)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}
	return formatted
}
