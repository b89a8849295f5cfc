package tripdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource_Path(t *testing.T) {
	source := CSVSource{Dir: "/data"}

	path, err := source.Path("new york city")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "new_york_city.csv"), path)

	_, err = source.Path("boston")
	require.ErrorIs(t, err, ErrUnknownCity)
}

func TestCSVSource_MissingFileFails(t *testing.T) {
	source := CSVSource{Dir: t.TempDir()}

	_, err := source.LoadCity(context.Background(), "chicago")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, _, err := ReadCSV(path)
	require.ErrorContains(t, err, "empty file")
}

func TestReadCSVForColumnNames(t *testing.T) {
	dir := writeFixtureDir(t)

	columns, err := ReadCSVForColumnNames(filepath.Join(dir, "washington.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}, columns)
}

func TestDBSource_LoadCity(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"row_index", "Start Time", "Trip Duration", "Start Station", "End Station", "User Type", "Gender", "Birth Year"}).
		AddRow("0", "2017-06-05 08:10:00", "300", "Canal St", "Clark St", "Subscriber", "Male", "1985.0").
		AddRow("1", "2017-06-06 17:20:00", "900", "Clark St", "Wacker Dr", "Customer", nil, nil)
	mock.ExpectQuery(`SELECT \* FROM "bikeshare_chicago"`).WillReturnRows(rows)

	table, err := DBSource{DB: conn}.LoadCity(context.Background(), "chicago")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Monday", table.Trips[0].DayOfWeek)
	assert.Equal(t, "", table.Trips[1].Gender)
	assert.False(t, table.Trips[1].HasBirthYear)
	assert.True(t, table.HasColumn(ColumnGender))
}

func TestDBSource_LoadCityRestoresFileOrder(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"row_index", "Start Time", "Trip Duration", "Start Station", "End Station", "User Type"}).
		AddRow("10", "2017-06-07 09:00:00", "60", "Wacker Dr", "Canal St", "Subscriber").
		AddRow("2", "2017-06-06 17:20:00", "900", "Clark St", "Wacker Dr", "Customer").
		AddRow("1", "2017-06-05 08:10:00", "300", "Canal St", "Clark St", "Subscriber")
	mock.ExpectQuery(`SELECT \* FROM "bikeshare_washington"`).WillReturnRows(rows)

	table, err := DBSource{DB: conn}.LoadCity(context.Background(), "washington")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, 3, table.Len())
	var starts []string
	for i, trip := range table.Trips {
		assert.Equal(t, i, trip.Position)
		starts = append(starts, trip.StartStation)
	}
	assert.Equal(t, []string{"Canal St", "Clark St", "Wacker Dr"}, starts)
}

func TestSortByRowIndex_KeepsUnindexedRowsLast(t *testing.T) {
	records := [][]string{{"", "c"}, {"3", "b"}, {"x", "d"}, {"0", "a"}}

	sortByRowIndex([]string{"row_index", "name"}, records)
	assert.Equal(t, [][]string{{"0", "a"}, {"3", "b"}, {"", "c"}, {"x", "d"}}, records)

	untouched := [][]string{{"b"}, {"a"}}
	sortByRowIndex([]string{"name"}, untouched)
	assert.Equal(t, [][]string{{"b"}, {"a"}}, untouched)
}

func TestCSVSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CSVSource{Dir: writeFixtureDir(t)}.LoadCity(ctx, "chicago")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDBSource_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`SELECT \* FROM "bikeshare_washington"`).WillReturnError(errors.New("relation does not exist"))

	_, err = DBSource{DB: conn}.LoadCity(context.Background(), "washington")
	require.ErrorContains(t, err, "query bikeshare_washington: relation does not exist")
}

func TestDBSource_UnknownCity(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	_, err = DBSource{DB: conn}.LoadCity(context.Background(), "boston")
	require.ErrorIs(t, err, ErrUnknownCity)
}
