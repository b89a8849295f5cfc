package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"Start Time"`, QuoteIdentifier("Start Time"))
	assert.Equal(t, `"odd""name"`, QuoteIdentifier(`odd"name`))
}

func TestBuildCopyQuery(t *testing.T) {
	got := BuildCopyQuery("bikeshare_chicago", []string{"Start Time", "Trip Duration"})

	assert.Equal(t,
		`COPY "bikeshare_chicago" ("Start Time", "Trip Duration") FROM STDIN WITH (FORMAT csv, HEADER true)`,
		got,
	)
}

func TestBuildCreateTextTableQuery(t *testing.T) {
	got := BuildCreateTextTableQuery("bikeshare_washington", []string{"row_index", "User Type"})

	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "bikeshare_washington" ("row_index" TEXT, "User Type" TEXT)`,
		got,
	)
}

func TestCloseNilDatabase(t *testing.T) {
	var database *Database
	assert.NoError(t, database.Close())
}
