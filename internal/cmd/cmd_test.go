package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
0,2017-06-05 08:10:00,2017-06-05 08:15:00,300,Canal St,Clark St,Subscriber,Male,1985.0
1,2017-06-06 17:20:00,2017-06-06 17:35:00,900,Clark St,Wacker Dr,Customer,,
`

func runCtl(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	root := NewRootCmd(&BikeshareCtlApp{})
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixtureDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(chicagoCSV), 0o600))
	return dir
}

func TestCitiesCmd(t *testing.T) {
	dir := fixtureDir(t)

	out, err := runCtl(t, "cities", "--data-dir", dir)
	require.NoError(t, err)

	assert.Regexp(t, `chicago\s+\S+chicago\.csv\s+present`, out)
	assert.Regexp(t, `washington\s+\S+washington\.csv\s+missing`, out)
	assert.Contains(t, out, "new york city")
}

func TestStatsCmd(t *testing.T) {
	out, err := runCtl(t, "stats", "--data-dir", fixtureDir(t), "--city", "Chicago", "--month", "june", "--day", "tuesday")
	require.NoError(t, err)

	assert.Contains(t, out, "Most common day of week: Tuesday")
	assert.Contains(t, out, "Total travel time: 900\n")
	assert.Contains(t, out, "Count of Customer is: 1")
}

func TestStatsCmd_TomlDataDir(t *testing.T) {
	dir := fixtureDir(t)
	config := filepath.Join(t.TempDir(), "ctl.toml")
	require.NoError(t, os.WriteFile(config, []byte("data_dir = \""+dir+"\"\n"), 0o600))

	out, err := runCtl(t, "stats", "--toml", config, "--city", "chicago")
	require.NoError(t, err)
	assert.Contains(t, out, "Total travel time: 1200\n")
}

func TestStatsCmd_RejectsInvalidSelection(t *testing.T) {
	_, err := runCtl(t, "stats", "--data-dir", fixtureDir(t), "--city", "boston")
	require.ErrorContains(t, err, "unknown city")

	_, err = runCtl(t, "stats", "--data-dir", fixtureDir(t), "--city", "chicago", "--day", "someday")
	require.ErrorContains(t, err, "invalid day")
}

func TestStatsCmd_RequiresCity(t *testing.T) {
	_, err := runCtl(t, "stats")
	require.Error(t, err)
}

func TestStatsCmd_MissingFile(t *testing.T) {
	_, err := runCtl(t, "stats", "--data-dir", fixtureDir(t), "--city", "washington")
	require.ErrorContains(t, err, "load washington")
}

func TestIngestCmd_RequiresDatabase(t *testing.T) {
	_, err := runCtl(t, "ingest", "--data-dir", fixtureDir(t))
	require.ErrorContains(t, err, "Missing required argument: database")
}

func TestIngestCmd_RejectsUnknownCity(t *testing.T) {
	_, err := runCtl(t, "ingest", "--database", "postgres://localhost/bikes", "--city", "boston")
	require.ErrorContains(t, err, "unknown city")
}

func TestStatsCmd_TomlLogLevel(t *testing.T) {
	dir := fixtureDir(t)
	config := filepath.Join(t.TempDir(), "ctl.toml")
	require.NoError(t, os.WriteFile(config, []byte("data_dir = \""+dir+"\"\nlog_level = \"debug\"\n"), 0o600))

	errOut := &bytes.Buffer{}
	root := NewRootCmd(&BikeshareCtlApp{})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(errOut)
	root.SetArgs([]string{"stats", "--toml", config, "--city", "chicago"})
	require.NoError(t, root.Execute())
	assert.Contains(t, errOut.String(), "loaded trips")

	errOut.Reset()
	root = NewRootCmd(&BikeshareCtlApp{})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(errOut)
	root.SetArgs([]string{"stats", "--toml", config, "--log-level", "warn", "--city", "chicago"})
	require.NoError(t, root.Execute())
	assert.NotContains(t, errOut.String(), "loaded trips")
}

func TestRootCmd_RejectsUnknownLogLevel(t *testing.T) {
	_, err := runCtl(t, "stats", "--data-dir", fixtureDir(t), "--city", "chicago", "--log-level", "loud")
	require.ErrorContains(t, err, `Unknown log level "loud"`)
}
