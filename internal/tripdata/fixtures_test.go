package tripdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
0,2017-06-05 08:10:00,2017-06-05 08:15:00,300,Canal St,Clark St,Subscriber,Male,1985.0
1,2017-06-05 08:45:00,2017-06-05 08:55:00,600,Canal St,Clark St,Subscriber,Female,1990.0
2,2017-06-06 17:20:00,2017-06-06 17:35:00,900,Clark St,Wacker Dr,Customer,,
3,2017-01-02 09:00:00,2017-01-02 09:02:00,120,Wacker Dr,Canal St,Subscriber,Male,1985.0
4,2017-03-01 17:05:00,2017-03-01 17:13:00,480,Canal St,Wacker Dr,Customer,Female,1970.0
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
0,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
1,2017-03-11 10:40:00,2017-03-11 10:46:00,360.0,Lincoln Memorial,Jefferson Memorial,Customer
`

func writeFixtureDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(chicagoCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(washingtonCSV), 0o600))
	return dir
}
