package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

func NewCitiesCmd(app *BikeshareCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List supported cities and whether their data files are present",
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "CITY\tFILE\tSTATUS")

			source := app.csvSource()
			for _, city := range tripdata.ValidCities {
				path, err := source.Path(city)
				if err != nil {
					return err
				}

				status := "missing"
				if fileExists(path) {
					status = "present"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", city, path, status)
			}

			return writer.Flush()
		},
	}

	return cmd
}
