package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	database "tarediiran-industries.com/bikeshare-tools/internal/db"
	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

func NewIngestCmd(app *BikeshareCtlApp) *cobra.Command {
	var cities []string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Copy city CSV files into Postgres tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == "" {
				return fmt.Errorf("Missing required argument: database")
			}

			selected := make([]string, 0, len(cities))
			for _, input := range cities {
				city, err := tripdata.ParseCity(input)
				if err != nil {
					return err
				}
				selected = append(selected, city)
			}
			if len(selected) == 0 {
				selected = tripdata.ValidCities
			}

			db, err := database.NewDatabaseConnection(cmd.Context(), app.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			for _, city := range selected {
				copied, err := common.RuntimeBenchmark(out, "ingest "+city, func() (int64, error) {
					return tripdata.Ingest(cmd.Context(), db, app.csvSource(), city)
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Copied %d trips into %s\n", copied, tripdata.CityTableName(city))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cities, "city", nil, "Cities to ingest (default all)")

	return cmd
}
