package cmd

import (
	"github.com/spf13/cobra"

	"tarediiran-industries.com/bikeshare-tools/internal/stats"
	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

func NewStatsCmd(app *BikeshareCtlApp) *cobra.Command {
	var city, month, day string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print trip statistics for one city, month and day without prompting",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := tripdata.ParseSelection(city, month, day)
			if err != nil {
				return err
			}

			source, closeSource, err := app.source(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSource()

			table, err := tripdata.NewLoader(source, nil, app.logger(cmd)).Load(cmd.Context(), selection)
			if err != nil {
				return err
			}

			stats.NewReporter(cmd.OutOrStdout(), nil).All(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City to analyze: chicago, new york city or washington")
	cmd.Flags().StringVar(&month, "month", tripdata.All, "Month name or all")
	cmd.Flags().StringVar(&day, "day", tripdata.All, "Day of week or all")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}
