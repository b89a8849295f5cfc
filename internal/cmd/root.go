package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	database "tarediiran-industries.com/bikeshare-tools/internal/db"
	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

type BikeshareCtlApp struct {
	ConfigPath string
	DataDir    string
	Database   string
	LogLevel   string

	level slog.Level
}

type configFile struct {
	DataDir  string `toml:"data_dir"`
	Database string `toml:"database"`
	LogLevel string `toml:"log_level"`
}

func Execute() error {
	app := &BikeshareCtlApp{}
	rootCmd := NewRootCmd(app)
	return rootCmd.Execute()
}

func NewRootCmd(app *BikeshareCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bikeshare-ctl",
		Short:         "CLI tool used to inspect and ingest US bikeshare trip data",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig()
		},
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		"",
		"Path to configuration file",
	)
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Directory holding the city CSV files (default \".\")")
	cmd.PersistentFlags().StringVar(&app.Database, "database", "", "Postgres connection string")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Diagnostic log level: debug, info, warn or error (default \"warn\")")

	cmd.AddCommand(NewCitiesCmd(app))
	cmd.AddCommand(NewStatsCmd(app))
	cmd.AddCommand(NewIngestCmd(app))

	return cmd
}

func (app *BikeshareCtlApp) loadConfig() error {
	if app.ConfigPath != "" {
		var file configFile
		if _, err := toml.DecodeFile(app.ConfigPath, &file); err != nil {
			return fmt.Errorf("LoadConfigFromToml: %w", err)
		}
		if app.DataDir == "" {
			app.DataDir = file.DataDir
		}
		if app.Database == "" {
			app.Database = file.Database
		}
		if app.LogLevel == "" {
			app.LogLevel = file.LogLevel
		}
	}
	if app.DataDir == "" {
		app.DataDir = "."
	}

	level, err := common.ParseLogLevel(app.LogLevel)
	if err != nil {
		return err
	}
	app.level = level
	return nil
}

func (app *BikeshareCtlApp) csvSource() tripdata.CSVSource {
	return tripdata.CSVSource{Dir: app.DataDir}
}

// source opens the database when one is configured; the returned closer is never nil.
func (app *BikeshareCtlApp) source(ctx context.Context) (tripdata.Source, func() error, error) {
	if app.Database == "" {
		return app.csvSource(), func() error { return nil }, nil
	}

	db, err := database.NewDatabaseConnection(ctx, app.Database)
	if err != nil {
		return nil, nil, err
	}
	return tripdata.DBSource{DB: db}, db.Close, nil
}

func (app *BikeshareCtlApp) logger(cmd *cobra.Command) *slog.Logger {
	return common.NewLogger(cmd.ErrOrStderr(), app.level)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
