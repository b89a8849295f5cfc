package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	database "tarediiran-industries.com/bikeshare-tools/internal/db"
	"tarediiran-industries.com/bikeshare-tools/internal/stats"
	"tarediiran-industries.com/bikeshare-tools/internal/tripdata"
)

const RestartPrompt = "\nWould you like to restart? Enter yes or no.\n"

// InterruptedExitCode is the conventional shell status for a SIGINT exit.
const InterruptedExitCode = 130

type Explorer struct {
	Console  *Console
	Loader   *tripdata.Loader
	Reporter *stats.Reporter
}

// RunOnce performs one collect, load, preview and report cycle and reports whether to go again.
// Only an exact "yes" (any case) restarts.
func (explorer *Explorer) RunOnce(ctx context.Context) (bool, error) {
	selection, err := CollectFilters(ctx, explorer.Console)
	if err != nil {
		return false, err
	}

	table, err := explorer.Loader.Load(ctx, selection)
	if err != nil {
		return false, err
	}

	if err := Preview(ctx, explorer.Console, table); err != nil {
		return false, err
	}

	explorer.Reporter.All(table)

	answer, err := explorer.Console.Ask(ctx, RestartPrompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "yes", nil
}

// Loop repeats RunOnce until the user declines. Running out of input ends the loop without error.
func (explorer *Explorer) Loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		restart, err := explorer.RunOnce(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

func Run(cfg Config, in io.Reader, out, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := common.NewLogger(errOut, cfg.Level())
	slog.SetDefault(logger)

	var metrics *common.Metrics
	if cfg.TelemetryAddress != "" {
		telemetry := common.NewTelemetryServer(cfg.TelemetryAddress)
		metrics = common.NewMetrics(telemetry.GetRegistry())
		if err := telemetry.Start(); err != nil {
			fmt.Fprintln(errOut, "Error: telemetry:", err)
			return 1
		}
		defer telemetry.Stop()
	}

	var source tripdata.Source = tripdata.CSVSource{Dir: cfg.DataDir}
	if cfg.DatabaseConnection != "" {
		db, err := database.NewDatabaseConnection(ctx, cfg.DatabaseConnection)
		if err != nil {
			fmt.Fprintln(errOut, "Error:", err)
			return 1
		}
		defer db.Close()
		source = tripdata.DBSource{DB: db}
	}

	explorer := &Explorer{
		Console:  NewConsole(in, out),
		Loader:   tripdata.NewLoader(source, metrics, logger),
		Reporter: stats.NewReporter(out, metrics),
	}

	if err := explorer.Loop(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(errOut, "Interrupted.")
			return InterruptedExitCode
		}
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}
	return 0
}
