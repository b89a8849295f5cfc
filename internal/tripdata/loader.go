package tripdata

import (
	"context"
	"fmt"
	"log/slog"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
)

// Loader builds a fresh filtered table on every call; it keeps no state between calls.
type Loader struct {
	Source  Source
	Metrics *common.Metrics
	Logger  *slog.Logger
}

func NewLoader(source Source, metrics *common.Metrics, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Source: source, Metrics: metrics, Logger: logger}
}

func (loader *Loader) Load(ctx context.Context, selection Selection) (*Table, error) {
	table, err := loader.Source.LoadCity(ctx, selection.City)
	if err != nil {
		loader.Metrics.ObserveLoadError(selection.City)
		return nil, fmt.Errorf("load %s: %w", selection.City, err)
	}

	filtered := table.Filter(selection.Month, selection.Day)
	loader.Metrics.ObserveLoad(selection.City, table.Len(), filtered.Len())
	loader.Logger.Debug("loaded trips",
		"city", selection.City,
		"month", selection.Month,
		"day", selection.Day,
		"rows", table.Len(),
		"kept", filtered.Len(),
	)

	return filtered, nil
}
