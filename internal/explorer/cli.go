package explorer

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
)

type ConfigFile struct {
	DataDir          string `toml:"data_dir"`
	Database         string `toml:"database"`
	TelemetryAddress string `toml:"telemetry_addr"`
	LogLevel         string `toml:"log_level"`
}

type Config struct {
	Version bool

	// Toml config path - fills in any option not given on the command line
	TomlConfigPath string

	// Trip source - CSV files under DataDir unless a database is given
	DataDir            string
	DatabaseConnection string

	TelemetryAddress string
	LogLevel         string
}

func LoadConfigFromToml(path string) (ConfigFile, error) {
	var cfg ConfigFile
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ConfigFile{}, err
	}

	return cfg, nil
}

func ParseArgs(programName string, args []string, errOut io.Writer) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errOut, "Options")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Version, "version", false, "Prints CLI version")
	fs.StringVar(&cfg.TomlConfigPath, "toml", "", "Configuration file; command line options take precedence")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory holding chicago.csv, new_york_city.csv and washington.csv (default \".\")")
	fs.StringVar(&cfg.DatabaseConnection, "database", "", "Read trips from this Postgres database instead of CSV files")
	fs.StringVar(&cfg.TelemetryAddress, "telemetry", "", "Serve Prometheus metrics and pprof on this address")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Diagnostic log level: debug, info, warn or error (default \"warn\")")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return Config{}, flag.ErrHelp
	}

	if cfg.TomlConfigPath != "" {
		tomlCfg, err := LoadConfigFromToml(cfg.TomlConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("LoadConfigFromToml: %w", err)
		}
		cfg.merge(tomlCfg)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = common.DefaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg *Config) merge(file ConfigFile) {
	if cfg.DataDir == "" {
		cfg.DataDir = file.DataDir
	}
	if cfg.DatabaseConnection == "" {
		cfg.DatabaseConnection = file.Database
	}
	if cfg.TelemetryAddress == "" {
		cfg.TelemetryAddress = file.TelemetryAddress
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = file.LogLevel
	}
}

func (cfg Config) Validate() error {
	if _, err := common.ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	if cfg.DatabaseConnection == "" {
		info, err := os.Stat(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("Data directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("Data directory %s is not a directory", cfg.DataDir)
		}
	}

	return nil
}

// Level assumes Validate has passed; an unknown name falls back to info.
func (cfg Config) Level() slog.Level {
	level, err := common.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func Main(programName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cfg, err := ParseArgs(programName, args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}

	return Run(cfg, in, out, errOut)
}
