package cliopt

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GlobalOptions are parsed once at the CLI root and passed to
// subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the
// root command router and per-command code.
type GlobalOptions struct {
	Format   string // pretty|json
	RowLimit int
	LogLevel string

	HistoryFile string

	ExportSQLitePath  string
	ExportTable       string
	ExportPostgresDSN string
}

func DefaultGlobalOptions() GlobalOptions {
	home, _ := os.UserHomeDir()
	return GlobalOptions{
		Format:      "pretty",
		RowLimit:    30,
		LogLevel:    "INFO",
		HistoryFile: filepath.Join(home, ".fsq_history"),
	}
}

// LoadConfig overlays an optional fsq.yaml from the working directory
// or ~/.config/fsq onto the defaults. Flags bound afterwards still win
// over config values.
func LoadConfig(g *GlobalOptions) error {
	v := viper.New()
	v.SetConfigName("fsq")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "fsq"))
	}
	v.SetEnvPrefix("FSQ")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	if v.IsSet("format") {
		g.Format = v.GetString("format")
	}
	if v.IsSet("row_limit") {
		g.RowLimit = v.GetInt("row_limit")
	}
	if v.IsSet("log_level") {
		g.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("history_file") {
		g.HistoryFile = v.GetString("history_file")
	}
	if v.IsSet("export.sqlite_path") {
		g.ExportSQLitePath = v.GetString("export.sqlite_path")
	}
	if v.IsSet("export.table") {
		g.ExportTable = v.GetString("export.table")
	}
	if v.IsSet("export.postgres_dsn") {
		g.ExportPostgresDSN = v.GetString("export.postgres_dsn")
	}
	return nil
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
	fs.IntVar(&g.RowLimit, "row-limit", g.RowLimit, "max rows printed before truncation")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "log level: DEBUG|INFO|WARN|ERROR")
	fs.StringVar(&g.HistoryFile, "history-file", g.HistoryFile, "shell history file path")

	fs.StringVar(&g.ExportSQLitePath, "export-sqlite", g.ExportSQLitePath, "sqlite database file for EXPORT SQL[sqlite]")
	fs.StringVar(&g.ExportTable, "export-table", g.ExportTable, "table name for SQL exports")
	fs.StringVar(&g.ExportPostgresDSN, "export-pg-dsn", g.ExportPostgresDSN, "postgres DSN for EXPORT SQL[postgres]")
}
