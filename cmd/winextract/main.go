package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jchantrell/winextract/internal/config"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	cfgFile string

	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "winextract",
	Short: "Asset extraction tool for data.win game archives",
	Long: `winextract reads the chunked FORM archive shipped with games built on
the data.win format and extracts its assets.

Texture pages, sprites, fonts, backgrounds and sounds are written to an
output directory, and the archive's metadata is recorded in a queryable
SQLite catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		if err := bindFlags(cmd, v); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		var level slog.Level
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		var handler slog.Handler
		if strings.ToLower(cfg.LogFormat) == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})
		}

		slog.SetDefault(slog.New(handler))

		slog.Debug("Configuration",
			"archive", cfg.Archive,
			"audio_groups", cfg.AudioGroups,
			"output", cfg.Output,
			"catalog", cfg.Catalog,
			"assets", cfg.Assets,
			"workers", cfg.Workers,
			"log_level", cfg.LogLevel,
			"log_format", cfg.LogFormat)

		return nil
	},
}

// bindFlags lets explicitly set flags take precedence over the config file
// and environment
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for key, name := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// flagKeys maps config keys to the flag names that override them
var flagKeys = map[string]string{
	"archive":            "archive",
	"audio_groups":       "audio-group",
	"output":             "output",
	"catalog":            "catalog",
	"assets":             "assets",
	"workers":            "workers",
	"background_columns": "background-columns",
	"log_level":          "log-level",
	"log_format":         "log-format",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is winextract.yaml in home or pwd)")
	rootCmd.PersistentFlags().StringP("archive", "a", "", "path to the data.win archive")
	rootCmd.PersistentFlags().StringSlice("audio-group", []string{}, "audio group files in group order (audiogroup1.dat, ...)")
	rootCmd.PersistentFlags().StringP("catalog", "c", "", "catalog database path (default is derived from the game in the cache directory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}
