package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"novel-binder/config"
	"novel-binder/kindlegen"
	"novel-binder/logfields"
	"novel-binder/metrics"
	"novel-binder/prompt"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:               "novel-binder",
	Short:             "Bind crawled novels into text, web, epub and mobi files",
	Long:              "Bind crawled novels into text, web, epub and mobi files",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfg      *config.Config
	recorder *metrics.PrometheusRecorder
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./novel-binder.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("metrics-file", "", "write prometheus metrics to this file after the run")
	flags.BoolP("yes", "y", false, "answer yes to every question")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = c
	slog.SetDefault(newLogger(c, cmd.ErrOrStderr()))
	recorder = metrics.NewPrometheusRecorder(nil)
	return nil
}

func newLogger(c *config.Config, w io.Writer) *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// withMetrics writes the metrics file after run returns, including when it fails.
func withMetrics(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		runErr := run(cmd, args)
		err := flushMetrics()
		if runErr != nil {
			if err != nil {
				slog.Error("Failed to write metrics", logfields.Error(err))
			}
			return runErr
		}
		return err
	}
}

func flushMetrics() error {
	if cfg == nil || cfg.MetricsFile == "" || recorder == nil {
		return nil
	}
	err := recorder.WriteToFile(cfg.MetricsFile)
	if err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func newToolchain(logger *slog.Logger) *kindlegen.Toolchain {
	return kindlegen.New(kindlegen.Options{
		Dir:         cfg.Kindlegen.Dir,
		Binary:      cfg.Kindlegen.Binary,
		DownloadURL: cfg.Kindlegen.URL,
	}, logger)
}

func newConfirmer(cmd *cobra.Command) *prompt.Terminal {
	term := prompt.NewTerminal(cfg.AssumeYes)
	term.In = cmd.InOrStdin()
	term.Out = cmd.ErrOrStderr()
	return term
}
