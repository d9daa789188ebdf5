package cmd

import (
	"fmt"
	"log/slog"

	"novel-binder/binder"
	"novel-binder/config"
	"novel-binder/epub"
	"novel-binder/logfields"
	"novel-binder/model"
	"novel-binder/source"
	"novel-binder/web"

	"github.com/spf13/cobra"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Bind a crawled novel",
	Long:  "Bind a crawled novel into text and web pages, epub books and, when kindlegen is available, mobi books",
	RunE:  withMetrics(runBind),
}

type bindArgs struct {
	InputPath string `validate:"required"`
}

var bArgs bindArgs

func init() {
	bindCmd.Flags().StringVarP(&bArgs.InputPath, "input", "i", "", "novel file (.json, .yaml or .yml)")
	bindCmd.Flags().StringP("output-path", "o", config.DefaultOutputPath, "output path")
	bindCmd.Flags().Bool("pack-by-volume", false, "create one epub per volume")
	bindCmd.Flags().String("language", config.DefaultLanguage, "language used when the novel does not name one")
	RootCmd.AddCommand(bindCmd)
}

func runBind(cmd *cobra.Command, args []string) error {
	if bArgs.InputPath == "" {
		return fmt.Errorf("input is required")
	}
	novel, err := source.Load(bArgs.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load novel: %w", err)
	}
	if novel.Language == "" {
		novel.Language = cfg.Language
	}

	logger := slog.Default()
	b := binder.New(binder.Options{
		OutputPath:   cfg.OutputPath,
		PackByVolume: cfg.PackByVolume,
		Renderer:     web.NewRenderer(novel.Title),
		Builder:      epub.NewBuilder(cfg.OutputPath, novel, logger),
		Toolchain:    newToolchain(logger),
		Confirmer:    newConfirmer(cmd),
		Logger:       logger,
		Recorder:     recorder,
	})

	result, err := b.Bind(cmd.Context(), novel)
	if err != nil {
		return fmt.Errorf("failed to bind novel: %w", err)
	}

	logger.Info("Bound novel",
		slog.String("title", novel.Title),
		logfields.Path(cfg.OutputPath),
		slog.Int("text", len(result.Paths(model.FormatText))),
		slog.Int("html", len(result.Paths(model.FormatHTML))),
		slog.Int("epub", len(result.Paths(model.FormatEpub))),
		slog.Int("mobi", len(result.Paths(model.FormatMobi))),
		logfields.State(result.Conversion.State.String()),
	)
	return nil
}
