package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"novel-binder/binder"
	"novel-binder/logfields"

	"github.com/spf13/cobra"
)

type convertArgs struct {
	DirPath string `validate:"required"`
}

var cArgs convertArgs

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "convert every epub file in a directory to mobi",
	Long:  "convert every epub file in a directory to mobi",
	RunE:  withMetrics(runConvert),
}

func init() {
	convertCmd.Flags().StringVarP(&cArgs.DirPath, "dir-path", "d", "", "directory path")
	RootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if cArgs.DirPath == "" {
		return fmt.Errorf("dir path is required")
	}
	epubs, err := filepath.Glob(filepath.Join(cArgs.DirPath, "*.epub"))
	if err != nil {
		return fmt.Errorf("failed to list epub files: %w", err)
	}
	if len(epubs) == 0 {
		return fmt.Errorf("no epub files in %s", cArgs.DirPath)
	}
	sort.Strings(epubs)

	logger := slog.Default()
	b := binder.New(binder.Options{
		Toolchain: newToolchain(logger),
		Confirmer: newConfirmer(cmd),
		Logger:    logger,
		Recorder:  recorder,
	})

	conversion := b.ConvertBinary(cmd.Context(), epubs)
	if conversion.State == binder.StateUnavailable {
		return fmt.Errorf("kindlegen is not available")
	}
	logger.Info("Converted epub files", logfields.Path(cArgs.DirPath), logfields.Count(len(conversion.Paths)), logfields.State(conversion.State.String()))
	return nil
}
