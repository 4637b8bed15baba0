package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tublisher/internal/logging"
	"tublisher/internal/staging"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Convert a single video into an EPUB without running the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			result, err := buildPipeline(cfg, logger).CreateBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer staging.Remove(result.Path, logger)

			target := strings.TrimSpace(outputDir)
			if target == "" {
				target = "."
			}
			dest := filepath.Join(target, result.Filename)
			if err := copyFile(result.Path, dest); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", dest, result.Title)
			if result.Placeholder {
				fmt.Fprintln(cmd.OutOrStdout(), "Note: the chapter is a placeholder; see the book body for the reason.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write the EPUB into (default: current directory)")
	return cmd
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
