package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wmark/internal/batch"
	"wmark/internal/config"
	"wmark/internal/imageio"
)

func newEditCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [image]",
		Short: "Open the interactive editor",
		Long: `Open the terminal editor. Select an image, add text, preview the result
and save it next to any folder as watermark_<name>. An image path given on the
command line is opened immediately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, args)
		},
	}
}

func newBatchCmd(g *globals) *cobra.Command {
	var dir, text string
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "batch --dir DIR --text TEXT",
		Short: "Watermark every image in a folder",
		Long: `Apply the same text to every image in DIR and write watermark_<name>
beside each one. Files are processed in name order. By default the first
unreadable file stops the run; --continue-on-error skips it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := g.logTo(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			if text == "" {
				return errors.New("--text must not be empty")
			}
			c, err := g.load()
			if err != nil {
				return err
			}
			wm, _, err := engine(c)
			if err != nil {
				return err
			}
			opts := batchOptions(c)
			if cmd.Flags().Changed("continue-on-error") {
				opts.ContinueOnError = keepGoing
			}

			rep, err := batch.Run(cmd.Context(), wm, dir, text, opts)
			out := cmd.OutOrStdout()
			for _, f := range rep.Failed {
				fmt.Fprintf(out, "skipped %s: %v\n", f.Path, f.Err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Watermarked %d file(s) in %s\n", len(rep.Written), rep.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Folder of images to watermark")
	cmd.Flags().StringVar(&text, "text", "", "Watermark text")
	cmd.Flags().BoolVar(&keepGoing, "continue-on-error", false, "Skip unreadable files instead of stopping")
	_ = cmd.MarkFlagRequired("dir")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newApplyCmd(g *globals) *cobra.Command {
	var text, outDir string

	cmd := &cobra.Command{
		Use:   "apply FILE --text TEXT",
		Short: "Watermark a single image",
		Long: `Watermark FILE and write watermark_<name> into --out-dir, or next to FILE
when no output folder is given. FILE itself is never modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := g.logTo(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			if text == "" {
				return errors.New("--text must not be empty")
			}
			c, err := g.load()
			if err != nil {
				return err
			}
			wm, _, err := engine(c)
			if err != nil {
				return err
			}

			src := args[0]
			if !imageio.Supported(src) {
				return fmt.Errorf("%s: unsupported format (want one of %s)", src, strings.Join(imageio.Extensions, " "))
			}
			img, err := imageio.Open(src)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Dir(src)
			}
			dst := imageio.OutputPath(outDir, src, c.Watermark.Prefix)
			slog.Info("Applying watermark", "path", src, "anchor", wm.Anchor(img.Bounds(), text))
			if err := imageio.Save(wm.Apply(img, text), dst); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Watermark text")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Folder to write into (default: next to FILE)")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newInitCmd(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("check config: %w", err)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}
