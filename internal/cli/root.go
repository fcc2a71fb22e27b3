// Package cli defines the wmark command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wmark/internal/batch"
	"wmark/internal/compositor"
	"wmark/internal/config"
	"wmark/internal/logging"
	"wmark/internal/tui"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	version    string
	configPath string
	verbose    int
	debug      bool
	logFile    string
	noColor    bool
}

func (g *globals) verbosity() int {
	if g.debug {
		return 2
	}
	return g.verbose
}

// load reads --config, or ~/.wmark/config.yaml when the flag is empty.
func (g *globals) load() (*config.Config, error) {
	path := g.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

// logTo installs the default logger. The log file wins over fallback.
func (g *globals) logTo(fallback io.Writer) (func() error, error) {
	return logging.Setup(g.logFile, g.verbosity(), fallback, g.version)
}

// NewRootCmd builds the command tree. Running wmark with no subcommand opens
// the editor.
func NewRootCmd(version string) *cobra.Command {
	g := &globals{version: version}

	cmd := &cobra.Command{
		Use:   "wmark [image]",
		Short: "Stamp text watermarks onto images",
		Long: `wmark places a semi-transparent text watermark in the bottom-right corner
of an image and saves it as watermark_<name>, leaving the original untouched.

Without a subcommand it opens the interactive editor. Use "batch" to
watermark every image in a folder and "apply" for a single file.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, args)
		},
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default ~/.wmark/config.yaml)")
	pf.CountVarP(&g.verbose, "verbose", "v", "Verbose logs (-v info, -vv debug)")
	pf.BoolVar(&g.debug, "vv", false, "Debug logs")
	pf.StringVar(&g.logFile, "log-file", "", "Append logs to file (created if missing)")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newEditCmd(g))
	cmd.AddCommand(newBatchCmd(g))
	cmd.AddCommand(newApplyCmd(g))
	cmd.AddCommand(newInitCmd(g))

	return cmd
}

// engine builds the watermarker and preview bounds described by c.
func engine(c *config.Config) (compositor.Watermarker, compositor.Display, error) {
	face, err := compositor.LoadFace(c.Font.Path, c.Font.Size)
	if err != nil {
		return compositor.Watermarker{}, compositor.Display{}, err
	}
	wm := compositor.Watermarker{
		Face:    face,
		Margin:  c.Watermark.Margin,
		Opacity: uint8(c.Watermark.Opacity),
	}
	d := compositor.Display{
		MaxSize: c.Display.MaxSize,
		MinSize: c.Display.MinSize,
		Chrome:  c.Display.Chrome,
	}
	return wm, d, nil
}

func batchOptions(c *config.Config) batch.Options {
	return batch.Options{
		Glob:            c.Batch.Glob,
		Prefix:          c.Watermark.Prefix,
		ContinueOnError: c.Batch.ContinueOnError,
	}
}

func runEdit(cmd *cobra.Command, g *globals, args []string) error {
	closeLog, err := g.logTo(io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	c, err := g.load()
	if err != nil {
		return err
	}
	wm, d, err := engine(c)
	if err != nil {
		return err
	}
	opts := tui.Options{
		Watermarker: wm,
		Display:     d,
		Prefix:      c.Watermark.Prefix,
		Batch:       batchOptions(c),
		NoColor:     g.noColor,
	}
	if len(args) == 1 {
		opts.StartPath = args[0]
	}
	if err := tui.Run(cmd.Context(), opts); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
