// Package batch watermarks every image in a directory with the same text.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"wmark/internal/compositor"
	"wmark/internal/imageio"
)

type Options struct {
	Glob   string // default "*.*"
	Prefix string // default "watermark_"
	// ContinueOnError records unreadable files in Report.Failed instead of
	// stopping the sweep at the first one.
	ContinueOnError bool
}

type Failure struct {
	Path string
	Err  error
}

type Report struct {
	Dir     string
	Written []string
	Failed  []Failure
}

// Run opens each file matching dir/glob in lexical order, applies text and
// saves the result next to it as prefix+name. Files are handled one at a
// time. By default the first failure stops the sweep and is returned along
// with what was written so far.
func Run(ctx context.Context, wm compositor.Watermarker, dir, text string, opts Options) (Report, error) {
	if opts.Glob == "" {
		opts.Glob = "*.*"
	}
	if opts.Prefix == "" {
		opts.Prefix = "watermark_"
	}
	rep := Report{Dir: dir}
	files, err := imageio.List(dir, opts.Glob)
	if err != nil {
		return rep, err
	}
	slog.Info("Batch watermark started", "dir", dir, "files", len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		out := imageio.OutputPath(dir, path, opts.Prefix)
		if err := one(wm, path, out, text); err != nil {
			if !opts.ContinueOnError {
				return rep, fmt.Errorf("batch stopped at %s: %w", path, err)
			}
			slog.Warn("Skipping file", "path", path, "error", err)
			rep.Failed = append(rep.Failed, Failure{Path: path, Err: err})
			continue
		}
		slog.Debug("Watermarked", "src", path, "dst", out)
		rep.Written = append(rep.Written, out)
	}
	slog.Info("Batch watermark finished", "dir", dir, "written", len(rep.Written), "failed", len(rep.Failed))
	return rep, nil
}

func one(wm compositor.Watermarker, src, dst, text string) error {
	img, err := imageio.Open(src)
	if err != nil {
		return err
	}
	return imageio.Save(wm.Apply(img, text), dst)
}
