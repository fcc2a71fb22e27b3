package cli

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"wmark/internal/config"
	"wmark/internal/imageio"
)

// execute runs a fresh command tree so flag values never leak between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(240, 160, color.NRGBA{R: 90, G: 120, B: 150, A: 255})
	if err := imageio.Save(img, path); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

// noConfig points --config at a file that does not exist, so defaults apply.
func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

func TestRootCommand(t *testing.T) {
	root := NewRootCmd("test")
	if root.Use != "wmark [image]" {
		t.Errorf("expected Use 'wmark [image]', got '%s'", root.Use)
	}
	for _, name := range []string{"edit", "batch", "apply", "init"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected subcommand '%s'", name)
		}
	}
	for _, flag := range []string{"config", "verbose", "vv", "log-file", "no-color"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag '%s'", flag)
		}
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		name string
		g    globals
		want int
	}{
		{"quiet", globals{}, 0},
		{"info", globals{verbose: 1}, 1},
		{"debug by count", globals{verbose: 2}, 2},
		{"debug by vv", globals{debug: true}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.g.verbosity(); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestApplyWritesNextToSource(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "shot.png")

	out, err := execute(t, "apply", src, "--text", "© test", "--config", noConfig(t))
	if err != nil {
		t.Fatalf("apply failed: %v\n%s", err, out)
	}
	want := filepath.Join(dir, "watermark_shot.png")
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected output path %s, got %q", want, out)
	}
	got, err := imageio.Open(want)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	if got.Bounds().Dx() != 240 || got.Bounds().Dy() != 160 {
		t.Fatalf("result size changed: %v", got.Bounds())
	}
	orig, err := imageio.Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if c := imaging.Clone(orig).NRGBAAt(239, 159); c.R != 90 || c.G != 120 || c.B != 150 {
		t.Fatalf("source modified: %v", c)
	}
}

func TestApplyOutDirAndPrefixFromConfig(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := writeImage(t, dir, "a.jpg")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	c := config.Default()
	c.Watermark.Prefix = "wm-"
	if err := config.Save(cfgPath, c); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "apply", src, "--text", "x", "--out-dir", outDir, "--config", cfgPath); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "wm-a.jpg")); err != nil {
		t.Fatalf("expected prefixed output: %v", err)
	}
}

func TestApplyRejectsEmptyText(t *testing.T) {
	src := writeImage(t, t.TempDir(), "a.png")
	if _, err := execute(t, "apply", src, "--text", "", "--config", noConfig(t)); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "one.png")
	writeImage(t, dir, "two.png")

	out, err := execute(t, "batch", "--dir", dir, "--text", "batch", "--config", noConfig(t))
	if err != nil {
		t.Fatalf("batch failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Watermarked 2 file(s)") {
		t.Fatalf("unexpected output %q", out)
	}
	for _, n := range []string{"watermark_one.png", "watermark_two.png"} {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Fatalf("missing %s: %v", n, err)
		}
	}
}

func TestBatchUnreadableFile(t *testing.T) {
	newDir := func(t *testing.T) string {
		dir := t.TempDir()
		writeImage(t, dir, "a.png")
		if err := os.WriteFile(filepath.Join(dir, "b.png"), []byte("not an image"), 0o644); err != nil {
			t.Fatal(err)
		}
		writeImage(t, dir, "c.png")
		return dir
	}

	t.Run("stops by default", func(t *testing.T) {
		dir := newDir(t)
		if _, err := execute(t, "batch", "--dir", dir, "--text", "x", "--config", noConfig(t)); err == nil {
			t.Fatal("expected the sweep to stop at b.png")
		}
		if _, err := os.Stat(filepath.Join(dir, "watermark_c.png")); !os.IsNotExist(err) {
			t.Fatalf("c.png should not have been processed")
		}
	})

	t.Run("continue on error", func(t *testing.T) {
		dir := newDir(t)
		out, err := execute(t, "batch", "--dir", dir, "--text", "x", "--continue-on-error", "--config", noConfig(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "skipped") || !strings.Contains(out, "Watermarked 2 file(s)") {
			t.Fatalf("unexpected output %q", out)
		}
	})
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wmark", "config.yaml")

	if _, err := execute(t, "init", "--config", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if c.Watermark.Prefix != "watermark_" || c.Font.Size != 40 {
		t.Fatalf("unexpected defaults: %+v", c)
	}

	if _, err := execute(t, "init", "--config", path); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if _, err := execute(t, "init", "--config", path, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("watermark:\n  opacity: 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := writeImage(t, t.TempDir(), "a.png")
	if _, err := execute(t, "apply", src, "--text", "x", "--config", cfgPath); err == nil {
		t.Fatal("expected invalid opacity to fail")
	}
}

func TestApplyRejectsUnsupportedFormat(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.webp")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "apply", src, "--text", "x", "--config", noConfig(t))
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
