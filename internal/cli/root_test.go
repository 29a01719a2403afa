package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects status lines to a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// execute runs the root command with args.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

// writeFlag writes a solid w x h PNG into dir.
func writeFlag(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(imaging.New(w, h, c), path))
	return path
}

// flagDir returns a directory with n equal-height flags.
func flagDir(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		writeFlag(t, dir, string(rune('a'+i))+".png", 30+10*i, 20,
			color.NRGBA{R: uint8(40 * i), G: 128, B: 200, A: 255})
	}
	return dir
}

func decodeSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img.Bounds().Size()
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	t.Cleanup(func() { SetVersion("", "", "") })

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestRootCommandStructure(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"pack", "compare", "render", "config"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)
}

func TestGlobalOptsPath(t *testing.T) {
	g := &globalOpts{}
	assert.Equal(t, "config.json", filepath.Base(g.path()))

	g.configPath = "/tmp/custom.toml"
	assert.Equal(t, "/tmp/custom.toml", g.path())
}

func TestConfigInitAndShow(t *testing.T) {
	buf := captureOutput(t)
	cfg := filepath.Join(t.TempDir(), "config.json")

	require.NoError(t, execute(t, "config", "init", "--config", cfg))
	_, err := os.Stat(cfg)
	require.NoError(t, err)

	err = execute(t, "config", "init", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, execute(t, "config", "init", "--force", "--config", cfg))

	buf.Reset()
	require.NoError(t, execute(t, "config", "show", "--config", cfg))
	assert.Contains(t, buf.String(), "flagring.png")
	assert.Contains(t, buf.String(), "#000000")
}

func TestConfigShowMissingFile(t *testing.T) {
	buf := captureOutput(t)
	cfg := filepath.Join(t.TempDir(), "missing.toml")

	require.NoError(t, execute(t, "config", "show", "--config", cfg))
	assert.Contains(t, buf.String(), "showing defaults")
}
