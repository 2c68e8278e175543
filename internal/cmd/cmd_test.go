package cmd

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MeKo-Tech/noisetex/internal/params"
	"github.com/MeKo-Tech/noisetex/internal/render"
	"github.com/MeKo-Tech/noisetex/internal/session"
	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger(t *testing.T) {
	t.Helper()
	prev := logger
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	t.Cleanup(func() { logger = prev })
}

func newTestShell(t *testing.T, out io.Writer) *shell {
	t.Helper()
	gen, err := texture.NewGenerator(texture.GeneratorOptions{})
	require.NoError(t, err)
	return &shell{
		session: session.New(params.NewModel(), gen, session.FixedSeed(42), slog.New(slog.NewTextHandler(io.Discard, nil))),
		out:     out,
	}
}

func TestShell_Session(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	path := filepath.Join(t.TempDir(), "shot.png")

	script := strings.Join([]string{
		"# comment",
		"set width 16",
		"set height 8",
		"set octaves 99",
		"dec octaves",
		"inc persistence",
		"save " + path,
		"generate",
		"save " + path,
		"clear",
		"bogus",
		"quit",
		"set width 32",
	}, "\n")

	require.NoError(t, sh.run(context.Background(), strings.NewReader(script)))

	text := out.String()
	assert.Contains(t, text, "width = 16")
	assert.Contains(t, text, "octaves = 16")
	assert.Contains(t, text, "octaves = 15")
	assert.Contains(t, text, "persistence = 91")
	assert.Contains(t, text, "error: no texture to render")
	assert.Contains(t, text, "generated 16x8 seed=42")
	assert.Contains(t, text, "saved "+path)
	assert.Contains(t, text, "cleared")
	assert.Contains(t, text, `error: unknown command "bogus"`)
	assert.NotContains(t, text, "width = 32", "commands after quit must not run")

	assert.Nil(t, sh.session.Buffer())
	assert.Equal(t, 16, sh.session.Parameters().Width)

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestShell_BadArguments(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)

	script := "set width\nset width abc\nset depth 3\ninc\ndec gain\nsave\n"
	require.NoError(t, sh.run(context.Background(), strings.NewReader(script)))

	assert.Equal(t, 6, strings.Count(out.String(), "error:"))
	assert.Equal(t, 300, sh.session.Parameters().Width)
}

func TestShell_Show(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)

	require.NoError(t, sh.run(context.Background(), strings.NewReader("show\n")))
	for _, name := range []string{"octaves", "lacunarity", "persistence", "frequency", "amplitude", "width", "height"} {
		assert.Contains(t, out.String(), name)
	}
	assert.Contains(t, out.String(), "DERIVED")
}

func TestPrintParams(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printParams(&out, params.NewModel()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[2], "lacunarity")
	assert.Contains(t, lines[2], "600")
	assert.Contains(t, lines[2], "6")
}

func TestBatchTasks(t *testing.T) {
	tasks := batchTasks("out", 10, 3)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, int64(10+i), task.Seed)
	}
	assert.Equal(t, filepath.Join("out", "noise_12.png"), tasks[2].Path)
}

func TestReadTextureConfig(t *testing.T) {
	quietLogger(t)
	t.Cleanup(viper.Reset)

	viper.Set("test.octaves", 4)
	viper.Set("test.lacunarity", 9999)
	viper.Set("test.persistence", 50)
	viper.Set("test.frequency", 200)
	viper.Set("test.amplitude", 100)
	viper.Set("test.width", 64)
	viper.Set("test.height", 32)
	viper.Set("test.mapping", "direct")
	viper.Set("test.noise", "simplex")
	viper.Set("test.scale", 2)
	viper.Set("test.png_compression", "speed")

	cfg, err := readTextureConfig("test")
	require.NoError(t, err)

	p := cfg.model.Snapshot()
	assert.Equal(t, 4, p.Octaves)
	assert.Equal(t, 8.0, p.Lacunarity, "lacunarity clamps to its max control value")
	assert.Equal(t, 0.5, p.Persistence)
	assert.Equal(t, 2.0, p.Frequency)
	assert.Equal(t, 64, p.Width)
	assert.Equal(t, 32, p.Height)
	assert.Equal(t, texture.DirectScale, cfg.generator.Mapping)
	assert.Equal(t, "simplex", string(cfg.generator.Noise))
	assert.Equal(t, 2, cfg.render.Scale)
}

func TestReadTextureConfig_Errors(t *testing.T) {
	quietLogger(t)

	cases := map[string]map[string]any{
		"mapping":     {"mapping": "hsv"},
		"noise":       {"noise": "worley"},
		"scale":       {"scale": 0},
		"blur":        {"blur": -1.0},
		"ramp":        {"low": "#000000"},
		"compression": {"png_compression": "max"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			viper.Set("test.scale", 1)
			for k, v := range values {
				viper.Set("test."+k, v)
			}
			_, err := readTextureConfig("test")
			assert.Error(t, err)
		})
	}
}

func TestNewLogger_FileFanout(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "noisetex.log")

	l := newLogger(&console, false, "text", file)
	l.Debug("hidden")
	l.With("component", "test").Info("hello", "n", 1)

	assert.Contains(t, console.String(), "hello")
	assert.Contains(t, console.String(), "component=test")
	assert.NotContains(t, console.String(), "hidden")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNewLogger_JSONVerbose(t *testing.T) {
	var console bytes.Buffer
	l := newLogger(&console, true, "json", "")
	l.Debug("details")
	assert.Contains(t, console.String(), `"msg":"details"`)
}

func TestShell_SaveUsesRenderOptions(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.render = render.Options{Scale: 2}
	path := filepath.Join(t.TempDir(), "x2.png")

	require.NoError(t, sh.run(context.Background(), strings.NewReader("set width 5\nset height 4\ngenerate\nsave "+path+"\n")))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 8, img.Height)
}
