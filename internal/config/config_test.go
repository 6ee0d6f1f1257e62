package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFormatsAgree(t *testing.T) {
	tomlPath := write(t, "calc.toml", `
prompt = "calc> "
format = "%.3f"
minimal = true
log_level = "debug"

[constants]
g = 9.80665
c = 299792458
`)
	yamlPath := write(t, "calc.yaml", `
prompt: "calc> "
format: "%.3f"
minimal: true
log_level: debug
constants:
  g: 9.80665
  c: 299792458
`)
	a, err := Load(tomlPath)
	require.NoError(t, err)
	b, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "calc> ", a.Prompt)
	assert.Equal(t, "%.3f", a.Format)
	assert.True(t, a.Minimal)
	assert.Equal(t, "debug", a.LogLevel)
	assert.Equal(t, map[string]float64{"g": 9.80665, "c": 299792458}, a.Constants)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := write(t, "calc.yml", "format: human\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	want := Default()
	want.Format = "human"
	assert.Equal(t, want, cfg)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"ext", "calc.ini", "prompt = x"},
		{"toml", "calc.toml", "prompt = "},
		{"yaml", "calc.yaml", "prompt: [\n"},
		{"ident", "calc.toml", "[constants]\n\"2x\" = 1\n"},
		{"underscore", "calc.yaml", "constants:\n  big_g: 1\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(write(t, c.file, c.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFrame(t *testing.T) {
	cfg := Default()
	cfg.Constants = map[string]float64{"g": 9.5, "pi": 3}
	base := calc.DefaultFrame()
	f := cfg.Frame(base)
	x, err := calc.Parse("2*g + pi", calc.WithEnv(f))
	require.NoError(t, err)
	assert.Equal(t, 22.0, x)
	assert.True(t, f["sin"].IsFunc())
	_, ok := base["g"]
	assert.False(t, ok, "base frame modified")
}
