package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/clitl/pkg/gradient"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 80*time.Millisecond, cfg.SpeedInterval())
	assert.Equal(t, "Hello World!", cfg.Text)
	assert.Equal(t, "Gradient Example", cfg.Example.Text)
	assert.Equal(t, "   ", cfg.Example.Divider)

	dir, err := cfg.DirectionValue()
	require.NoError(t, err)
	assert.Equal(t, gradient.Left, dir)

	assert.Equal(t, 60*time.Millisecond, cfg.Interval("rainbow"))
	assert.Equal(t, 80*time.Millisecond, cfg.Interval("DarkRainbow"))
	assert.Equal(t, 70*time.Millisecond, cfg.Interval("sunset"))
	assert.Equal(t, 65*time.Millisecond, cfg.Interval("loading"))
	assert.Equal(t, 90*time.Millisecond, cfg.Interval("glitch"))
}

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "full.toml"))
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.Speed)
	assert.Equal(t, "from config", cfg.Text)
	assert.Equal(t, "Demo", cfg.Example.Text)
	assert.Equal(t, " | ", cfg.Example.Divider)
	assert.Equal(t, []string{"Rainbow", "dark-rainbow"}, cfg.Example.Effects)

	dir, err := cfg.DirectionValue()
	require.NoError(t, err)
	assert.Equal(t, gradient.Right, dir)

	// Interval tables merge with the defaults.
	assert.Equal(t, 120*time.Millisecond, cfg.Interval("darkrainbow"))
	assert.NotContains(t, cfg.Example.Intervals, "dark_rainbow")
	assert.Equal(t, 60*time.Millisecond, cfg.Interval("rainbow"))
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.toml"))
	require.NoError(t, err)

	want := Default()
	want.Text = "only text"
	assert.Equal(t, want, cfg)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid.toml"))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "invalid.toml")
	assert.Contains(t, msg, "invalid speed 0: expected a positive number (ms between frames)")
	assert.Contains(t, msg, `invalid direction "up"`)
	assert.Contains(t, msg, `unknown gradient effect "sparkle"`)
	assert.Contains(t, msg, "example.intervals.sunset: invalid speed -5")
	assert.ErrorIs(t, err, gradient.ErrUnknownEffect)
}

func TestLoadFractional(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "fractional.toml"))
	require.NoError(t, err)

	assert.Equal(t, 80500*time.Microsecond, cfg.SpeedInterval())
	assert.Equal(t, 1500*time.Microsecond, cfg.Interval("sunset"))
	assert.Equal(t, 60*time.Millisecond, cfg.Interval("rainbow"))
}

func TestLoadNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("speed = nan\n\n[example.intervals]\nglitch = inf\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid speed NaN")
	assert.Contains(t, err.Error(), "example.intervals.glitch: invalid speed +Inf")
}

func TestParseSpeed(t *testing.T) {
	for _, tc := range []struct {
		ms   float64
		want time.Duration
	}{
		{80, 80 * time.Millisecond},
		{0.5, 500 * time.Microsecond},
		{0.25, 250 * time.Microsecond},
	} {
		got, err := ParseSpeed(tc.ms)
		require.NoError(t, err, tc.ms)
		assert.Equal(t, tc.want, got, tc.ms)
	}

	for _, ms := range []float64{0, -10, 1e-7, math.NaN(), math.Inf(1), math.Inf(-1), 1e300} {
		_, err := ParseSpeed(ms)
		require.Error(t, err, ms)
		assert.Contains(t, err.Error(), "expected a positive number (ms between frames)")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("speed = ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing "+path)
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("speed = 25\n"), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, cfg, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, 25.0, cfg.Speed)
}

func TestFindStopsAtRepositoryRoot(t *testing.T) {
	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, FileName), []byte("speed = 25\n"), 0o644))

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path, cfg, err := Find(repo)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestFindFallsBackToUserConfig(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0o755))

	home := t.TempDir()
	userFile := filepath.Join(home, UserFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(userFile), 0o755))
	require.NoError(t, os.WriteFile(userFile, []byte("direction = \"right\"\n"), 0o644))

	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path, cfg, err := Find(repo)
	require.NoError(t, err)
	assert.Equal(t, userFile, path)
	assert.Equal(t, "right", cfg.Direction)
}

func TestStringRoundTrips(t *testing.T) {
	var decoded Config
	_, err := toml.Decode(Default().String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, Default(), &decoded)
}
