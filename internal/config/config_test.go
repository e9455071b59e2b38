package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmobasa/wayscriber/internal/draw"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfg = nil
	configPathOverride = ""
	t.Cleanup(func() {
		viper.Reset()
		cfg = nil
		configPathOverride = ""
	})
}

func TestInitDefaults(t *testing.T) {
	resetConfig(t)

	// An empty file exercises pure defaults.
	path := filepath.Join(t.TempDir(), "wayscriber.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	SetConfigPath(path)
	require.NoError(t, Init())

	c := Get()
	assert.Equal(t, "pen", c.Drawing.DefaultTool)
	assert.Equal(t, 100, c.Drawing.HistoryLimit)
	assert.Equal(t, 4.0, c.Zoom.MaxScale)
	assert.True(t, c.Session.Enabled)
	assert.Equal(t, int64(10<<20), c.Session.MaxFileSizeBytes)
	assert.Equal(t, "wayscriber-{date}-{time}-{n}.png", c.Capture.FilenameTemplate)
}

func TestInitReadsFileAndMergesDefaults(t *testing.T) {
	resetConfig(t)
	path := filepath.Join(t.TempDir(), "wayscriber.toml")
	content := `
[drawing]
default_tool = "marker"
default_thickness = 9.5

[zoom]
max_scale = 8.0

[session]
history_retention = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	SetConfigPath(path)
	require.NoError(t, Init())

	c := Get()
	assert.Equal(t, "marker", c.Drawing.DefaultTool)
	assert.Equal(t, 9.5, c.Drawing.DefaultThickness)
	assert.Equal(t, 8.0, c.Zoom.MaxScale)
	assert.Equal(t, 10, c.Session.HistoryRetention)
	// Unset keys keep their defaults.
	assert.Equal(t, 100, c.Drawing.HistoryLimit)
	assert.True(t, c.Session.Backup)
}

func TestNormalizeClampsBadValues(t *testing.T) {
	c := DefaultConfig
	c.Zoom.MinScale = 0.2
	c.Zoom.MaxScale = 0.1
	c.Session.HistoryRetention = -5
	c.Drawing.DefaultThickness = -1
	c.normalize()

	assert.Equal(t, 1.0, c.Zoom.MinScale)
	assert.Equal(t, 1.0, c.Zoom.MaxScale)
	assert.Equal(t, 0, c.Session.HistoryRetention)
	assert.Equal(t, DefaultConfig.Drawing.DefaultThickness, c.Drawing.DefaultThickness)
}

func TestSaveWritesFile(t *testing.T) {
	resetConfig(t)
	path := filepath.Join(t.TempDir(), "wayscriber.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	SetConfigPath(path)
	require.NoError(t, Init())

	require.NoError(t, Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_tool")
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    draw.Color
		wantErr bool
	}{
		{"red", draw.Red, false},
		{"  Blue ", draw.Blue, false},
		{"#ff0000", draw.Color{R: 1, A: 1}, false},
		{"#bad", draw.Color{}, true},
		{"mauve", draw.Color{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want.R, got.R, 0.01)
			assert.InDelta(t, tc.want.G, got.G, 0.01)
			assert.InDelta(t, tc.want.B, got.B, 0.01)
		})
	}
}

func TestDefaultPenColorFallsBack(t *testing.T) {
	c := DefaultConfig
	c.Drawing.DefaultColor = "not-a-color"
	assert.Equal(t, draw.Red, c.DefaultPenColor())
}
