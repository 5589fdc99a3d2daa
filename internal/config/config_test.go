package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/require"
)

const configExample = `
[output]
mode = "decimal"
scale = 4

[log]
level = "debug"
`

func TestConfig(t *testing.T) {
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "ratcalc.toml")
	require.Nil(os.WriteFile(file, []byte(configExample), 0o600))

	custom, err := Initialize(file)
	require.Nil(err)
	require.Equal(ModeDecimal, custom.Output.Mode)
	require.Equal(4, custom.Output.Scale)
	require.Equal("debug", custom.Log.Level)
	require.Equal(logiface.LevelDebug, custom.LogLevel())

	_, err = Initialize(filepath.Join(t.TempDir(), "missing.toml"))
	require.NotNil(err)
}

func TestDefault(t *testing.T) {
	require := require.New(t)

	custom := Default()
	require.Equal(ModeFraction, custom.Output.Mode)
	require.Equal(DefaultScale, custom.Output.Scale)
	require.Equal(logiface.LevelInformational, custom.LogLevel())
	require.Nil(custom.Validate())

	custom, err := Parse([]byte("[output]\nmode = \"float\"\n"))
	require.Nil(err)
	require.Equal(ModeFloat, custom.Output.Mode)
	require.Equal(DefaultScale, custom.Output.Scale)
	require.Equal(DefaultLogLevel, custom.Log.Level)
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":    "[output\nmode = 1",
		"mode":      "[output]\nmode = \"hex\"\n",
		"scale":     "[output]\nscale = -1\n",
		"big scale": "[output]\nscale = 100000\n",
		"level":     "[log]\nlevel = \"loud\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]logiface.Level{
		"off":     logiface.LevelDisabled,
		"err":     logiface.LevelError,
		"error":   logiface.LevelError,
		"warn":    logiface.LevelWarning,
		"notice":  logiface.LevelNotice,
		"info":    logiface.LevelInformational,
		"debug":   logiface.LevelDebug,
		"trace":   logiface.LevelTrace,
		"warning": logiface.LevelWarning,
	} {
		got, err := ParseLevel(s)
		require.NoError(t, err, s)
		require.Equal(t, want, got, s)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
