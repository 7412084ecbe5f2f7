package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeLevel = `
sim: cube
seed: 42
grid:
  face: 12
walls:
  south_probability: 0.25
  west_probability: 0
  outer_walls: false
agents:
  bouncers: 0
  seekers: 30
  speed: 3.5
run:
  ticks: 250
  dt: 0.02
`

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  cols: 20\n  rows: 10\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "maze", l.Sim)
	assert.Equal(t, int64(1337), l.Seed)
	assert.Equal(t, 1000, l.Run.Ticks)
	assert.Equal(t, 30, l.Run.TPS)
	assert.Equal(t, map[string]string{"seed": "1337", "cols": "20", "rows": "10"}, l.ToMap())
}

func TestParseCubeLevel(t *testing.T) {
	l, err := Parse([]byte(cubeLevel))
	require.NoError(t, err)
	assert.Equal(t, "cube", l.Sim)
	assert.Equal(t, 250, l.Run.Ticks)

	m := l.ToMap()
	assert.Equal(t, "42", m["seed"])
	assert.Equal(t, "12", m["face"])
	assert.Equal(t, "0.25", m["south_probability"])
	assert.Equal(t, "0", m["west_probability"], "explicit zero must survive")
	assert.Equal(t, "false", m["outer_walls"])
	assert.Equal(t, "0", m["bouncers"])
	assert.Equal(t, "30", m["seekers"])
	assert.Equal(t, "3.5", m["speed"])
	assert.Equal(t, "0.02", m["dt"])
	assert.NotContains(t, m, "targets")
	assert.NotContains(t, m, "cols")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read level file")

	_, err = Parse([]byte("grid: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse level file")
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"negative cols":   "grid:\n  cols: -3\n",
		"unit face":       "grid:\n  face: 1\n",
		"probability":     "walls:\n  south_probability: 1.5\n",
		"negative agents": "agents:\n  seekers: -1\n",
		"negative ticks":  "run:\n  ticks: -10\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	l := Default()
	require.NoError(t, l.Validate())
	assert.Equal(t, "maze", l.Sim)
	assert.Len(t, l.ToMap(), 1)
}

func TestShippedLevelsLoad(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "levels", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		l, err := Load(path)
		require.NoError(t, err, path)
		assert.Contains(t, []string{"maze", "cube"}, l.Sim, path)
	}
}
