package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port int      `yaml:"port"`
	Pins []int    `yaml:"pins"`
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}

func TestLoadYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: 4210\npins: [17, 22, 27]\nname: coordinator\ntags:\n  - a\n  - b\n"), 0666))

	cfg, err := LoadYamlFile[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, 4210, cfg.Port)
	require.Equal(t, []int{17, 22, 27}, cfg.Pins)
	require.Equal(t, "coordinator", cfg.Name)
	require.Equal(t, []string{"a", "b"}, cfg.Tags)
}

func TestLoadYamlFileMissing(t *testing.T) {
	_, err := LoadYamlFile[testConfig](filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestJsonDumps(t *testing.T) {
	out, err := JsonDumps(map[string]int{"port": 4210}, false)
	require.NoError(t, err)
	require.Equal(t, `{"port":4210}`, out)

	pretty, err := JsonDumps(map[string]int{"port": 4210}, true)
	require.NoError(t, err)
	require.Contains(t, pretty, "\n")
}
