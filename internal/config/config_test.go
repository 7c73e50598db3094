package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/apparentlymart/arcsim/machs"
	"github.com/apparentlymart/arcsim/sim"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arcsim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
simulator {
  mach     = "arc600"
  model    = "ARC600"
  num_cpus = 2
}

logging {
  level  = "DEBUG"
  format = "json"
}
`)
	cfg, err := Load(context.Background(), path, machs.Build(machs.AllFlags()))
	require.NoError(t, err)

	want := &Config{
		Sim:       sim.Config{Mach: "arc600", Model: "ARC600", NumCPUs: 2},
		LogLevel:  "debug",
		LogFormat: "json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("wrong config (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), writeConfig(t, ""), machs.Build(machs.AllFlags()))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"), machs.Build(machs.AllFlags()))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpressionsSeeTable(t *testing.T) {
	src := []byte(`
simulator {
  mach = contains(machs, "arc700") ? "arc700" : element(machs, 0)
  bfd_name = upper(bfd_names[0])
}
`)
	cfg, err := Parse(context.Background(), src, "test.hcl", machs.Build(machs.AllFlags()))
	require.NoError(t, err)
	require.Equal(t, "arc700", cfg.Sim.Mach)
	require.Equal(t, "A5", cfg.Sim.BFDName)

	cfg, err = Parse(context.Background(), src, "test.hcl", machs.Build(machs.Flags{ARC600: true}))
	require.NoError(t, err)
	require.Equal(t, "arc600", cfg.Sim.Mach)
	require.Equal(t, "ARC600", cfg.Sim.BFDName)
}

func TestEmptyTableVariables(t *testing.T) {
	src := []byte(`
simulator {
  mach = length(machs) > 0 ? machs[0] : ""
}
`)
	cfg, err := Parse(context.Background(), src, "test.hcl", machs.Build(machs.Flags{}))
	require.NoError(t, err)
	require.Equal(t, "", cfg.Sim.Mach)
}

func TestParseErrors(t *testing.T) {
	table := machs.Build(machs.AllFlags())
	tests := map[string]struct {
		src  string
		want string
	}{
		"syntax":        {`simulator {`, "failed to parse config file"},
		"unknown block": {`cpu {}`, "failed to decode config file"},
		"unknown attr":  {"simulator {\n  speed = 3\n}\n", "failed to decode config file"},
		"bad level":     {"logging {\n  level = \"loud\"\n}\n", "invalid log level"},
		"bad format":    {"logging {\n  format = \"yaml\"\n}\n", "invalid log format"},
		"too many cpus": {"simulator {\n  num_cpus = 9\n}\n", "num_cpus must be between 1 and 8"},
		"zero cpus":     {"simulator {\n  num_cpus = 0\n}\n", "num_cpus must be between 1 and 8"},
		"unknown var":   {"simulator {\n  mach = cpus[0]\n}\n", "failed to decode config file"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(test.src), "test.hcl", table)
			require.ErrorContains(t, err, test.want)
		})
	}
}
