package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apparentlymart/arcsim/machs"
)

func runArgs(t *testing.T, table *machs.Table, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), &out, &errOut, args, table)
	return out.String(), errOut.String(), err
}

func TestListText(t *testing.T) {
	out, _, err := runArgs(t, machs.Build(machs.AllFlags()))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 4)
	require.Contains(t, string(lines[0]), "BFD NAME")
	require.Contains(t, string(lines[1]), "a5")
	require.Contains(t, string(lines[2]), "arc600")
	require.Contains(t, string(lines[3]), "atomic, barrel, mmu, mpy, norm, swap")
}

func TestListEmpty(t *testing.T) {
	out, _, err := runArgs(t, machs.Build(machs.Flags{}))
	require.NoError(t, err)
	require.Equal(t, "no machines compiled in\n", out)
}

func TestListJSON(t *testing.T) {
	out, _, err := runArgs(t, machs.Build(machs.Flags{ARC700: true}), "-json")
	require.NoError(t, err)

	var got []machJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Equal(t, "arc700", got[0].Name)
	require.Equal(t, "ARC700", got[0].BFDName)
	require.Equal(t, 16, got[0].InsnChunkBitsize)
	require.Equal(t, "ARC700", got[0].Models[0].Name)
	require.Equal(t, []unitJSON{
		{Name: "u-exec", Issue: 1, Done: 1},
		{Name: "u-mul", Issue: 1, Done: 3},
		{Name: "u-load", Issue: 1, Done: 2},
	}, got[0].Models[0].Units)

	// Every key uses the same snake_case style, unit fields included.
	require.Contains(t, out, `"issue": 1`)
	require.Contains(t, out, `"done": 3`)
	require.NotContains(t, out, `"Issue"`)
	require.NotContains(t, out, `"Name"`)
}

func TestListDump(t *testing.T) {
	out, _, err := runArgs(t, machs.Build(machs.Flags{A5: true}), "-dump")
	require.NoError(t, err)
	require.Contains(t, out, `BFDName: (string) (len=2) "A5"`)
}

func TestSelectDefault(t *testing.T) {
	out, _, err := runArgs(t, machs.Build(machs.AllFlags()), "-select")
	require.NoError(t, err)
	require.Equal(t, "mach=a5 model=A5 cpus=1\n", out)
}

func TestSelectOverrides(t *testing.T) {
	out, _, err := runArgs(t, machs.Build(machs.AllFlags()), "-mach", "arc700", "-cpus", "2")
	require.NoError(t, err)
	require.Equal(t, "mach=arc700 model=ARC700 cpus=2\n", out)

	out, _, err = runArgs(t, machs.Build(machs.AllFlags()), "-model", "ARC600", "-json")
	require.NoError(t, err)
	var sel selectionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &sel))
	require.Equal(t, selectionJSON{Mach: "arc600", Model: "ARC600", CPUs: 1}, sel)
}

func TestSelectFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcsim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulator {
  bfd_name = "arc600"
  num_cpus = 3
}
logging {
  level  = "debug"
  format = "json"
}
`), 0644))

	out, logs, err := runArgs(t, machs.Build(machs.AllFlags()), "-config", path)
	require.NoError(t, err)
	require.Equal(t, "mach=arc600 model=ARC600 cpus=3\n", out)
	require.Contains(t, logs, `"msg":"Simulator initialized."`)

	out, _, err = runArgs(t, machs.Build(machs.AllFlags()), "-config", path, "-cpus", "1", "-log-level", "error")
	require.NoError(t, err)
	require.Equal(t, "mach=arc600 model=ARC600 cpus=1\n", out)
}

func TestSelectNoMachines(t *testing.T) {
	_, _, err := runArgs(t, machs.Build(machs.Flags{}), "-select")
	require.ErrorIs(t, err, machs.ErrNoMachines)
}

func TestUsageErrors(t *testing.T) {
	table := machs.Build(machs.AllFlags())
	for _, args := range [][]string{
		{"-bogus"},
		{"extra"},
		{"-cpus", "-1"},
		{"-log-format", "xml"},
	} {
		_, _, err := runArgs(t, table, args...)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, "%v", args)
		require.Equal(t, 2, exitErr.Code, "%v", args)
	}
}

func TestHelp(t *testing.T) {
	out, errOut, err := runArgs(t, machs.Build(machs.AllFlags()), "-h")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, errOut, "Usage:")
}
