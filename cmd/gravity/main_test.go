package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T, dir string) (o, d, x string) {
	t.Helper()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	o = write("origins.csv", "id,weight\nA,100\nB,200\n")
	d = write("destinations.csv", "id,weight\nX,150\nY,150\n")
	x = write("distances.csv", "A,X,1\nA,Y,2\nB,X,2\nB,Y,1\n")
	return o, d, x
}

func TestRun_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	o, d, x := writeInputs(t, dir)
	out := filepath.Join(dir, "out")
	db := filepath.Join(dir, "runs.db")

	cfg := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
anneal:
  steps: 3
  attempts: 10
  successes: 2
`), 0o644))

	err := run([]string{
		"-config", cfg,
		"-origins", o, "-destinations", d, "-distances", x,
		"-observed", "400", "-seed", "5",
		"-out", out, "-db", db,
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1, "one run directory")
	require.FileExists(t, filepath.Join(out, entries[0].Name(), "Final Run Stats.csv"))
	require.FileExists(t, db)
}

func TestRun_MissingInputs(t *testing.T) {
	require.Error(t, run([]string{"-observed", "10"}))
	require.Error(t, run([]string{"-bogus"}))
}
