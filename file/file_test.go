package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/dosrevive/dos"
	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGatherChartPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.dos"), "")
	writeFile(t, filepath.Join(dir, "nested", "b.TXT"), "")
	writeFile(t, filepath.Join(dir, "song.ogg"), "")

	paths, err := GatherChartPaths(dir, 0)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.dos"),
		filepath.Join(dir, "nested", "b.TXT"),
	}, paths)

	paths, err = GatherChartPaths(dir, 1)
	assert.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestReadChartFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.dos")
	bad := filepath.Join(dir, "bad.dos")
	writeFile(t, good, "|timings=1,0,160|bf=120|")
	writeFile(t, bad, "|aaa|bbb|")

	decoder := dos.NewDecoder(nil)
	chart, err := ReadChartFile(decoder, good)
	assert.NoError(t, err)
	assert.Equal(t, 120, chart.BlankFrame)

	chart, err = ReadChartFile(decoder, bad)
	assert.Nil(t, chart)
	assert.ErrorIs(t, err, dos.ErrInvalidChart)

	_, err = ReadChartFile(decoder, filepath.Join(dir, "missing.dos"))
	assert.Error(t, err)
}
