package keyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLayouts(t *testing.T) {
	c := Default()

	assert := assert.New(t)
	assert.Equal("5", c.Default)
	assert.Equal(5, c.DefaultLayout().Num())
	l, ok := c.Layout("7")
	assert.True(ok)
	assert.Equal(7, l.Num())
	_, ok = c.Layout("42")
	assert.False(ok)
}

func TestLaneIndex(t *testing.T) {
	l := Default().DefaultLayout()

	assert := assert.New(t)
	i, ok := l.LaneIndex("up")
	assert.True(ok)
	assert.Equal(2, i)
	i, ok = l.LaneIndex("4")
	assert.True(ok)
	assert.Equal(4, i)
	_, ok = l.LaneIndex("5")
	assert.False(ok)
	_, ok = l.LaneIndex("-1")
	assert.False(ok)
	_, ok = l.LaneIndex("sleft")
	assert.False(ok)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	data := "default: \"4\"\nkeys:\n  \"4\":\n    lanes: [a, b, c, d]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"a", "b", "c", "d"}, c.DefaultLayout().Lanes)
}

func TestLoadRejectsMissingDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	data := "default: \"6\"\nkeys:\n  \"4\":\n    lanes: [a, b, c, d]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesBuiltIn(t *testing.T) {
	c, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, Default(), c)
}
