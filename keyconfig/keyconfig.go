package keyconfig

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

//go:embed default.yaml
var defaultYaml []byte

type Layout struct {
	Lanes []string `yaml:"lanes"`
}

type KeyConfig struct {
	Default string            `yaml:"default"`
	Keys    map[string]Layout `yaml:"keys"`
}

func (l Layout) Num() int {
	return len(l.Lanes)
}

// LaneIndex resolves a lane token, either a zero-based index or a lane name.
func (l Layout) LaneIndex(token string) (int, bool) {
	if n, err := strconv.Atoi(token); err == nil {
		return n, n >= 0 && n < len(l.Lanes)
	}
	for i, name := range l.Lanes {
		if name == token {
			return i, true
		}
	}
	return 0, false
}

func (c *KeyConfig) Layout(kind string) (Layout, bool) {
	l, ok := c.Keys[kind]
	return l, ok
}

func (c *KeyConfig) DefaultLayout() Layout {
	return c.Keys[c.Default]
}

func parse(data []byte) (*KeyConfig, error) {
	var c KeyConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse key config: %w", err)
	}
	if len(c.Keys) == 0 {
		return nil, fmt.Errorf("key config has no layouts")
	}
	for kind, l := range c.Keys {
		if len(l.Lanes) == 0 {
			return nil, fmt.Errorf("key kind %q has no lanes", kind)
		}
	}
	if _, ok := c.Keys[c.Default]; !ok {
		return nil, fmt.Errorf("default key kind %q is not defined", c.Default)
	}
	return &c, nil
}

func Default() *KeyConfig {
	c, err := parse(defaultYaml)
	if err != nil {
		panic("Built-in key config is broken: " + err.Error())
	}
	return c
}

// Load reads a YAML key config, or returns the built-in one when path is empty.
func Load(path string) (*KeyConfig, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key config: %w", err)
	}
	return parse(data)
}
