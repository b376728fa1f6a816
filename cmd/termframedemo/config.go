package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the demo's optional on-disk configuration, loaded from
// config.toml in the current working directory if present.
type Config struct {
	Render struct {
		FPS int `toml:"fps"`
	} `toml:"render"`
	Input struct {
		Mouse string `toml:"mouse"`
	} `toml:"input"`
	Theme struct {
		Name string `toml:"name"`
	} `toml:"theme"`
}

// DefaultConfig returns the config used when no file is present.
func DefaultConfig() Config {
	c := Config{}
	c.Render.FPS = 60
	c.Input.Mouse = "sgr"
	c.Theme.Name = "dark"
	return c
}

// LoadConfig reads path if it exists, overlaying DefaultConfig; a
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
