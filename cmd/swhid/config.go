package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = ".swhid.toml"

// config holds defaults applied before flags: flags always override.
type config struct {
	Exclude     []string `toml:"exclude"`
	Dereference bool     `toml:"dereference"`
}

// loadConfig reads .swhid.toml from the working directory, falling
// back to $HOME. A missing file yields the zero config.
func loadConfig() (*config, error) {
	candidates := []string{configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, configFileName))
	}
	for _, path := range candidates {
		var cfg config
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &config{}, nil
}
