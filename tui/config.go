package tui

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/minazuki-dev/todo-list/client"
)

// Config holds client-side settings
type Config struct {
	ServerURL string `toml:"server_url"`
}

// LoadConfig reads ~/.config/todo-list/config.toml if present. The
// TODO_SERVER_URL environment variable overrides the file; defaults apply
// when neither is set.
func LoadConfig() Config {
	cfg := Config{ServerURL: client.DefaultBaseURL}

	if path := configPath(); path != "" {
		// A missing or malformed file just means defaults
		toml.DecodeFile(path, &cfg)
	}

	if url := os.Getenv("TODO_SERVER_URL"); url != "" {
		cfg.ServerURL = url
	}

	return cfg
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo-list", "config.toml")
}
