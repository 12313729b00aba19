package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultServerURL = "http://localhost:8000"

// Config holds client configuration from ~/.ragchat.yaml.
type Config struct {
	ServerURL string `yaml:"server_url"`
	// RecordDir enables local JSONL recording of completed exchanges.
	RecordDir string `yaml:"record_dir"`
	// GlamourStyle is the markdown theme: "dark", "light", or "auto".
	GlamourStyle string `yaml:"glamour_style"`
}

// LoadConfig loads the config file at path, or ~/.ragchat.yaml if path is
// empty. A missing file yields defaults; RAGCHAT_SERVER overrides the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".ragchat.yaml")
	}

	config := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	if config.ServerURL == "" {
		config.ServerURL = defaultServerURL
	}
	if server := os.Getenv("RAGCHAT_SERVER"); server != "" {
		config.ServerURL = server
	}
	return config, nil
}
