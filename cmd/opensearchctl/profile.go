package main

import (
	"fmt"
	"os"

	opensearch "github.com/findyi/opensearch-go"
	"gopkg.in/yaml.v3"
)

// loadProfile overlays the keys present in the YAML file at path onto cfg.
func loadProfile(path string, cfg *opensearch.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse profile %s: %w", path, err)
	}
	return nil
}
