package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// PlaysetDetail is one labelled list in a playset description.
type PlaysetDetail struct {
	Label string   `yaml:"label" json:"label"`
	Items []string `yaml:"items" json:"items"`
}

// PlaysetConfig is a playset configuration bundle. RulesModules is the map
// of named boolean feature flags that branch deck setup and phase behavior
// (classicSetup, finalGirl, ...).
type PlaysetConfig struct {
	Name         string          `yaml:"name" json:"name"`
	Description  string          `yaml:"description" json:"description"`
	Details      []PlaysetDetail `yaml:"details" json:"details"`
	RulesModules map[string]bool `yaml:"rulesModules" json:"rulesModules"`
}

// Playset pairs a config with its directory id.
type Playset struct {
	ID     string
	Config PlaysetConfig
}

// ContentManager loads playset configuration bundles from a content
// directory. Each playset lives in its own subdirectory with a config.yaml;
// lookups deep-merge the default bundle under the requested playset.
type ContentManager struct {
	baseDir string
	configs map[string]map[string]any
	logger  Logger
	mutex   sync.RWMutex
}

// NewContentManager creates a content manager rooted at baseDir. When
// baseDir is empty the content directory is located relative to the working
// directory, which also covers tests running from cmd/server.
func NewContentManager(baseDir string, logger Logger) *ContentManager {
	if baseDir == "" {
		baseDir = "content"
		if _, err := os.Stat(baseDir); err != nil {
			baseDir = filepath.Join("..", "..", "content")
		}
	}
	return &ContentManager{
		baseDir: baseDir,
		configs: make(map[string]map[string]any),
		logger:  logger,
	}
}

// Load reads every playset config under the content directory.
func (cm *ContentManager) Load() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	entries, err := os.ReadDir(cm.baseDir)
	if err != nil {
		return fmt.Errorf("failed to read content dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(cm.baseDir, entry.Name(), "config.yaml")
		raw, err := os.ReadFile(path)
		if err != nil {
			continue // playset directories without a config are ignored
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		cm.configs[entry.Name()] = doc
	}

	if _, ok := cm.configs["default"]; !ok {
		return fmt.Errorf("content dir %s has no default playset", cm.baseDir)
	}

	cm.logger.Printf("loaded %d playset configs from %s", len(cm.configs), cm.baseDir)
	return nil
}

// PlaysetConfig returns the merged configuration for a playset id. Unknown
// or empty ids resolve to the default bundle; lookup is total.
func (cm *ContentManager) PlaysetConfig(id string) PlaysetConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	merged := cm.configs["default"]
	if id != "" && id != "default" {
		if overlay, ok := cm.configs[id]; ok {
			merged = deepMerge(merged, overlay).(map[string]any)
		}
	}

	var config PlaysetConfig
	raw, err := yaml.Marshal(merged)
	if err != nil {
		return config
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		cm.logger.Printf("failed to decode playset %q config: %v", id, err)
	}
	return config
}

// RulesModule reports whether a named rules module is enabled for a playset.
func (cm *ContentManager) RulesModule(playsetID, module string) bool {
	return cm.PlaysetConfig(playsetID).RulesModules[module]
}

// AvailablePlaysets lists every loaded playset in id order.
func (cm *ContentManager) AvailablePlaysets() []Playset {
	cm.mutex.RLock()
	ids := make([]string, 0, len(cm.configs))
	for id := range cm.configs {
		ids = append(ids, id)
	}
	cm.mutex.RUnlock()
	sort.Strings(ids)

	playsets := make([]Playset, 0, len(ids))
	for _, id := range ids {
		playsets = append(playsets, Playset{ID: id, Config: cm.PlaysetConfig(id)})
	}
	return playsets
}

// deepMerge overlays source onto target. Maps merge key by key; any other
// value, including arrays, is replaced wholesale.
func deepMerge(target, source any) any {
	targetMap, targetOK := target.(map[string]any)
	sourceMap, sourceOK := source.(map[string]any)
	if !targetOK || !sourceOK {
		return source
	}

	result := make(map[string]any, len(targetMap))
	for key, value := range targetMap {
		result[key] = value
	}
	for key, value := range sourceMap {
		if existing, ok := result[key]; ok {
			result[key] = deepMerge(existing, value)
		} else {
			result[key] = value
		}
	}
	return result
}
