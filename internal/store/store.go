// Package store persists saved display configurations.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/sway-displays/internal/model"
)

// Store holds every saved configuration: default ones keyed by the set of
// connected displays, custom ones keyed by a user-chosen name.
type Store struct {
	Default map[model.TopologyID]model.Snapshot
	Custom  map[string]model.Snapshot

	// ModTime is the document's modification time at load, zero when the
	// document did not exist.
	ModTime time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		Default: make(map[model.TopologyID]model.Snapshot),
		Custom:  make(map[string]model.Snapshot),
	}
}

// Top-level keys of the document.
const (
	customKey  = "custom_configurations"
	defaultKey = "default_configurations"
)

// Load reads the store from path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if info, err := os.Stat(path); err == nil {
		s.ModTime = info.ModTime()
	}
	return s, nil
}

// Parse decodes a YAML document. Default configurations are keyed by a
// sequence of output identities, which a Go map cannot decode into, so the
// document is walked as a node tree.
func Parse(data []byte) (*Store, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	s := New()
	if root.Kind == 0 || len(root.Content) == 0 {
		return s, nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return s, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document must be a mapping", top.Line)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		keyNode, valueNode := top.Content[i], top.Content[i+1]
		if isNull(valueNode) {
			continue
		}

		switch keyNode.Value {
		case customKey:
			var custom map[string]model.Snapshot
			if err := valueNode.Decode(&custom); err != nil {
				return nil, fmt.Errorf("%s: %w", customKey, err)
			}
			for name, snap := range custom {
				s.Custom[name] = nonNil(snap)
			}
		case defaultKey:
			if err := s.parseDefaults(valueNode); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// parseDefaults reads the default_configurations mapping. Keys that name
// the same set of displays in a different order are rejected.
func (s *Store) parseDefaults(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", node.Line, defaultKey)
	}

	seen := make(map[model.TopologyID]int)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		ids, err := decodeTopology(keyNode)
		if err != nil {
			return err
		}
		topology := model.NewTopologyID(ids...)
		if line, dup := seen[topology]; dup {
			return fmt.Errorf("line %d: configuration for %s already defined at line %d",
				keyNode.Line, topology, line)
		}
		seen[topology] = keyNode.Line

		var snap model.Snapshot
		if err := valueNode.Decode(&snap); err != nil {
			return fmt.Errorf("line %d: %w", valueNode.Line, err)
		}
		s.Default[topology] = nonNil(snap)
	}
	return nil
}

// decodeTopology reads a default configuration key. The key is normally a
// sequence of identities; a plain scalar is taken as a single display.
func decodeTopology(node *yaml.Node) ([]model.OutputID, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		ids := make([]model.OutputID, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: display identity must be a string", item.Line)
			}
			ids = append(ids, model.OutputID(item.Value))
		}
		return ids, nil
	case yaml.ScalarNode:
		return []model.OutputID{model.OutputID(node.Value)}, nil
	default:
		return nil, fmt.Errorf("line %d: default configuration key must be a list of displays", node.Line)
	}
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func nonNil(snap model.Snapshot) model.Snapshot {
	if snap == nil {
		return model.Snapshot{}
	}
	return snap
}

// Marshal encodes the store as a YAML document. Empty sections are
// omitted and keys are written in sorted order.
func (s *Store) Marshal() ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	if len(s.Custom) > 0 {
		customNode := &yaml.Node{}
		if err := customNode.Encode(s.Custom); err != nil {
			return nil, fmt.Errorf("encode custom configurations: %w", err)
		}
		top.Content = append(top.Content, scalarNode(customKey), customNode)
	}

	if len(s.Default) > 0 {
		keys := make([]model.TopologyID, 0, len(s.Default))
		for k := range s.Default {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		defaultsNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			keyNode := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, id := range k.Outputs() {
				keyNode.Content = append(keyNode.Content, scalarNode(string(id)))
			}

			valueNode := &yaml.Node{}
			if err := valueNode.Encode(s.Default[k]); err != nil {
				return nil, fmt.Errorf("encode configuration %s: %w", k, err)
			}
			defaultsNode.Content = append(defaultsNode.Content, keyNode, valueNode)
		}
		top.Content = append(top.Content, scalarNode(defaultKey), defaultsNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// Save writes the store to path, creating parent directories as needed.
// The file is replaced atomically via a temp file.
func (s *Store) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal configurations: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// GetDefault returns the default configuration for a topology.
func (s *Store) GetDefault(id model.TopologyID) (model.Snapshot, bool) {
	snap, ok := s.Default[id]
	return snap, ok
}

// PutDefault stores the default configuration for a topology, replacing
// any existing one.
func (s *Store) PutDefault(id model.TopologyID, snap model.Snapshot) {
	s.Default[id] = snap
}

// GetCustom returns the custom configuration with the given name.
func (s *Store) GetCustom(name string) (model.Snapshot, bool) {
	snap, ok := s.Custom[name]
	return snap, ok
}

// PutCustom stores a custom configuration, replacing any existing one.
func (s *Store) PutCustom(name string, snap model.Snapshot) {
	s.Custom[name] = snap
}
