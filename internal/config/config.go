package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the alignment config file expected in the working root
	FileName = "gidas-alignment.config.json"

	// DefaultOutputDir is used when outputDir is unset or the config is missing
	DefaultOutputDir = ".gidas/alignment"

	// UnspecifiedPeer labels peer entries without a specId
	UnspecifiedPeer = "UNSPECIFIED-PEER"

	// Unset is displayed in place of a path field that was never set
	Unset = "(unset)"
)

// AlignmentConfig represents the top-level gidas-alignment.config.json.
// Keys are matched exactly: "outputDir" is read, "OutputDir" is not.
type AlignmentConfig struct {
	OutputDirPath *string          `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	Self          *SelfDescriptors `json:"self,omitempty" yaml:"self,omitempty"`
	Peers         PeerList         `json:"peers,omitempty" yaml:"peers,omitempty"`
}

// SelfDescriptors points at this system's own descriptor files
type SelfDescriptors struct {
	IndexPath   *string `json:"indexPath,omitempty" yaml:"indexPath,omitempty"`
	OpenAPIPath *string `json:"openapiPath,omitempty" yaml:"openapiPath,omitempty"`
	AgentsPath  *string `json:"agentsPath,omitempty" yaml:"agentsPath,omitempty"`
}

// PeerEntry points at one peer's snapshot descriptors
type PeerEntry struct {
	SpecID      *string `json:"specId,omitempty" yaml:"specId,omitempty"`
	IndexPath   *string `json:"indexPath,omitempty" yaml:"indexPath,omitempty"`
	OpenAPIPath *string `json:"openapiPath,omitempty" yaml:"openapiPath,omitempty"`
}

// PeerList is the ordered peer sequence. Any non-array value decodes as an empty list.
type PeerList []PeerEntry

// UnmarshalJSON reads the known keys with exact case. A document that is not
// an object carries no fields; a null document is rejected.
func (c *AlignmentConfig) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		return errors.New("config document is null")
	}

	fields, ok, err := jsonObject(data)
	if err != nil || !ok {
		*c = AlignmentConfig{}
		return err
	}

	var config AlignmentConfig
	if config.OutputDirPath, err = jsonString(fields, "outputDir"); err != nil {
		return err
	}
	if raw, found := fields["self"]; found && !isJSONNull(raw) {
		var self SelfDescriptors
		if err := json.Unmarshal(raw, &self); err != nil {
			return err
		}
		config.Self = &self
	}
	if raw, found := fields["peers"]; found {
		if err := json.Unmarshal(raw, &config.Peers); err != nil {
			return err
		}
	}

	*c = config
	return nil
}

// UnmarshalJSON reads the known keys with exact case. A non-object value has no paths set.
func (s *SelfDescriptors) UnmarshalJSON(data []byte) error {
	fields, ok, err := jsonObject(data)
	if err != nil || !ok {
		*s = SelfDescriptors{}
		return err
	}

	var self SelfDescriptors
	if self.IndexPath, err = jsonString(fields, "indexPath"); err != nil {
		return fmt.Errorf("self: %w", err)
	}
	if self.OpenAPIPath, err = jsonString(fields, "openapiPath"); err != nil {
		return fmt.Errorf("self: %w", err)
	}
	if self.AgentsPath, err = jsonString(fields, "agentsPath"); err != nil {
		return fmt.Errorf("self: %w", err)
	}

	*s = self
	return nil
}

// UnmarshalJSON reads the known keys with exact case. A non-object value has no fields set.
func (p *PeerEntry) UnmarshalJSON(data []byte) error {
	fields, ok, err := jsonObject(data)
	if err != nil || !ok {
		*p = PeerEntry{}
		return err
	}

	var peer PeerEntry
	if peer.SpecID, err = jsonString(fields, "specId"); err != nil {
		return err
	}
	if peer.IndexPath, err = jsonString(fields, "indexPath"); err != nil {
		return err
	}
	if peer.OpenAPIPath, err = jsonString(fields, "openapiPath"); err != nil {
		return err
	}

	*p = peer
	return nil
}

// UnmarshalJSON decodes arrays element by element and treats every other JSON
// value as empty. Elements that are not objects become peers with no fields set.
func (p *PeerList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*p = PeerList{}
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return err
	}

	peers := make(PeerList, 0, len(elements))
	for i, raw := range elements {
		if isJSONNull(raw) {
			return fmt.Errorf("peers[%d] is null", i)
		}
		var peer PeerEntry
		if err := json.Unmarshal(raw, &peer); err != nil {
			return fmt.Errorf("peers[%d]: %w", i, err)
		}
		peers = append(peers, peer)
	}

	*p = peers
	return nil
}

// UnmarshalYAML mirrors SelfDescriptors.UnmarshalJSON for the YAML form of the config
func (s *SelfDescriptors) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		*s = SelfDescriptors{}
		return nil
	}

	type plain SelfDescriptors
	var self plain
	if err := value.Decode(&self); err != nil {
		return err
	}
	*s = SelfDescriptors(self)
	return nil
}

// UnmarshalYAML mirrors PeerEntry.UnmarshalJSON for the YAML form of the config
func (p *PeerEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		*p = PeerEntry{}
		return nil
	}

	type plain PeerEntry
	var peer plain
	if err := value.Decode(&peer); err != nil {
		return err
	}
	*p = PeerEntry(peer)
	return nil
}

// UnmarshalYAML mirrors PeerList.UnmarshalJSON for the YAML form of the config
func (p *PeerList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		*p = PeerList{}
		return nil
	}

	peers := make(PeerList, 0, len(value.Content))
	for i, node := range value.Content {
		if node.ShortTag() == "!!null" {
			return fmt.Errorf("peers[%d] is null", i)
		}
		var peer PeerEntry
		if err := node.Decode(&peer); err != nil {
			return fmt.Errorf("peers[%d]: %w", i, err)
		}
		peers = append(peers, peer)
	}

	*p = peers
	return nil
}

// jsonObject splits an object into its members. ok is false for any other JSON value.
func jsonObject(data []byte) (map[string]json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false, err
	}
	return fields, true, nil
}

// jsonString reads an optional string member. Absent and null are both unset.
func jsonString(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, found := fields[key]
	if !found {
		return nil, nil
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// SelfOrEmpty returns the self descriptors, treating an absent block as empty
func (c *AlignmentConfig) SelfOrEmpty() SelfDescriptors {
	if c.Self == nil {
		return SelfDescriptors{}
	}
	return *c.Self
}

// OutputDir returns the effective output directory for the given working root
func (c *AlignmentConfig) OutputDir(root string) string {
	if c.OutputDirPath == nil || *c.OutputDirPath == "" {
		return filepath.Join(root, DefaultOutputDir)
	}
	return Resolve(root, *c.OutputDirPath)
}

// DisplayID returns the peer's specId, or UnspecifiedPeer when it has none
func (p PeerEntry) DisplayID() string {
	if p.SpecID == nil {
		return UnspecifiedPeer
	}
	return *p.SpecID
}

// Resolve makes a config path absolute against the working root
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// Display renders an optional path for report messages
func Display(path *string) string {
	if path == nil {
		return Unset
	}
	return *path
}

// Load reads and decodes an alignment config from the specified path.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func Load(path string) (*AlignmentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data, filepath.Ext(path))
}

// Parse decodes config data. ext selects the format (".yaml"/".yml" for YAML).
func Parse(data []byte, ext string) (*AlignmentConfig, error) {
	var config AlignmentConfig

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if config.Peers == nil {
		config.Peers = PeerList{}
	}

	return &config, nil
}
