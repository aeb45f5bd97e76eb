package alignment

import (
	"fmt"

	"github.com/dyluth/crossalign/internal/config"
	"github.com/spf13/afero"
)

// AgentsFileName is the top-level descriptor required in the working root
const AgentsFileName = "AGENTS.md"

// Checker collects missing preconditions for a parsed config.
// It never stops at the first failure.
type Checker struct {
	Fs         afero.Fs
	Root       string
	ConfigName string

	// OnCheck, when set, is called once per path examined
	OnCheck func(label, path string, ok bool)
}

// Missing returns every missing precondition in report order
func (c *Checker) Missing(cfg *config.AlignmentConfig) []string {
	var missing []string

	if !c.exists(AgentsFileName, AgentsFileName) {
		missing = append(missing, "Missing AGENTS.md in repository root")
	}

	self := cfg.SelfOrEmpty()
	for _, field := range []struct {
		label string
		path  *string
	}{
		{"SELF index", self.IndexPath},
		{"SELF OpenAPI", self.OpenAPIPath},
		{"SELF AGENTS", self.AgentsPath},
	} {
		if !c.existsOptional(field.label, field.path) {
			missing = append(missing, fmt.Sprintf("Missing %s: %s", field.label, config.Display(field.path)))
		}
	}

	if len(cfg.Peers) == 0 {
		missing = append(missing, fmt.Sprintf("No peer snapshot entries in %s", c.configName()))
	}

	for _, peer := range cfg.Peers {
		id := peer.DisplayID()
		if !c.existsOptional("peer index ("+id+")", peer.IndexPath) {
			missing = append(missing, fmt.Sprintf("Missing peer index (%s): %s", id, config.Display(peer.IndexPath)))
		}
		if !c.existsOptional("peer OpenAPI ("+id+")", peer.OpenAPIPath) {
			missing = append(missing, fmt.Sprintf("Missing peer OpenAPI (%s): %s", id, config.Display(peer.OpenAPIPath)))
		}
	}

	return missing
}

// existsOptional treats unset and empty paths as missing
func (c *Checker) existsOptional(label string, path *string) bool {
	if path == nil || *path == "" {
		if c.OnCheck != nil {
			c.OnCheck(label, config.Display(path), false)
		}
		return false
	}
	return c.exists(label, *path)
}

func (c *Checker) exists(label, path string) bool {
	ok := pathExists(c.Fs, config.Resolve(c.Root, path))
	if c.OnCheck != nil {
		c.OnCheck(label, path, ok)
	}
	return ok
}

func (c *Checker) configName() string {
	if c.ConfigName == "" {
		return config.FileName
	}
	return c.ConfigName
}

// pathExists reports whether anything (file or directory) is at path
func pathExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
