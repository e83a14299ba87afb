package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mavwarf/appicon/internal/convert"
	"github.com/Mavwarf/appicon/internal/ico"
	"github.com/Mavwarf/appicon/internal/logging"
	"github.com/Mavwarf/appicon/internal/manifest"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Config holds the generator settings. Every field is optional; a missing
// config file means Default().
//
// Relative Source, Root and Log.FilePath values read from a file are taken
// relative to that file's directory; Load rewrites them accordingly. An
// empty Source means paths.DefaultSource under the project root.
type Config struct {
	Source     string                      `json:"source,omitempty" yaml:"source,omitempty"`
	Root       string                      `json:"root,omitempty" yaml:"root,omitempty"`
	Tools      []string                    `json:"tools,omitempty" yaml:"tools,omitempty"`
	BuiltinSVG bool                        `json:"builtin_svg,omitempty" yaml:"builtin_svg,omitempty"`
	ICOSizes   []int                       `json:"ico_sizes,omitempty" yaml:"ico_sizes,omitempty"`
	Log        logging.Config              `json:"log,omitempty" yaml:"log,omitempty"`
	Manifest   map[string][]manifest.Entry `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Root:     ".",
		Tools:    []string{convert.Magick.Name, convert.Inkscape.Name},
		ICOSizes: append([]int(nil), ico.DefaultSizes...),
		Log:      logging.DefaultConfig(),
	}
}

// UnmarshalJSON starts from Default() so keys missing from the file keep
// their built-in values.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML config files.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	*c = Default()
	type Alias Config
	return value.Decode((*Alias)(c))
}

// candidates are the file names Load looks for when no path is given.
var candidates = []string{paths.ConfigFileName, "appicon.yaml", "appicon.yml"}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; must exist)
//  2. appicon.json, appicon.yaml, appicon.yml in dir
//
// If neither applies it returns Default() and an empty path. Relative
// paths in the file are rebased onto the file's directory.
func Load(explicitPath, dir string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := readConfig(explicitPath)
		return cfg, explicitPath, err
	}
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if paths.Exists(p) {
			cfg, err := readConfig(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

// SourcePath returns the SVG to render: Source if set, otherwise
// paths.DefaultSource inside root.
func (c Config) SourcePath(root string) string {
	if c.Source != "" {
		return c.Source
	}
	return paths.Resolve(root, paths.DefaultSource)
}

// rebase makes relative file paths in c relative to base instead.
func (c *Config) rebase(base string) {
	for _, p := range []*string{&c.Source, &c.Root, &c.Log.FilePath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, filepath.FromSlash(*p))
		}
	}
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg = Default()
		if len(strings.TrimSpace(string(data))) > 0 {
			err = yaml.Unmarshal(data, &cfg)
		}
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.rebase(filepath.Dir(path))
	return cfg, nil
}

// Validate checks converter names, icon sizes, log settings and the
// manifest. Every .ico entry must declare the largest ico_sizes value,
// since that is the edge the packed container ends up with.
func (c Config) Validate() error {
	if _, err := convert.ByName(c.Tools); err != nil {
		return err
	}
	if len(c.ICOSizes) == 0 {
		return fmt.Errorf("ico_sizes must list at least one size")
	}
	for _, s := range c.ICOSizes {
		if s < 1 || s > ico.MaxSize {
			return fmt.Errorf("ico_sizes: %d out of range 1-%d", s, ico.MaxSize)
		}
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	m, err := c.ResolveManifest()
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	top := ico.Largest(c.ICOSizes)
	for _, g := range m {
		for _, e := range g.Entries {
			if e.Container() && e.Size != top {
				return fmt.Errorf("manifest: %s: %s: size %d must equal the largest ico_sizes value %d", g.Platform, e.Path, e.Size, top)
			}
		}
	}
	return nil
}

// ResolveManifest returns the configured manifest, or the built-in one
// when the config has none.
func (c Config) ResolveManifest() (manifest.Manifest, error) {
	if len(c.Manifest) == 0 {
		return manifest.Default(), nil
	}
	m, err := manifest.FromMap(c.Manifest)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return m, nil
}
