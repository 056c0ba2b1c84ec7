// Package subtree models the per-subtree sver.toml configuration file: the
// declared dependencies and excludes that shape a subtree's source set, per
// named profile.
package subtree

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sver/sver/internal/gitrepo"
)

// ConfigFileName is the name of the per-subtree configuration file.
const ConfigFileName = "sver.toml"

// DefaultProfile is the profile used when no override is given.
const DefaultProfile = "default"

// ErrConfigParse indicates a sver.toml blob is not well-formed TOML.
var ErrConfigParse = errors.New("malformed sver.toml")

// ProfileConfig holds one profile's declarations. Dependencies are
// repository-relative subtree paths pulled into the source set; Excludes are
// paths relative to the subtree owning the config, subtracted from it.
type ProfileConfig struct {
	Dependencies []string `toml:"dependencies"`
	Excludes     []string `toml:"excludes"`
}

// Config maps profile names to their configuration, the full decoded content
// of one sver.toml file.
type Config map[string]ProfileConfig

// Load decodes a sver.toml blob. Unknown keys are logged and ignored so old
// binaries keep working against newer config files. The source parameter
// names the blob in log output.
func Load(blob []byte, source string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(blob), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, source, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slog.Warn("unknown config keys will be ignored",
			"source", source,
			"keys", strings.Join(keys, ", "),
		)
	}

	return cfg, nil
}

// LoadProfile decodes a sver.toml blob and returns the named profile. An
// absent profile yields a zero ProfileConfig: no dependencies, no excludes.
func LoadProfile(blob []byte, profile, source string) (ProfileConfig, error) {
	cfg, err := Load(blob, source)
	if err != nil {
		return ProfileConfig{}, err
	}
	return cfg[profile], nil
}

// ConfigFile pairs a subtree path with its decoded configuration.
type ConfigFile struct {
	// TargetPath is the subtree containing the config file; "" is the
	// repository root.
	TargetPath string

	// Profiles is the decoded file content.
	Profiles Config
}

// ConfigPath returns the repository-relative path of the subtree's config
// file.
func ConfigPath(targetPath string) string {
	if targetPath == "" {
		return ConfigFileName
	}
	return targetPath + "/" + ConfigFileName
}

// LoadAll scans the index for every tracked sver.toml and decodes each one,
// in index order.
func LoadAll(repo *gitrepo.Repository) ([]ConfigFile, error) {
	entries, err := repo.Entries()
	if err != nil {
		return nil, err
	}

	var configs []ConfigFile
	for _, entry := range entries {
		if path.Base(entry.Name) != ConfigFileName {
			continue
		}
		blob, err := repo.BlobBytes(entry.Hash)
		if err != nil {
			return nil, err
		}
		cfg, err := Load(blob, entry.Name)
		if err != nil {
			return nil, err
		}
		target := ""
		if dir := path.Dir(entry.Name); dir != "." {
			target = dir
		}
		configs = append(configs, ConfigFile{TargetPath: target, Profiles: cfg})
	}
	return configs, nil
}
