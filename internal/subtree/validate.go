package subtree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sver/sver/internal/gitrepo"
)

// ValidationResult reports whether one (subtree, profile) configuration
// references only paths that exist in the index. A result with no invalid
// entries is valid.
type ValidationResult struct {
	TargetPath          string
	Profile             string
	InvalidDependencies []string
	InvalidExcludes     []string
}

// Valid reports whether every referenced path resolved to at least one
// indexed file.
func (r ValidationResult) Valid() bool {
	return len(r.InvalidDependencies) == 0 && len(r.InvalidExcludes) == 0
}

func (r ValidationResult) String() string {
	if r.Valid() {
		return fmt.Sprintf("valid    path:%q profile:%q", r.TargetPath, r.Profile)
	}
	return fmt.Sprintf("invalid  path:%q profile:%q dependencies:[%s] excludes:[%s]",
		r.TargetPath, r.Profile,
		strings.Join(r.InvalidDependencies, ", "),
		strings.Join(r.InvalidExcludes, ", "),
	)
}

// ValidateAll checks every tracked sver.toml against the index. Dependencies
// must resolve to at least one indexed file under the declared path; excludes
// are interpreted relative to the subtree owning the config and must resolve
// the same way. Profiles within a file are reported in name order so output
// is stable across runs.
func ValidateAll(repo *gitrepo.Repository) ([]ValidationResult, error) {
	configs, err := LoadAll(repo)
	if err != nil {
		return nil, err
	}
	entries, err := repo.Entries()
	if err != nil {
		return nil, err
	}

	tracked := make([]string, 0, len(entries))
	for _, entry := range entries {
		tracked = append(tracked, entry.Name)
	}

	var results []ValidationResult
	for _, cfg := range configs {
		profiles := make([]string, 0, len(cfg.Profiles))
		for name := range cfg.Profiles {
			profiles = append(profiles, name)
		}
		sort.Strings(profiles)

		for _, name := range profiles {
			profile := cfg.Profiles[name]
			result := ValidationResult{TargetPath: cfg.TargetPath, Profile: name}

			for _, dep := range profile.Dependencies {
				if !anyUnder(tracked, dep) {
					result.InvalidDependencies = append(result.InvalidDependencies, dep)
				}
			}
			for _, exclude := range profile.Excludes {
				full := exclude
				if cfg.TargetPath != "" {
					full = cfg.TargetPath + "/" + exclude
				}
				if !anyUnder(tracked, full) {
					result.InvalidExcludes = append(result.InvalidExcludes, exclude)
				}
			}

			results = append(results, result)
		}
	}
	return results, nil
}

// anyUnder reports whether at least one tracked path equals prefix or lives
// under prefix as a directory.
func anyUnder(tracked []string, prefix string) bool {
	for _, p := range tracked {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
