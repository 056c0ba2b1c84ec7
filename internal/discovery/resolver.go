package discovery

import (
	"log/slog"

	"github.com/sver/sver/internal/gitrepo"
	"github.com/sver/sver/internal/subtree"
)

// Resolver accumulates the rule set for a target subtree by following its
// declared dependencies and the symlinks it contains. One Resolver serves
// one repository under one profile.
type Resolver struct {
	repo    *gitrepo.Repository
	profile string
	logger  *slog.Logger
}

// NewResolver creates a resolver reading the repository's index under the
// given profile name.
func NewResolver(repo *gitrepo.Repository, profile string) *Resolver {
	return &Resolver{
		repo:    repo,
		profile: profile,
		logger:  slog.Default().With("component", "resolver"),
	}
}

// Resolve builds the rule set for targetPath: one entry per reachable
// subtree, mapped to that subtree's exclude patterns.
func (r *Resolver) Resolve(targetPath string) (RuleSet, error) {
	rules := make(RuleSet)
	if err := r.collect(targetPath, rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// collect registers path in rules, then recurses into its declared
// dependencies and into the targets of symlinks living under it. The
// registration happens before any recursion, so a dependency cycle is cut
// the second time a subtree is reached.
func (r *Resolver) collect(path string, rules RuleSet) error {
	if _, visited := rules[path]; visited {
		r.logger.Debug("subtree already registered", "path", path)
		return nil
	}
	r.logger.Debug("registering subtree", "path", path)

	// current holds only this subtree's rule. The symlink pass below matches
	// against it alone, so links under sibling subtrees are not re-traversed
	// here, and excludes declared by subtrees that pulled this one in as a
	// dependency do not apply to the link pass.
	current := make(RuleSet, 1)

	entry, ok, err := r.repo.LookupEntry(subtree.ConfigPath(path))
	if err != nil {
		return err
	}
	if ok {
		blob, err := r.repo.BlobBytes(entry.Hash)
		if err != nil {
			return err
		}
		cfg, err := subtree.LoadProfile(blob, r.profile, entry.Name)
		if err != nil {
			return err
		}
		current[path] = cfg.Excludes
		rules[path] = cfg.Excludes
		for _, dependency := range cfg.Dependencies {
			if err := r.collect(dependency, rules); err != nil {
				return err
			}
		}
	} else {
		current[path] = nil
		rules[path] = nil
	}

	entries, err := r.repo.Entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if gitrepo.ModeFromRaw(uint32(e.Mode)) != gitrepo.ModeLink {
			continue
		}
		if !current.Contains(e.Name) {
			continue
		}
		blob, err := r.repo.BlobBytes(e.Hash)
		if err != nil {
			return err
		}
		target, err := ResolveLink(e.Name, blob)
		if err != nil {
			return err
		}
		r.logger.Debug("following symlink", "link", e.Name, "target", target)
		if err := r.collect(target, rules); err != nil {
			return err
		}
	}
	return nil
}
