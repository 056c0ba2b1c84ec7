package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sver/sver/internal/discovery"
	"github.com/sver/sver/internal/gitrepo"
	"github.com/sver/sver/internal/subtree"
	"github.com/sver/sver/internal/version"
)

// InitStatus is the outcome of writing a stub configuration file.
type InitStatus int

const (
	// InitCreated means a new sver.toml was written.
	InitCreated InitStatus = iota

	// InitCommitted means the subtree already has a sver.toml in the index.
	InitCommitted

	// InitUncommitted means a sver.toml exists on disk but is not tracked.
	InitUncommitted
)

func (s InitStatus) String() string {
	switch s {
	case InitCreated:
		return "created"
	case InitCommitted:
		return "already committed"
	case InitUncommitted:
		return "exists but is not committed"
	default:
		return "unknown"
	}
}

// Workspace binds an opened repository to one target subtree and one profile.
// Every command is a method on it; all state is per-invocation and discarded
// afterwards.
type Workspace struct {
	repo       *gitrepo.Repository
	targetPath string
	profile    string
	logger     *slog.Logger
}

// Open locates the repository containing path and reduces path to its
// repository-relative form.
func Open(path, profile string) (*Workspace, error) {
	repo, err := gitrepo.Open(path)
	if err != nil {
		return nil, err
	}
	targetPath, err := repo.RelativePath(path)
	if err != nil {
		return nil, err
	}
	return New(repo, targetPath, profile), nil
}

// New builds a workspace over an already-opened repository. Tests use this
// with fixture repositories.
func New(repo *gitrepo.Repository, targetPath, profile string) *Workspace {
	if profile == "" {
		profile = subtree.DefaultProfile
	}
	logger := slog.Default().With("component", "pipeline")
	logger.Debug("workspace opened",
		"repository_root", repo.WorkDir(),
		"target_path", targetPath,
		"profile", profile,
	)
	return &Workspace{
		repo:       repo,
		targetPath: targetPath,
		profile:    profile,
		logger:     logger,
	}
}

// TargetPath returns the repository-relative target subtree path.
func (w *Workspace) TargetPath() string {
	return w.targetPath
}

// sortedEntries resolves the rule set for the target and scans the index
// against it.
func (w *Workspace) sortedEntries() ([]discovery.Entry, error) {
	rules, err := discovery.NewResolver(w.repo, w.profile).Resolve(w.targetPath)
	if err != nil {
		return nil, err
	}
	w.logger.Debug("rule set resolved", "subtrees", len(rules))
	return discovery.Scan(w.repo, rules)
}

// ListSources returns the resolved source set's paths in hashing order.
func (w *Workspace) ListSources() ([]string, error) {
	entries, err := w.sortedEntries()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}
	return paths, nil
}

// CalcVersion computes the target subtree's Version.
func (w *Workspace) CalcVersion() (*version.Version, error) {
	entries, err := w.sortedEntries()
	if err != nil {
		return nil, err
	}
	digest, err := version.Hash(w.repo, w.targetPath, entries)
	if err != nil {
		return nil, err
	}
	return &version.Version{
		RepositoryRoot: w.repo.WorkDir(),
		Path:           w.targetPath,
		Version:        digest,
	}, nil
}

// InitConfig writes a stub sver.toml for the target subtree unless one is
// already tracked or already present on disk.
func (w *Workspace) InitConfig() (InitStatus, error) {
	_, ok, err := w.repo.LookupEntry(subtree.ConfigPath(w.targetPath))
	if err != nil {
		return 0, err
	}
	if ok {
		return InitCommitted, nil
	}

	dir := filepath.Join(w.repo.WorkDir(), filepath.FromSlash(w.targetPath))
	created, err := subtree.WriteInitial(dir)
	if err != nil {
		return 0, fmt.Errorf("init config for %q: %w", w.targetPath, err)
	}
	if !created {
		return InitUncommitted, nil
	}
	return InitCreated, nil
}

// Validate checks every tracked configuration file in the repository.
func (w *Workspace) Validate() ([]subtree.ValidationResult, error) {
	return subtree.ValidateAll(w.repo)
}
