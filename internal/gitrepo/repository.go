// Package gitrepo wraps go-git repository access for the sver pipeline. It
// exposes exactly what the resolver, scanner, and hasher need: the committed
// index as a snapshot, blob content by object id, and normalization of host
// paths into repository-relative slash-separated form.
package gitrepo

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

var (
	// ErrRepositoryNotFound indicates no git repository exists at or above
	// the requested path.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrBareRepository indicates the repository has no working directory.
	ErrBareRepository = errors.New("bare repository is not supported")

	// ErrPathOutsideRepository indicates a target path does not lie under
	// the repository's working directory.
	ErrPathOutsideRepository = errors.New("path is outside the repository")

	// ErrBlobMissing indicates an index entry's object could not be read
	// from the object database.
	ErrBlobMissing = errors.New("blob not found in object database")

	// ErrIndexRead indicates the repository index could not be read.
	ErrIndexRead = errors.New("cannot read repository index")
)

// Repository is an opened git repository with a working directory. The index
// is read once and cached for the lifetime of the value, so every consumer in
// a single invocation observes the same committed state.
type Repository struct {
	repo    *git.Repository
	workDir string
	idx     *index.Index
}

// Open locates and opens the repository containing path, searching upward
// from the canonicalized path the way git itself does. Bare repositories are
// rejected because target paths are resolved against the working directory.
func Open(path string) (*Repository, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	repo, err := git.PlainOpenWithOptions(canonical, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		// Detection only looks for a .git entry; a bare repository at the
		// path itself is opened directly so Wrap can report it as bare.
		if bare, bareErr := git.PlainOpen(canonical); bareErr == nil {
			repo, err = bare, nil
		}
	}
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: searched upward from %s", ErrRepositoryNotFound, canonical)
		}
		return nil, fmt.Errorf("open repository from %s: %w", canonical, err)
	}

	return Wrap(repo)
}

// Wrap adapts an already-opened go-git repository. It fails for bare
// repositories. Tests use Wrap to supply fixture repositories built on
// in-memory storage.
func Wrap(repo *git.Repository) (*Repository, error) {
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, ErrBareRepository
		}
		return nil, err
	}
	return &Repository{
		repo:    repo,
		workDir: wt.Filesystem.Root(),
	}, nil
}

// WorkDir returns the repository's working directory root as an absolute
// host path.
func (r *Repository) WorkDir() string {
	return r.workDir
}

// RelativePath reduces a host path to repository-relative slash-separated
// form. The empty string denotes the repository root. Paths that do not lie
// under the working directory fail with ErrPathOutsideRepository.
func (r *Repository) RelativePath(path string) (string, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	root := r.workDir
	if c, err := filepath.EvalSymlinks(root); err == nil {
		root = c
	}

	rel, err := filepath.Rel(root, canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRepository, path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRepository, path)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// Index returns the committed index snapshot, reading it on first use.
func (r *Repository) Index() (*index.Index, error) {
	if r.idx != nil {
		return r.idx, nil
	}
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexRead, err)
	}
	r.idx = idx
	return idx, nil
}

// Entries returns all entries of the index snapshot in index order. The
// order is whatever the index stores; callers that need determinism sort.
func (r *Repository) Entries() ([]*index.Entry, error) {
	idx, err := r.Index()
	if err != nil {
		return nil, err
	}
	return idx.Entries, nil
}

// LookupEntry returns the index entry for the exact repository-relative path,
// or ok=false when the path is not tracked.
func (r *Repository) LookupEntry(path string) (*index.Entry, bool, error) {
	idx, err := r.Index()
	if err != nil {
		return nil, false, err
	}
	entry, err := idx.Entry(path)
	if err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry, true, nil
}

// BlobBytes reads the full content of the blob identified by hash.
func (r *Repository) BlobBytes(hash plumbing.Hash) ([]byte, error) {
	blob, err := r.repo.BlobObject(hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBlobMissing, hash)
		}
		return nil, fmt.Errorf("read blob %s: %w", hash, err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", hash, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", hash, err)
	}
	return content, nil
}

// canonicalize makes the path absolute and resolves filesystem symlinks, so
// repository-relative reduction is exact regardless of how the user spelled
// the path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
