package testutil

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/sver/sver/internal/gitrepo"
)

// RepoBuilder assembles a fixture git repository index for tests. Blobs are
// written straight into the object database and entries appended to the
// index, so symlink and gitlink entries can be fabricated on any host
// filesystem. Entries are added in call order; nothing sorts them, which
// lets tests exercise the scanner's ordering guarantee.
type RepoBuilder struct {
	t    *testing.T
	repo *git.Repository
	idx  *index.Index
}

// NewRepoBuilder starts a fixture repository on in-memory storage with an
// in-memory worktree.
func NewRepoBuilder(t *testing.T) *RepoBuilder {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("init fixture repository: %v", err)
	}
	return &RepoBuilder{t: t, repo: repo, idx: &index.Index{Version: 2}}
}

// NewRepoBuilderAt starts a fixture repository on disk at dir, for tests
// that need a real working directory (init, CLI path resolution).
func NewRepoBuilderAt(t *testing.T, dir string) *RepoBuilder {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init fixture repository at %s: %v", dir, err)
	}
	return &RepoBuilder{t: t, repo: repo, idx: &index.Index{Version: 2}}
}

// AddBlob stores content as a blob and indexes it at path as a regular file.
func (b *RepoBuilder) AddBlob(path, content string) *RepoBuilder {
	return b.add(path, content, filemode.Regular)
}

// AddExecutable stores content as a blob and indexes it at path with the
// executable mode.
func (b *RepoBuilder) AddExecutable(path, content string) *RepoBuilder {
	return b.add(path, content, filemode.Executable)
}

// AddSymlink indexes a symbolic link at path whose blob holds target exactly
// as given.
func (b *RepoBuilder) AddSymlink(path, target string) *RepoBuilder {
	return b.add(path, target, filemode.Symlink)
}

// AddGitlink indexes a submodule pointer at path pinned to the given commit
// hex. No object is stored; gitlinks reference a commit in another
// repository.
func (b *RepoBuilder) AddGitlink(path, commitHex string) *RepoBuilder {
	b.t.Helper()
	b.idx.Entries = append(b.idx.Entries, &index.Entry{
		Name: path,
		Hash: plumbing.NewHash(commitHex),
		Mode: filemode.Submodule,
	})
	return b
}

func (b *RepoBuilder) add(path, content string, mode filemode.FileMode) *RepoBuilder {
	b.t.Helper()

	obj := b.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		b.t.Fatalf("open blob writer: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		b.t.Fatalf("write blob %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		b.t.Fatalf("close blob %s: %v", path, err)
	}
	hash, err := b.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		b.t.Fatalf("store blob %s: %v", path, err)
	}

	b.idx.Entries = append(b.idx.Entries, &index.Entry{
		Name: path,
		Hash: hash,
		Mode: mode,
	})
	return b
}

// Build writes the assembled index and wraps the repository for the
// pipeline.
func (b *RepoBuilder) Build() *gitrepo.Repository {
	b.t.Helper()
	if err := b.repo.Storer.SetIndex(b.idx); err != nil {
		b.t.Fatalf("set fixture index: %v", err)
	}
	repo, err := gitrepo.Wrap(b.repo)
	if err != nil {
		b.t.Fatalf("wrap fixture repository: %v", err)
	}
	return repo
}
