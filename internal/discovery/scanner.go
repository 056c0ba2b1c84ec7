package discovery

import (
	"log/slog"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/sver/sver/internal/gitrepo"
)

// Entry is one resolved source file: its repository-relative path, object id,
// and classified file mode.
type Entry struct {
	Path string
	Hash plumbing.Hash
	Mode gitrepo.FileMode
}

// Scan iterates the index once and returns every entry accepted by the rule
// set, ordered by byte-wise path comparison. Entries appearing more than once
// in the index (merge stages) collapse to a single key, last one wins. The
// output order is the hashing contract: deterministic regardless of how the
// index stores its entries.
func Scan(repo *gitrepo.Repository, rules RuleSet) ([]Entry, error) {
	entries, err := repo.Entries()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "scanner")
	selected := make(map[string]Entry)
	for _, e := range entries {
		if !rules.Contains(e.Name) {
			logger.Debug("rejected by rule set", "path", e.Name)
			continue
		}
		selected[e.Name] = Entry{
			Path: e.Name,
			Hash: e.Hash,
			Mode: gitrepo.ModeFromRaw(uint32(e.Mode)),
		}
	}

	sorted := make([]Entry, 0, len(selected))
	for _, entry := range selected {
		sorted = append(sorted, entry)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	return sorted, nil
}
