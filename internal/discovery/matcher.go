// Package discovery resolves a target subtree's effective source set from
// the repository index: the rule set accumulated over declared dependencies
// and symlink targets, and the ordered scan of index entries against it.
package discovery

import "strings"

// RuleSet maps a subtree path to the exclude patterns declared for it. The
// empty key denotes the repository root. Registration of a subtree key is
// what marks it visited during resolution, so cyclic dependency graphs
// terminate.
type RuleSet map[string][]string

// Contains reports whether a candidate path is accepted by at least one
// (include, excludes) pair in the rule set. A pair accepts the candidate
// when the include matches it and no composite include/exclude pattern does.
// Matching is byte-exact equality or directory-prefix; there is no glob
// expansion, case folding, or Unicode normalization.
func (rs RuleSet) Contains(candidate string) bool {
	for include, excludes := range rs {
		if !matchSameFileOrDir(candidate, include) {
			continue
		}
		excluded := false
		for _, exclude := range excludes {
			pattern := exclude
			if include != "" {
				pattern = include + "/" + exclude
			}
			if matchSameFileOrDir(candidate, pattern) {
				excluded = true
				break
			}
		}
		if !excluded {
			return true
		}
	}
	return false
}

// matchSameFileOrDir reports whether candidate equals pattern exactly or
// lives under pattern as a directory. The empty pattern is the repository
// root and matches everything.
func matchSameFileOrDir(candidate, pattern string) bool {
	if candidate == pattern || pattern == "" {
		return true
	}
	return strings.HasPrefix(candidate, pattern+"/")
}
