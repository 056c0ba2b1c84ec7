package discovery

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidLinkPath indicates a resolved symlink target cannot be
// represented as a valid UTF-8 repository path.
var ErrInvalidLinkPath = errors.New("symlink target is not a valid path")

// ResolveLink computes the repository-relative path designated by a symbolic
// link. linkPath is the link's own repository-relative path; target is the
// raw bytes of its blob, the target string exactly as stored.
//
// Resolution starts from the link's parent directory and walks the target's
// components: ".." pops one segment, a normal component appends, and "." or
// a leading root separator contribute nothing. The link target is not
// required to exist in the index; the resolver decides what to do with the
// result.
func ResolveLink(linkPath string, target []byte) (string, error) {
	var segments []string
	if i := strings.LastIndexByte(linkPath, '/'); i >= 0 {
		segments = strings.Split(linkPath[:i], "/")
	}

	for _, component := range strings.Split(string(target), "/") {
		switch component {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, component)
		}
	}

	resolved := strings.Join(segments, "/")
	if !utf8.ValidString(resolved) {
		return "", fmt.Errorf("%w: link %s", ErrInvalidLinkPath, linkPath)
	}
	return resolved, nil
}
