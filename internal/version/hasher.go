package version

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"log/slog"

	"github.com/sver/sver/internal/discovery"
	"github.com/sver/sver/internal/gitrepo"
)

// Hash reduces the ordered source entries to the canonical digest. The
// serialization is fixed: the target path's bytes, then for each entry in
// order its path bytes followed by a mode-dependent continuation. Blob-like
// entries contribute their canonical mode as four little-endian bytes plus
// the full blob content; submodule gitlinks contribute only the referenced
// commit id's twenty raw bytes; tree and unknown entries are skipped
// entirely, path included. No delimiters anywhere.
func Hash(repo *gitrepo.Repository, targetPath string, entries []discovery.Entry) (string, error) {
	logger := slog.Default().With("component", "hasher")

	hasher := sha256.New()
	hasher.Write([]byte(targetPath))
	for _, entry := range entries {
		switch {
		case entry.Mode.IsBlobLike():
			hasher.Write([]byte(entry.Path))
			var mode [4]byte
			binary.LittleEndian.PutUint32(mode[:], entry.Mode.Raw())
			hasher.Write(mode[:])
			content, err := repo.BlobBytes(entry.Hash)
			if err != nil {
				return "", err
			}
			hasher.Write(content)
		case entry.Mode == gitrepo.ModeCommit:
			hasher.Write([]byte(entry.Path))
			hasher.Write(entry.Hash[:])
		default:
			logger.Debug("unsupported mode skipped", "path", entry.Path, "mode", entry.Mode)
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
