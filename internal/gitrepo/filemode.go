package gitrepo

// FileMode classifies an index entry by its git mode bits. Conversion from
// the raw mode integer is total: any value that is not one of the known git
// modes maps to ModeUnknown, which downstream consumers skip.
type FileMode uint32

const (
	ModeUnknown        FileMode = 0
	ModeTree           FileMode = 0o040000
	ModeBlob           FileMode = 0o100644
	ModeBlobExecutable FileMode = 0o100755
	ModeLink           FileMode = 0o120000
	ModeCommit         FileMode = 0o160000
)

// ModeFromRaw converts a raw index mode integer into a FileMode.
func ModeFromRaw(raw uint32) FileMode {
	switch FileMode(raw) {
	case ModeTree, ModeBlob, ModeBlobExecutable, ModeLink, ModeCommit:
		return FileMode(raw)
	default:
		return ModeUnknown
	}
}

// Raw returns the canonical git mode bits for the mode.
func (m FileMode) Raw() uint32 {
	return uint32(m)
}

// IsBlobLike reports whether the mode carries blob content in the object
// database (regular file, executable file, or symbolic link).
func (m FileMode) IsBlobLike() bool {
	return m == ModeBlob || m == ModeBlobExecutable || m == ModeLink
}

func (m FileMode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeBlob:
		return "blob"
	case ModeBlobExecutable:
		return "blob-executable"
	case ModeLink:
		return "link"
	case ModeCommit:
		return "commit"
	default:
		return "unknown"
	}
}
