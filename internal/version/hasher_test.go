package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sver/sver/internal/discovery"
	"github.com/sver/sver/internal/gitrepo"
	"github.com/sver/sver/internal/testutil"
)

// An empty source set for the root target feeds no bytes at all, so the
// digest is SHA-256 of the empty input.
func TestHash_EmptyEntries(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepoBuilder(t).Build()

	digest, err := Hash(repo, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest)
}

func TestHash_TargetPathContributes(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepoBuilder(t).Build()

	rootDigest, err := Hash(repo, "", nil)
	require.NoError(t, err)
	subDigest, err := Hash(repo, "service1", nil)
	require.NoError(t, err)
	assert.NotEqual(t, rootDigest, subDigest)
}

func TestHash_UnknownAndTreeModesSkipped(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepoBuilder(t).Build()

	// Unknown and tree entries contribute no bytes at all, so swapping one
	// for the other cannot change the digest.
	unknown, err := Hash(repo, "", []discovery.Entry{{Path: "weird", Mode: gitrepo.ModeUnknown}})
	require.NoError(t, err)
	tree, err := Hash(repo, "", []discovery.Entry{{Path: "weird", Mode: gitrepo.ModeTree}})
	require.NoError(t, err)
	assert.Equal(t, unknown, tree)
}

func TestVersion_Short(t *testing.T) {
	t.Parallel()

	v := Version{Version: "c7eacf9aee8ced0b9131dce96c2e2077e2c683a7d39342c8c13b32fefac5662a"}
	assert.Equal(t, "c7eacf9aee8c", v.Short())

	tiny := Version{Version: "abc"}
	assert.Equal(t, "abc", tiny.Short())
}
