package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sver/sver/internal/testutil"
	"github.com/sver/sver/internal/version"
)

// fixtureRepo writes the flat-tree fixture into a temp directory and returns
// its path. The expected digest for target "" is the reference value.
func fixtureRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.NewRepoBuilderAt(t, dir).
		AddBlob("hello.txt", "hello world!").
		AddBlob("service1/world.txt", "good morning!").
		Build()
	return dir
}

const flatTreeDigest = "c7eacf9aee8ced0b9131dce96c2e2077e2c683a7d39342c8c13b32fefac5662a"

func TestCalcCommand_VersionOnlyShort(t *testing.T) {
	dir := fixtureRepo(t)

	out, err := executeCommand(t, "calc", dir)
	require.NoError(t, err)
	assert.Equal(t, flatTreeDigest[:version.ShortLength]+"\n", out)
}

func TestCalcCommand_VersionOnlyLong(t *testing.T) {
	dir := fixtureRepo(t)

	out, err := executeCommand(t, "calc", "--length", "long", dir)
	require.NoError(t, err)
	assert.Equal(t, flatTreeDigest+"\n", out)
}

func TestCalcCommand_JSONOutput(t *testing.T) {
	dir := fixtureRepo(t)

	out, err := executeCommand(t, "calc", "--output", "json", "--length", "long", dir)
	require.NoError(t, err)

	var versions []version.Version
	require.NoError(t, json.Unmarshal([]byte(out), &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, "", versions[0].Path)
	assert.Equal(t, flatTreeDigest, versions[0].Version)
	assert.NotEmpty(t, versions[0].RepositoryRoot)
}

func TestCalcCommand_TOMLOutput(t *testing.T) {
	dir := fixtureRepo(t)

	out, err := executeCommand(t, "calc", "--output", "toml", "--length", "long", dir)
	require.NoError(t, err)

	var doc struct {
		Versions []version.Version `toml:"versions"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, flatTreeDigest, doc.Versions[0].Version)
}

func TestCalcCommand_MultipleTargets(t *testing.T) {
	dir := fixtureRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "service1"), 0o755))

	out, err := executeCommand(t, "calc", "--length", "long", dir, filepath.Join(dir, "service1"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, flatTreeDigest, lines[0])
	assert.NotEqual(t, lines[0], lines[1])
}

func TestCalcCommand_InvalidOutputFormat(t *testing.T) {
	dir := fixtureRepo(t)

	_, err := executeCommand(t, "calc", "--output", "yaml", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestCalcCommand_OutsideRepository(t *testing.T) {
	_, err := executeCommand(t, "calc", t.TempDir())
	require.Error(t, err)
}
