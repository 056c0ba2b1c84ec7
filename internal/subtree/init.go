package subtree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// initialConfig is the stub written by WriteInitial: a default profile with
// nothing declared.
const initialConfig = `[default]
dependencies = []
excludes = []
`

// WriteInitial writes a stub sver.toml into dir unless one already exists on
// disk. It reports whether a new file was produced.
func WriteInitial(dir string) (bool, error) {
	configPath := filepath.Join(dir, ConfigFileName)

	if _, err := os.Lstat(configPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", configPath, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}
	if err := os.WriteFile(configPath, []byte(initialConfig), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", configPath, err)
	}
	return true, nil
}
