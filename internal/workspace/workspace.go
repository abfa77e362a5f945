package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"prosescan/internal/aidetect"
)

const BaseDirName = "ProseScan"

// Paths locates the files inside a workspace.
type Paths struct {
	Root      string
	Config    string
	LexiconDB string
	Reports   string
}

func EnsureDefault() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

// EnsureAt creates the workspace layout under base and writes the default
// tuning file when none exists. Existing files are never overwritten.
func EnsureAt(base string) (Paths, error) {
	paths := Paths{
		Root:      base,
		Config:    filepath.Join(base, "configs", "tuning.yaml"),
		LexiconDB: filepath.Join(base, "data", "lexicon.db"),
		Reports:   filepath.Join(base, "reports"),
	}
	for _, p := range []string{filepath.Dir(paths.Config), filepath.Dir(paths.LexiconDB), paths.Reports} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return Paths{}, fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	if _, err := os.Stat(paths.Config); os.IsNotExist(err) {
		raw, encodeErr := aidetect.DefaultConfig().Encode()
		if encodeErr != nil {
			return Paths{}, encodeErr
		}
		if writeErr := os.WriteFile(paths.Config, raw, 0o644); writeErr != nil {
			return Paths{}, fmt.Errorf("write tuning file: %w", writeErr)
		}
	}

	return paths, nil
}
