package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Context describes the monorepo workspace an inference run operates on.
type Context struct {
	// Root is the absolute workspace root.
	Root string
	// DataDir is where persisted target caches live.
	DataDir string
	// NamedInputs are the host build engine's named-input groups, read
	// from workspace.json when present. Only shallow key existence is
	// ever consulted.
	NamedInputs map[string][]string
}

// NewContext resolves root and loads the optional workspace.json named
// inputs. dataDir is relative to root.
func NewContext(root, dataDir string) (*Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("workspace root is not a directory: %s", abs)
	}

	namedInputs, err := readNamedInputs(filepath.Join(abs, "workspace.json"))
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:        abs,
		DataDir:     filepath.Join(abs, filepath.FromSlash(dataDir)),
		NamedInputs: namedInputs,
	}, nil
}

func readNamedInputs(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspace config: %w", err)
	}

	var doc struct {
		NamedInputs map[string][]string `json:"namedInputs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse workspace config %s: %w", path, err)
	}
	return doc.NamedInputs, nil
}
