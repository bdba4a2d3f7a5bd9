package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.tengo
var LevelsFS embed.FS

// Dir is the on-disk level directory; scripts there shadow the embedded ones.
var Dir = "levels"

// LoadScript returns the source of a level script. The ".tengo" extension is
// optional.
func LoadScript(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if clean == "" {
		return nil, fmt.Errorf("levels: empty script name")
	}
	if data, err := os.ReadFile(filepath.Join(Dir, clean)); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %q: %w", clean, err)
	}
	return data, nil
}

// Names lists the embedded levels without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".tengo"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func cleanLevelPath(name string) string {
	s := strings.TrimSpace(filepath.ToSlash(name))
	if s == "" {
		return ""
	}
	s, _ = strings.CutPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return s
}
