package layout

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultDir is the directory, relative to the working directory, searched for layout files
// before the embedded copies.
const DefaultDir = "scenes"

//go:embed scenes/*.yaml
var ScenesFS embed.FS

// Load reads the named scene from DefaultDir, falling back to the embedded layouts.
//
// Parameters:
//   - name: scene name, with or without the .yaml extension
//
// Returns:
//   - *SceneSpec: the decoded layout
//   - error: ErrUnknownScene if no layout has that name
func Load(name string) (*SceneSpec, error) {
	return LoadFrom(DefaultDir, name)
}

// LoadFrom reads the named scene from dir, falling back to the embedded layouts.
//
// Parameters:
//   - dir: directory searched first (empty to only use embedded layouts)
//   - name: scene name, with or without the .yaml extension
//
// Returns:
//   - *SceneSpec: the decoded layout
//   - error: ErrUnknownScene if no layout has that name
func LoadFrom(dir, name string) (*SceneSpec, error) {
	clean := cleanScenePath(name)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownScene)
	}

	data, err := readScene(dir, clean)
	if err != nil {
		return nil, err
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout: %s: %w", clean, err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(clean, ".yaml")
	}
	return spec, nil
}

// LoadFile reads a layout from an explicit file path with no embedded fallback.
//
// Parameters:
//   - filename: path to a YAML layout
//
// Returns:
//   - *SceneSpec: the decoded layout
//   - error: an error if the file cannot be read or decoded
func LoadFile(filename string) (*SceneSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("layout: load %s: %w", filename, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout: %s: %w", filename, err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return spec, nil
}

// Names lists the embedded scene names in sorted order.
//
// Returns:
//   - []string: scene names without extension
func Names() []string {
	entries, err := fs.ReadDir(ScenesFS, "scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if isLayoutFile(e.Name()) {
			names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		}
	}
	sort.Strings(names)
	return names
}

// ModTime reports the modification time of the on-disk copy of a scene, if any.
//
// Parameters:
//   - dir: directory holding layout files
//   - name: scene name
//
// Returns:
//   - time.Time: modification time
//   - bool: false when no on-disk copy exists
func ModTime(dir, name string) (time.Time, bool) {
	if dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(cleanScenePath(name))))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readScene(dir, clean string) ([]byte, error) {
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	data, err := ScenesFS.ReadFile(path.Join("scenes", clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, strings.TrimSuffix(clean, ".yaml"))
	}
	if err != nil {
		return nil, fmt.Errorf("layout: load %s: %w", clean, err)
	}
	return data, nil
}

func cleanScenePath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}
	if !isLayoutFile(s) {
		s += ".yaml"
	}
	return s
}

func isLayoutFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}
