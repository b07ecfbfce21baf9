// Package levelpack loads Breakout level sets from the embedded defaults
// or a directory of *.lvl files, and watches directories for edits.
package levelpack

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Ext is the level file extension.
const Ext = ".lvl"

//go:embed levels/*.lvl
var builtinFS embed.FS

// Builtin returns the embedded level set.
func Builtin() ([]breakout.Layout, error) {
	sub, err := fs.Sub(builtinFS, "levels")
	if err != nil {
		return nil, fmt.Errorf("levelpack: builtin: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads every *.lvl file in dir, sorted by file name.
func LoadDir(dir string) ([]breakout.Layout, error) {
	layouts, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("levelpack: %s: %w", dir, err)
	}
	return layouts, nil
}

// LoadFS loads every *.lvl file at the root of fsys, sorted by name.
// Any invalid file fails the whole set.
func LoadFS(fsys fs.FS) ([]breakout.Layout, error) {
	names, err := levelFiles(fsys)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, breakout.ErrNoLevels
	}

	layouts := make([]breakout.Layout, 0, len(names))
	for _, name := range names {
		l, err := loadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}

// Info describes one level file.
type Info struct {
	File      string
	Name      string
	Width     int
	Height    int
	Breakable int
	Err       error
}

// Inspect parses every level file in dir and reports each one, including
// the invalid ones.
func Inspect(dir string) ([]Info, error) {
	fsys := os.DirFS(dir)
	names, err := levelFiles(fsys)
	if err != nil {
		return nil, fmt.Errorf("levelpack: %s: %w", dir, err)
	}
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		info := Info{File: name, Name: LevelName(name)}
		l, err := loadFile(fsys, name)
		if err != nil {
			info.Err = err
		} else {
			info.Width = l.Width()
			info.Height = l.Height()
			info.Breakable = l.Breakable()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// LevelName derives a display name from a file name:
// "2_small_gaps.lvl" becomes "small gaps".
func LevelName(file string) string {
	name := path.Base(file)
	if ext := path.Ext(name); strings.EqualFold(ext, Ext) {
		name = strings.TrimSuffix(name, ext)
	}
	if i := strings.IndexByte(name, '_'); i > 0 && strings.Trim(name[:i], "0123456789") == "" {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

func levelFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func loadFile(fsys fs.FS, name string) (breakout.Layout, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return breakout.Layout{}, err
	}
	defer f.Close()
	return breakout.ParseLayout(LevelName(name), f)
}
