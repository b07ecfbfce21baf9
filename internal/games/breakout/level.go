// Package breakout implements the Breakout game engine: entities, circle
// versus rectangle collision, power-ups and the menu/active/win state
// machine. It is driven once per frame by a host loop and never blocks.
package breakout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Tile codes used in level files.
const (
	TileEmpty = 0
	TileSolid = 1
)

var (
	// ErrEmptyLevel is returned when a level file contains no rows.
	ErrEmptyLevel = errors.New("breakout: level has no rows")
	// ErrEmptyRow is returned when the first row of a level has no tiles.
	ErrEmptyRow = errors.New("breakout: level row has no columns")
)

// Brick colors by tile code.
var (
	ColorSolid  = mgl32.Vec3{0.8, 0.8, 0.7}
	brickColors = map[int]mgl32.Vec3{
		2: {0.2, 0.6, 1.0},
		3: {0.0, 0.7, 0.0},
		4: {0.8, 0.8, 0.4},
		5: {1.0, 0.5, 0.0},
	}
)

// Layout is an immutable parsed tile grid. Rows may differ in length;
// the grid width is taken from the first row.
type Layout struct {
	Name  string
	Tiles [][]int
}

// ParseLayout reads a level file. Each non-blank line is a row with one
// tile per digit; any other character is a separator.
func ParseLayout(name string, r io.Reader) (Layout, error) {
	layout := Layout{Name: name}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		row := parseRow(text)
		if len(row) == 0 {
			return Layout{}, fmt.Errorf("%w: level %q line %d", ErrEmptyRow, name, line)
		}
		layout.Tiles = append(layout.Tiles, row)
	}
	if err := sc.Err(); err != nil {
		return Layout{}, fmt.Errorf("breakout: read level %q: %w", name, err)
	}
	if len(layout.Tiles) == 0 {
		return Layout{}, fmt.Errorf("%w: %q", ErrEmptyLevel, name)
	}
	return layout, nil
}

// ParseLayoutString is ParseLayout over a string.
func ParseLayoutString(name, data string) (Layout, error) {
	return ParseLayout(name, strings.NewReader(data))
}

func parseRow(text string) []int {
	var row []int
	for _, r := range text {
		if r >= '0' && r <= '9' {
			row = append(row, int(r-'0'))
		}
	}
	return row
}

// Width returns the grid width in tiles.
func (l Layout) Width() int {
	if len(l.Tiles) == 0 {
		return 0
	}
	return len(l.Tiles[0])
}

// Height returns the grid height in tiles.
func (l Layout) Height() int {
	return len(l.Tiles)
}

// Breakable returns the number of destructible tiles.
func (l Layout) Breakable() int {
	n := 0
	for _, row := range l.Tiles {
		for _, t := range row {
			if t > TileSolid {
				n++
			}
		}
	}
	return n
}

// Level holds the bricks built from a Layout.
type Level struct {
	Layout Layout
	Bricks []Entity

	block, solid Texture
}

// NewLevel creates an unloaded level. Call Load before use.
func NewLevel(layout Layout, block, solid Texture) *Level {
	return &Level{Layout: layout, block: block, solid: solid}
}

// Name returns the layout name.
func (l *Level) Name() string {
	return l.Layout.Name
}

// Load rebuilds the bricks to fill a width x height area.
func (l *Level) Load(width, height float32) {
	l.Bricks = l.Bricks[:0]

	gridW, gridH := l.Layout.Width(), l.Layout.Height()
	if gridW == 0 || gridH == 0 {
		return
	}
	unitW := width / float32(gridW)
	unitH := height / float32(gridH)
	size := mgl32.Vec2{unitW, unitH}

	for y, row := range l.Layout.Tiles {
		for x, tile := range row {
			if tile == TileEmpty {
				continue
			}
			pos := mgl32.Vec2{unitW * float32(x), unitH * float32(y)}
			if tile == TileSolid {
				brick := NewEntity(pos, size, l.solid)
				brick.Color = ColorSolid
				brick.Solid = true
				l.Bricks = append(l.Bricks, brick)
				continue
			}
			brick := NewEntity(pos, size, l.block)
			if c, ok := brickColors[tile]; ok {
				brick.Color = c
			}
			l.Bricks = append(l.Bricks, brick)
		}
	}
}

// IsCompleted reports whether every non-solid brick is destroyed.
func (l *Level) IsCompleted() bool {
	for i := range l.Bricks {
		if !l.Bricks[i].Solid && !l.Bricks[i].Destroyed {
			return false
		}
	}
	return true
}

// Remaining returns the number of live non-solid bricks.
func (l *Level) Remaining() int {
	n := 0
	for i := range l.Bricks {
		if !l.Bricks[i].Solid && !l.Bricks[i].Destroyed {
			n++
		}
	}
	return n
}

// Draw renders every live brick.
func (l *Level) Draw(r Renderer) {
	for i := range l.Bricks {
		if !l.Bricks[i].Destroyed {
			l.Bricks[i].Draw(r)
		}
	}
}
