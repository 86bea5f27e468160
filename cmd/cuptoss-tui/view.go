package main

import "github.com/playmatatu/cuptoss/internal/game"

// Visible slice of the table, in world units. The thrower stands at the bottom edge.
const (
	viewMinX = -5.0
	viewMaxX = 5.0
	viewMinZ = -6.0
	viewMaxZ = 7.0

	hudRows = 2
)

// view maps the table plane (x, z) onto terminal cells, top-down.
type view struct {
	width, height int
}

func (v view) playRows() int {
	if v.height <= hudRows {
		return 1
	}
	return v.height - hudRows
}

// toCell returns the cell for a world position; ok is false when it is off screen.
func (v view) toCell(p game.Vec3) (col, row int, ok bool) {
	fx := (p.X - viewMinX) / (viewMaxX - viewMinX)
	fz := (p.Z - viewMinZ) / (viewMaxZ - viewMinZ)
	if fx < 0 || fx >= 1 || fz < 0 || fz >= 1 {
		return 0, 0, false
	}
	return int(fx * float64(v.width)), hudRows + int(fz*float64(v.playRows())), true
}

// toWorld returns the table point under the centre of a cell by casting a ray straight
// down from above it.
func (v view) toWorld(col, row int) (game.Vec3, bool) {
	if row < hudRows || v.width <= 0 {
		return game.Vec3{}, false
	}
	x := viewMinX + (float64(col)+0.5)/float64(v.width)*(viewMaxX-viewMinX)
	z := viewMinZ + (float64(row-hudRows)+0.5)/float64(v.playRows())*(viewMaxZ-viewMinZ)
	return game.IntersectGround(game.NewVec3(x, 10, z), game.NewVec3(0, -1, 0))
}

// heightGlyph shows how high a ball is above the table.
func heightGlyph(y float64) rune {
	switch {
	case y < 0.3:
		return '.'
	case y < 0.8:
		return 'o'
	case y < 2:
		return 'O'
	default:
		return '@'
	}
}
