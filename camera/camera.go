// Package camera maps a toroidal tile grid onto a screen viewport.
package camera

import "math"

// Camera views a Cols x Rows tile grid. At Zoom 1 the whole grid fits the
// viewport; higher zoom magnifies around the center tile, wrapping at the
// grid edges.
type Camera struct {
	// X, Y is the view center in tile coordinates.
	X, Y float32

	Zoom             float32
	MinZoom, MaxZoom float32

	// Viewport in screen pixels.
	ViewX, ViewY, ViewW, ViewH float32

	Cols, Rows int
}

// New creates a camera centered on a cols x rows grid at zoom 1.
func New(cols, rows int) *Camera {
	c := &Camera{MinZoom: 1, MaxZoom: 32}
	c.SetGrid(cols, rows)
	return c
}

// SetGrid changes the grid size and recenters the view.
func (c *Camera) SetGrid(cols, rows int) {
	c.Cols, c.Rows = max(cols, 1), max(rows, 1)
	c.Reset()
}

// SetViewport sets the screen rectangle the grid is drawn into.
func (c *Camera) SetViewport(x, y, w, h float32) {
	c.ViewX, c.ViewY, c.ViewW, c.ViewH = x, y, w, h
}

// Reset returns the camera to the grid center at zoom 1.
func (c *Camera) Reset() {
	c.X = float32(c.Cols) / 2
	c.Y = float32(c.Rows) / 2
	c.Zoom = 1
}

// CellSize returns the side of one tile in pixels.
func (c *Camera) CellSize() float32 {
	fit := min(c.ViewW/float32(c.Cols), c.ViewH/float32(c.Rows))
	return max(fit*c.Zoom, 1)
}

// Pan moves the view by a screen-space delta, wrapping around the grid.
func (c *Camera) Pan(dx, dy float32) {
	cell := c.CellSize()
	c.X = mod(c.X+dx/cell, float32(c.Cols))
	c.Y = mod(c.Y+dy/cell, float32(c.Rows))
}

// SetZoom sets the zoom level, clamped to MinZoom..MaxZoom.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Visible returns the unwrapped tile ranges to draw. Columns run from
// firstCol for nCols tiles and may fall outside 0..Cols-1; callers wrap them.
// A span never repeats a tile.
func (c *Camera) Visible() (firstCol, nCols, firstRow, nRows int) {
	cell := c.CellSize()
	firstCol, nCols = span(c.X, c.ViewW/(2*cell), c.Cols)
	firstRow, nRows = span(c.Y, c.ViewH/(2*cell), c.Rows)
	return
}

// CellToScreen returns the top-left screen corner of an unwrapped tile.
func (c *Camera) CellToScreen(col, row int) (sx, sy float32) {
	cell := c.CellSize()
	sx = c.ViewX + c.ViewW/2 + (float32(col)-c.X)*cell
	sy = c.ViewY + c.ViewH/2 + (float32(row)-c.Y)*cell
	return sx, sy
}

// TileToScreen returns the top-left screen corner of the copy of tile
// (col, row) nearest the view center.
func (c *Camera) TileToScreen(col, row int) (sx, sy float32) {
	cell := c.CellSize()
	dx := toroidalDelta(float32(col)+0.5, c.X, float32(c.Cols)) - 0.5
	dy := toroidalDelta(float32(row)+0.5, c.Y, float32(c.Rows)) - 0.5
	sx = c.ViewX + c.ViewW/2 + dx*cell
	sy = c.ViewY + c.ViewH/2 + dy*cell
	return sx, sy
}

// ScreenToTile returns the tile under a screen point. ok is false when the
// point is outside the drawn grid.
func (c *Camera) ScreenToTile(sx, sy float32) (col, row int, ok bool) {
	cell := c.CellSize()
	u := c.X + (sx-c.ViewX-c.ViewW/2)/cell
	v := c.Y + (sy-c.ViewY-c.ViewH/2)/cell

	firstCol, nCols, firstRow, nRows := c.Visible()
	if u < float32(firstCol) || u >= float32(firstCol+nCols) ||
		v < float32(firstRow) || v >= float32(firstRow+nRows) {
		return 0, 0, false
	}
	if sx < c.ViewX || sx >= c.ViewX+c.ViewW || sy < c.ViewY || sy >= c.ViewY+c.ViewH {
		return 0, 0, false
	}
	col = int(mod(float32(math.Floor(float64(u))), float32(c.Cols)))
	row = int(mod(float32(math.Floor(float64(v))), float32(c.Rows)))
	return col, row, true
}

// span returns the first unwrapped tile and tile count covering
// center-half..center+half, capped at size tiles.
func span(center, half float32, size int) (first, n int) {
	if 2*half >= float32(size) {
		return int(math.Floor(float64(center) - float64(size)/2)), size
	}
	first = int(math.Floor(float64(center - half)))
	last := int(math.Ceil(float64(center + half)))
	return first, last - first
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// on a ring of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
