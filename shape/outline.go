// seehuhn.de/go/glyphmatch - identify glyphs by their outlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shape

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Op identifies the type of a path segment.
type Op uint8

// These are the supported path segment types.
const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

// Segment is a single path command together with its points.
// MoveTo and LineTo have one point, QuadTo has two and CubeTo has three
// points.  Close has no points.
type Segment struct {
	Op  Op
	Pts []vec.Vec2
}

// Contour is a closed sub-path of a glyph outline.
// The first segment of a non-empty contour is always a MoveTo.
type Contour []Segment

// Points returns all points of the contour in path order, including the
// control points of curves.
func (c Contour) Points() []vec.Vec2 {
	var res []vec.Vec2
	for _, seg := range c {
		res = append(res, seg.Pts...)
	}
	return res
}

// Signature returns the set of quantized points of the contour.
func (c Contour) Signature() Signature {
	return NewSignature(c.Points())
}

// Outline is the shape of a glyph, given as a sequence of contours.
type Outline []Contour

// IsEmpty reports whether the outline has no contours.
// Glyphs like the space character have empty outlines.
func (o Outline) IsEmpty() bool {
	return len(o) == 0
}

// Signatures returns the signatures of all contours, in contour order.
func (o Outline) Signatures() []Signature {
	res := make([]Signature, len(o))
	for i, c := range o {
		res[i] = c.Signature()
	}
	return res
}

// PointSet returns the quantized points of all contours, without
// duplicates.  The order of the result is the order in which the points
// first occur in the outline.
func (o Outline) PointSet() []Point {
	seen := make(map[Point]bool)
	var res []Point
	for _, c := range o {
		for _, seg := range c {
			for _, v := range seg.Pts {
				p := Quantize(v)
				if seen[p] {
					continue
				}
				seen[p] = true
				res = append(res, p)
			}
		}
	}
	return res
}

// BBox returns the bounding box of all points of the outline.
// Control points are included, so the result may be larger than the
// tight bounding box of the curves.  The bounding box of an empty outline
// is the zero rectangle.
func (o Outline) BBox() rect.Rect {
	first := true
	var res rect.Rect
	for _, c := range o {
		for _, seg := range c {
			for _, v := range seg.Pts {
				if first {
					res = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
					first = false
					continue
				}
				res.LLx = math.Min(res.LLx, v.X)
				res.LLy = math.Min(res.LLy, v.Y)
				res.URx = math.Max(res.URx, v.X)
				res.URy = math.Max(res.URy, v.Y)
			}
		}
	}
	return res
}

// SVGPath returns the outline in the syntax of the "d" attribute of an
// SVG path element.
func (o Outline) SVGPath() string {
	b := &strings.Builder{}
	for _, c := range o {
		for _, seg := range c {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			switch seg.Op {
			case OpMoveTo:
				b.WriteByte('M')
			case OpLineTo:
				b.WriteByte('L')
			case OpQuadTo:
				b.WriteByte('Q')
			case OpCubeTo:
				b.WriteByte('C')
			case OpClose:
				b.WriteByte('Z')
			}
			for _, v := range seg.Pts {
				b.WriteByte(' ')
				b.WriteString(formatNum(v.X))
				b.WriteByte(' ')
				b.WriteString(formatNum(v.Y))
			}
		}
	}
	return b.String()
}

func formatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Builder constructs an outline from path commands.
// The zero value is ready to use.
type Builder struct {
	outline Outline
	current Contour
}

// MoveTo starts a new contour at (x, y).
// Any open contour is closed first.
func (b *Builder) MoveTo(x, y float64) {
	b.flush()
	b.current = Contour{{Op: OpMoveTo, Pts: []vec.Vec2{{X: x, Y: y}}}}
}

// LineTo adds a straight line to (x, y).
func (b *Builder) LineTo(x, y float64) {
	b.add(OpLineTo, vec.Vec2{X: x, Y: y})
}

// QuadTo adds a quadratic Bézier curve with control point (x1, y1)
// and end point (x, y).
func (b *Builder) QuadTo(x1, y1, x, y float64) {
	b.add(OpQuadTo, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x, Y: y})
}

// CurveTo adds a cubic Bézier curve.
func (b *Builder) CurveTo(x1, y1, x2, y2, x, y float64) {
	b.add(OpCubeTo, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2}, vec.Vec2{X: x, Y: y})
}

// ClosePath closes the current contour.
func (b *Builder) ClosePath() {
	if b.current == nil {
		return
	}
	b.current = append(b.current, Segment{Op: OpClose})
	b.flush()
}

// Outline returns the outline constructed so far.
// An unclosed final contour is included as it is.
func (b *Builder) Outline() Outline {
	b.flush()
	return b.outline
}

func (b *Builder) add(op Op, pts ...vec.Vec2) {
	if b.current == nil {
		// Segments without a preceding MoveTo start at the origin.
		b.current = Contour{{Op: OpMoveTo, Pts: []vec.Vec2{{}}}}
	}
	b.current = append(b.current, Segment{Op: op, Pts: pts})
}

// flush moves the current contour to the outline.
// Contours without drawing segments are dropped.
func (b *Builder) flush() {
	for _, seg := range b.current {
		if seg.Op != OpMoveTo && seg.Op != OpClose {
			b.outline = append(b.outline, b.current)
			break
		}
	}
	b.current = nil
}

// Polygon returns an outline consisting of a single contour through the
// given points.
func Polygon(pts ...vec.Vec2) Outline {
	b := &Builder{}
	for i, v := range pts {
		if i == 0 {
			b.MoveTo(v.X, v.Y)
		} else {
			b.LineTo(v.X, v.Y)
		}
	}
	b.ClosePath()
	return b.Outline()
}
