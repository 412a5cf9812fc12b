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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Point is a quantized point in glyph space.
type Point struct {
	X, Y uint16
}

// Quantize converts a point to the integer grid.
// Each coordinate is truncated towards zero and then clamped to the range
// 0, ..., 65535.  NaN maps to 0.
func Quantize(v vec.Vec2) Point {
	return Point{X: quantize(v.X), Y: quantize(v.Y)}
}

func quantize(x float64) uint16 {
	x = math.Trunc(x)
	switch {
	case !(x > 0): // also catches NaN
		return 0
	case x >= math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(x)
	}
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Signature is the set of quantized points of a contour.
// The points are sorted by X, then by Y, and each point occurs only once.
type Signature []Point

// NewSignature returns the signature of the given points.
// The argument is not modified.
func NewSignature(pts []vec.Vec2) Signature {
	sig := make(Signature, len(pts))
	for i, v := range pts {
		sig[i] = Quantize(v)
	}
	return normalize(sig)
}

// SignatureOf returns a signature containing the given quantized points.
func SignatureOf(pts ...Point) Signature {
	return normalize(slices.Clone(Signature(pts)))
}

func normalize(sig Signature) Signature {
	slices.SortFunc(sig, comparePoints)
	return slices.Compact(sig)
}

// Equal reports whether two signatures contain the same points.
func (s Signature) Equal(other Signature) bool {
	return slices.Equal(s, other)
}

// Contains reports whether p is an element of the signature.
func (s Signature) Contains(p Point) bool {
	_, found := slices.BinarySearchFunc(s, p, comparePoints)
	return found
}

// Difference returns the number of points in s which are not in other.
func (s Signature) Difference(other Signature) int {
	count := 0
	i, j := 0, 0
	for i < len(s) {
		if j >= len(other) {
			count += len(s) - i
			break
		}
		switch c := comparePoints(s[i], other[j]); {
		case c < 0:
			count++
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return count
}

// IsSorted reports whether the signature is in normal form, i.e. whether
// the points are strictly increasing.
func (s Signature) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if comparePoints(s[i-1], s[i]) >= 0 {
			return false
		}
	}
	return true
}
