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

// Package shape implements the geometric side of glyph matching:
// quantized points, contour signatures and glyph outlines.
//
// An outline is a sequence of contours, each of which is a closed path made
// of line and curve segments.  For matching, every contour is reduced to its
// [Signature], the set of its quantized points.  Control points of curves
// are included.  Quantization truncates coordinates towards zero and clamps
// them to the range of a uint16, so that distinct points which truncate to
// the same grid position compare equal.
package shape
