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

// Package shapedb implements a database of glyph outline fingerprints.
//
// Every entry of a database associates a label with the contour signatures
// of one glyph outline.  An inverted index maps each quantized point to the
// entries whose outlines contain this point.  To identify an unknown
// outline, [DB.Query] first uses the index to rank candidate entries by the
// number of shared points, and then accepts the first candidate whose
// contours can be paired with the contours of the query outline such that
// paired contours have identical signatures.
//
// The pairing is a greedy linear scan: every contour of the query claims
// the first unused stored contour with the same signature.  No attempt is
// made to find an optimal assignment.  Since signature equality is an
// equivalence relation, the scan finds a complete pairing whenever one
// exists, but the order of the stored contours determines which stored
// contour is paired with which query contour, and thus the trace reported
// to an [Observer].
//
// A database is built by calls to [DB.Add].  Once construction is complete,
// the database must not be modified any more; it can then be used by any
// number of concurrent readers.
package shapedb
