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

package shapedb

// Observer receives a trace of the decisions made by [DB.Query].
// This is used to generate human readable reports; a nil Observer
// disables tracing.
type Observer[L any] interface {
	// Candidate is called when the query starts to consider a database
	// entry.  Hits is the number of points the entry shares with the
	// query outline.
	Candidate(label L, hits int)

	// ContourCount is called when a candidate is rejected because the
	// number of contours differs.
	ContourCount(label L, stored, query int)

	// ContourMismatch is called when contour number queryContour of the
	// query outline is compared to the unused contour storedContour of the
	// candidate and the two signatures differ.  Missing is the number of
	// points of the query contour which are not in the stored contour,
	// total is the number of points of the query contour.
	ContourMismatch(label L, queryContour, storedContour, missing, total int)

	// Decision is called after the contours of a candidate have been
	// paired.  The slice used shows which stored contours were matched.
	Decision(label L, used []bool, accepted bool)
}
