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

// Package classify assigns Unicode text to the glyphs of a font, by looking
// up their outlines in a shape database built from a reference font.
//
// Only glyphs whose outline is identical, after quantization, to an outline
// in the reference font are labelled.  Blank glyphs are never labelled.
package classify

import (
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/shape"
	"seehuhn.de/go/glyphmatch/shapedb"
)

// Font gives access to the glyph outlines of a font.
type Font interface {
	NumGlyphs() int
	Outline(gid glyph.ID) shape.Outline
}

// Observer receives a trace of the classification.
//
// For every non-blank glyph, BeginGlyph is called first, followed by the
// calls made by the database query, followed by EndGlyph.
type Observer interface {
	shapedb.Observer[string]

	BeginGlyph(gid glyph.ID, o shape.Outline)
	EndGlyph(gid glyph.ID, text string, ok bool)
}

// Glyphs looks up all glyphs of f in db.
// The result maps glyph IDs to the text of the matching reference glyph.
// Glyphs without a match are not included in the map.
//
// If obs is non-nil, it is informed about every step of the search.
func Glyphs(db *shapedb.DB[string], f Font, obs Observer) map[glyph.ID]string {
	res := make(map[glyph.ID]string)
	n := f.NumGlyphs()
	for i := 0; i < n; i++ {
		gid := glyph.ID(i)
		o := f.Outline(gid)
		if o.IsEmpty() {
			continue
		}

		if obs != nil {
			obs.BeginGlyph(gid, o)
		}
		text, ok := db.Query(o, obs)
		if obs != nil {
			obs.EndGlyph(gid, text, ok)
		}
		if ok {
			res[gid] = text
		}
	}
	return res
}
