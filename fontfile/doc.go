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

// Package fontfile reads the font formats which can serve as input for glyph
// matching.
//
// The supported formats form a closed set of variants, all of which
// implement the [Font] interface:
//
//   - [TrueType]: sfnt fonts with glyf outlines.  These provide a
//     character map.
//   - [OpenType]: sfnt fonts with CFF outlines.  These provide glyph names
//     and a character map.
//   - [CFF]: bare CFF font programs, as embedded in PDF files.  These
//     provide glyph names.
//   - [Type1]: PostScript Type 1 fonts in PFA or PFB format.  These provide
//     glyph names.
//
// Code which needs to know which mapping information a font provides uses a
// type switch over these variants.
package fontfile
