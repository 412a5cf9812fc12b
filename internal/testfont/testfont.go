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

// Package testfont provides fonts for use in unit tests.
package testfont

import (
	"bytes"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"
)

// Glyph describes a glyph made of straight line contours.
type Glyph struct {
	Name     string
	Contours [][]vec.Vec2
}

// Square returns the contour of an axis-parallel square.
func Square(x, y, size float64) []vec.Vec2 {
	return []vec.Vec2{
		{X: x, Y: y},
		{X: x, Y: y + size},
		{X: x + size, Y: y + size},
		{X: x + size, Y: y},
	}
}

// Triangle returns the contour of a triangle.
func Triangle(x, y, size float64) []vec.Vec2 {
	return []vec.Vec2{
		{X: x, Y: y},
		{X: x + size/2, Y: y + size},
		{X: x + size, Y: y},
	}
}

// Glyphs returns a small glyph set: .notdef, space, and the letters
// A (square), B (triangle) and C (square with a hole).
func Glyphs() []Glyph {
	return []Glyph{
		{Name: ".notdef", Contours: [][]vec.Vec2{Square(50, 0, 400)}},
		{Name: "space"},
		{Name: "A", Contours: [][]vec.Vec2{Square(0, 0, 500)}},
		{Name: "B", Contours: [][]vec.Vec2{Triangle(0, 0, 600)}},
		{Name: "C", Contours: [][]vec.Vec2{Square(0, 0, 700), Square(100, 100, 300)}},
	}
}

// GoRegular returns the Go Regular font, which has glyf outlines.
func GoRegular() *sfnt.Font {
	return mustRead(goregular.TTF)
}

// GoMono returns the Go Mono font, which has glyf outlines.
func GoMono() *sfnt.Font {
	return mustRead(gomono.TTF)
}

func mustRead(data []byte) *sfnt.Font {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return info
}

var fontMatrix = matrix.Matrix{0.001, 0, 0, 0.001, 0, 0}

// CFF returns a bare CFF font with the given glyphs.
func CFF(fontName string, glyphs []Glyph) *cff.Font {
	return &cff.Font{
		FontInfo: &type1.FontInfo{
			FontName:   fontName,
			FullName:   fontName,
			FamilyName: fontName,
			Weight:     "Regular",
			Version:    "1.0",
			FontMatrix: fontMatrix,
		},
		Outlines: makeCFFOutlines(glyphs),
	}
}

// OpenType returns an sfnt font with CFF outlines.  Glyph names are
// included only if withNames is true.  The character map maps the given
// characters to glyph IDs.
func OpenType(familyName string, glyphs []Glyph, withNames bool, text map[rune]glyph.ID) *sfnt.Font {
	outlines := makeCFFOutlines(glyphs)
	if !withNames {
		for _, g := range outlines.Glyphs {
			g.Name = ""
		}
	}

	info := &sfnt.Font{
		FamilyName: familyName,
		Weight:     os2.WeightMedium,
		Width:      os2.WidthNormal,
		IsRegular:  true,
		UnitsPerEm: 1000,
		FontMatrix: fontMatrix,
		Outlines:   outlines,
	}
	if text != nil {
		subtable := make(cmap.Format4)
		for r, gid := range text {
			setEntry(subtable, r, gid)
		}
		info.CMapTable = cmap.Table{
			{PlatformID: 0, EncodingID: 3}: subtable.Encode(0),
		}
	}
	return info
}

func setEntry[K ~uint16 | ~int32 | ~uint32](m map[K]glyph.ID, r rune, gid glyph.ID) {
	m[K(r)] = gid
}

func makeCFFOutlines(glyphs []Glyph) *cff.Outlines {
	outlines := &cff.Outlines{
		Private: []*type1.PrivateDict{
			{BlueScale: 0.039625, BlueShift: 7, BlueFuzz: 1},
		},
		FDSelect: func(glyph.ID) int { return 0 },
	}
	for _, g := range glyphs {
		cg := cff.NewGlyph(g.Name, 1000)
		for _, contour := range g.Contours {
			for i, v := range contour {
				if i == 0 {
					cg.MoveTo(v.X, v.Y)
				} else {
					cg.LineTo(v.X, v.Y)
				}
			}
		}
		outlines.Glyphs = append(outlines.Glyphs, cg)
	}
	return outlines
}

// Type1 returns a Type 1 font with the given glyphs.
func Type1(fontName string, glyphs []Glyph) *type1.Font {
	encoding := make([]string, 256)
	for i := range encoding {
		encoding[i] = ".notdef"
	}
	res := &type1.Font{
		FontInfo: &type1.FontInfo{
			FontName:   fontName,
			FullName:   fontName,
			FamilyName: fontName,
			Weight:     "Regular",
			Version:    "1.0",
			FontMatrix: fontMatrix,
		},
		Outlines: &type1.Outlines{
			Glyphs:   make(map[string]*type1.Glyph),
			Private:  &type1.PrivateDict{BlueScale: 0.039625, BlueShift: 7, BlueFuzz: 1},
			Encoding: encoding,
		},
	}
	for _, g := range glyphs {
		tg := &type1.Glyph{WidthX: 1000}
		for _, contour := range g.Contours {
			for i, v := range contour {
				if i == 0 {
					tg.MoveTo(v.X, v.Y)
				} else {
					tg.LineTo(v.X, v.Y)
				}
			}
			tg.ClosePath()
		}
		res.Glyphs[g.Name] = tg
	}
	return res
}
