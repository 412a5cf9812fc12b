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

package fontfile

import (
	"bytes"
	"errors"
	"os"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/shape"
)

// ErrUnknownFormat is returned by [Parse] if the data is not in any of the
// supported font formats.
var ErrUnknownFormat = errors.New("unknown font format")

// Font gives access to the glyph outlines of a font.
type Font interface {
	// PostScriptName returns the PostScript name of the font, as stored in
	// the font file.  The result may include a subset tag, or it may be
	// empty.
	PostScriptName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// Outline returns the outline of the given glyph.
	// Blank glyphs and glyph IDs which are out of range have an empty
	// outline.
	Outline(gid glyph.ID) shape.Outline
}

// TrueType is an sfnt font with glyf outlines.
type TrueType struct {
	Info *sfnt.Font
}

// OpenType is an sfnt font with CFF outlines.
type OpenType struct {
	Info *sfnt.Font
}

// CFF is a bare CFF font program.
type CFF struct {
	Font *cff.Font
}

// Type1 is a PostScript Type 1 font.
// Glyph IDs are assigned in alphabetical order of the glyph names,
// except that .notdef, if present, always has glyph ID 0.
type Type1 struct {
	Font *type1.Font

	names []string
}

// ReadFile reads a font from the named file.
func ReadFile(fname string) (Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a font.
// The format is detected from the first few bytes of the data.
func Parse(data []byte) (Font, error) {
	switch {
	case isSfnt(data):
		info, err := sfnt.Read(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return FromSfnt(info)
	case isType1(data):
		psFont, err := type1.Read(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return NewType1(psFont), nil
	case isCFF(data):
		cffFont, err := cff.Read(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &CFF{Font: cffFont}, nil
	}
	return nil, ErrUnknownFormat
}

// FromSfnt wraps an sfnt font as either a [TrueType] or an [OpenType]
// font, depending on the type of glyph outlines.
func FromSfnt(info *sfnt.Font) (Font, error) {
	switch {
	case info.IsGlyf():
		return &TrueType{Info: info}, nil
	case info.IsCFF():
		return &OpenType{Info: info}, nil
	}
	return nil, ErrUnknownFormat
}

// NewType1 wraps a Type 1 font.
func NewType1(psFont *type1.Font) *Type1 {
	names := make([]string, 0, len(psFont.Glyphs))
	for name := range psFont.Glyphs {
		if name != ".notdef" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if _, hasNotdef := psFont.Glyphs[".notdef"]; hasNotdef {
		names = slices.Insert(names, 0, ".notdef")
	}
	return &Type1{Font: psFont, names: names}
}

func isSfnt(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true", "OTTO":
		return true
	}
	return false
}

func isType1(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0x80, 0x01}) || // PFB
		bytes.HasPrefix(data, []byte("%!PS-AdobeFont")) ||
		bytes.HasPrefix(data, []byte("%!FontType1"))
}

// isCFF checks for a CFF header with major version 1.
func isCFF(data []byte) bool {
	return len(data) >= 4 && data[0] == 1 && data[2] >= 4
}

// PostScriptName implements the [Font] interface.
func (f *TrueType) PostScriptName() string {
	return f.Info.PostScriptName()
}

// NumGlyphs implements the [Font] interface.
func (f *TrueType) NumGlyphs() int {
	return f.Info.NumGlyphs()
}

// Outline implements the [Font] interface.
func (f *TrueType) Outline(gid glyph.ID) shape.Outline {
	return sfntOutline(f.Info, gid)
}

// CMap returns the best available character map subtable of the font,
// or nil if the font has no usable character map.
func (f *TrueType) CMap() cmap.Subtable {
	return bestCMap(f.Info)
}

// PostScriptName implements the [Font] interface.
func (f *OpenType) PostScriptName() string {
	return f.Info.PostScriptName()
}

// NumGlyphs implements the [Font] interface.
func (f *OpenType) NumGlyphs() int {
	return f.Info.NumGlyphs()
}

// Outline implements the [Font] interface.
func (f *OpenType) Outline(gid glyph.ID) shape.Outline {
	return sfntOutline(f.Info, gid)
}

// CMap returns the best available character map subtable of the font,
// or nil if the font has no usable character map.
func (f *OpenType) CMap() cmap.Subtable {
	return bestCMap(f.Info)
}

// GlyphNames returns the glyph names from the CFF charset, indexed by
// glyph ID.  Fonts without glyph names give a slice of empty strings.
func (f *OpenType) GlyphNames() []string {
	outlines, ok := f.Info.Outlines.(*cff.Outlines)
	if !ok {
		return nil
	}
	return cffNames(outlines)
}

// PostScriptName implements the [Font] interface.
func (f *CFF) PostScriptName() string {
	if f.Font.FontInfo == nil {
		return ""
	}
	return f.Font.FontInfo.FontName
}

// NumGlyphs implements the [Font] interface.
func (f *CFF) NumGlyphs() int {
	return len(f.Font.Outlines.Glyphs)
}

// Outline implements the [Font] interface.
func (f *CFF) Outline(gid glyph.ID) shape.Outline {
	if int(gid) >= f.NumGlyphs() {
		return nil
	}
	return pathOutline(f.Font.Outlines.Path(gid))
}

// GlyphNames returns the glyph names from the CFF charset, indexed by
// glyph ID.  CID-keyed fonts give a slice of empty strings.
func (f *CFF) GlyphNames() []string {
	return cffNames(f.Font.Outlines)
}

// PostScriptName implements the [Font] interface.
func (f *Type1) PostScriptName() string {
	if f.Font.FontInfo == nil {
		return ""
	}
	return f.Font.FontInfo.FontName
}

// NumGlyphs implements the [Font] interface.
func (f *Type1) NumGlyphs() int {
	return len(f.names)
}

// Outline implements the [Font] interface.
func (f *Type1) Outline(gid glyph.ID) shape.Outline {
	if int(gid) >= len(f.names) {
		return nil
	}
	g := f.Font.Glyphs[f.names[gid]]
	if g == nil {
		return nil
	}
	return pathOutline(g.Path())
}

// GlyphNames returns the glyph names, indexed by glyph ID.
func (f *Type1) GlyphNames() []string {
	return slices.Clone(f.names)
}

func sfntOutline(info *sfnt.Font, gid glyph.ID) shape.Outline {
	if info.Outlines == nil || int(gid) >= info.NumGlyphs() {
		return nil
	}
	return pathOutline(info.Outlines.Path(gid))
}

// pathOutline converts a glyph path into an outline.
func pathOutline(p path.Path) shape.Outline {
	b := &shape.Builder{}
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			addSegment(b, shape.OpMoveTo, pts)
		case path.CmdLineTo:
			addSegment(b, shape.OpLineTo, pts)
		case path.CmdQuadTo:
			addSegment(b, shape.OpQuadTo, pts)
		case path.CmdCubeTo:
			addSegment(b, shape.OpCubeTo, pts)
		case path.CmdClose:
			b.ClosePath()
		}
	}
	return b.Outline()
}

func addSegment(b *shape.Builder, op shape.Op, pts []vec.Vec2) {
	switch op {
	case shape.OpMoveTo:
		b.MoveTo(pts[0].X, pts[0].Y)
	case shape.OpLineTo:
		b.LineTo(pts[0].X, pts[0].Y)
	case shape.OpQuadTo:
		b.QuadTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
	case shape.OpCubeTo:
		b.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
	}
}

func bestCMap(info *sfnt.Font) cmap.Subtable {
	if info.CMapTable == nil {
		return nil
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil
	}
	return subtable
}

func cffNames(outlines *cff.Outlines) []string {
	names := make([]string, len(outlines.Glyphs))
	for i, g := range outlines.Glyphs {
		names[i] = g.Name
	}
	return names
}
