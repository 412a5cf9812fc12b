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

package reference

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/postscript/type1/names"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/fontfile"
)

// Assignment associates a glyph with its text.
type Assignment struct {
	GID  glyph.ID
	Text string
}

// Labels determines the text for the glyphs of a reference font.
//
// Glyph names are used if the font has any.  Otherwise the character map
// is used.  Glyphs where the text cannot be determined are omitted from
// the result.  If the font provides neither glyph names nor a character
// map, [ErrNoMapping] is returned.
//
// If log is nil, diagnostic messages are discarded.
func Labels(f fontfile.Font, log logrus.FieldLogger) ([]Assignment, error) {
	if log == nil {
		log = discardLogger()
	}

	var glyphNames []string
	var charMap cmap.Subtable
	switch f := f.(type) {
	case *fontfile.TrueType:
		charMap = f.CMap()
	case *fontfile.OpenType:
		glyphNames = f.GlyphNames()
		charMap = f.CMap()
	case *fontfile.CFF:
		glyphNames = f.GlyphNames()
	case *fontfile.Type1:
		glyphNames = f.GlyphNames()
	}

	switch {
	case hasNames(glyphNames):
		log.WithField("glyphs", len(glyphNames)).Debug("using glyph names")
		return fromNames(glyphNames, log), nil
	case charMap != nil:
		log.Debug("using character map")
		return fromCMap(charMap), nil
	}
	return nil, ErrNoMapping
}

func hasNames(glyphNames []string) bool {
	for _, name := range glyphNames {
		if name != "" {
			return true
		}
	}
	return false
}

func fromNames(glyphNames []string, log logrus.FieldLogger) []Assignment {
	var res []Assignment
	for i, name := range glyphNames {
		if name == "" || name == ".notdef" {
			continue
		}
		text, ok := GlyphText(name)
		if !ok {
			log.WithFields(logrus.Fields{
				"gid":   i,
				"glyph": name,
			}).Info("glyph name not found")
			continue
		}
		res = append(res, Assignment{GID: glyph.ID(i), Text: text})
	}
	return res
}

// GlyphText returns the text for a glyph name.
//
// The name is first interpreted using the Adobe Glyph List rules.
// If this gives no result, names of the form "uniXXXX", where XXXX is
// a hexadecimal number in either case, are interpreted as a single
// Unicode code point.
func GlyphText(name string) (string, bool) {
	rr := names.ToUnicode(name, "")
	if len(rr) > 0 {
		return string(rr), true
	}

	hex, ok := strings.CutPrefix(name, "uni")
	if !ok || hex == "" {
		return "", false
	}
	x, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", false
	}
	r := rune(x)
	if !utf8.ValidRune(r) {
		return "", false
	}
	return string(r), true
}

// fromCMap inverts a character map.  Code points are visited in increasing
// order, so that the result is deterministic.  A glyph mapped from several
// code points is listed once for each of them.
func fromCMap(charMap cmap.Subtable) []Assignment {
	var res []Assignment
	low, high := charMap.CodeRange()
	for r := low; r <= high; r++ {
		gid := charMap.Lookup(r)
		if gid == 0 || !utf8.ValidRune(r) {
			continue
		}
		res = append(res, Assignment{GID: gid, Text: string(r)})
	}
	return res
}
