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

// Package reference builds shape databases from reference fonts.
//
// A reference font is a font where the Unicode text of (most) glyphs is
// known.  For fonts with glyph names, the text is derived from the names,
// using the Adobe Glyph List conventions.  Otherwise, the character map of
// the font is inverted.  The outlines of all glyphs with known text are
// then stored in a [shapedb.DB], using the text as the label.
package reference

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoMapping indicates that a font has neither glyph names nor a
	// character map, so that no glyph can be labelled.
	ErrNoMapping = errors.New("font has neither glyph names nor a character map")

	// ErrNoName indicates that a font has no PostScript name, so that
	// there is no file name to store its database under.
	ErrNoName = errors.New("font has no PostScript name")
)

// IsSkip reports whether err indicates a font which cannot be used as a
// reference font, rather than a failure.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoMapping) || errors.Is(err, ErrNoName)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
