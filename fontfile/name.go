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
	"path/filepath"
	"strings"
)

// IsValidTag reports whether tag is a valid subset tag, i.e. a string of
// six upper-case ASCII letters.
func IsValidTag(tag string) bool {
	if len(tag) != 6 {
		return false
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] < 'A' || tag[i] > 'Z' {
			return false
		}
	}
	return true
}

// SplitSubsetTag splits a font name of the form "ABCDEF+Name" into the
// subset tag and the remaining name.  If the name has no valid subset tag,
// the tag is empty and the name is returned unchanged.
func SplitSubsetTag(name string) (tag, rest string) {
	tag, rest, found := strings.Cut(name, "+")
	if !found || !IsValidTag(tag) {
		return "", name
	}
	return tag, rest
}

// fontExtensions lists file name extensions which are removed when a font
// name is derived from a file name.
var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".cff": true,
	".pfa": true,
	".pfb": true,
	".t1":  true,
	".bin": true,
}

// CanonicalName returns the name of the reference font to use when
// classifying the glyphs of f.
//
// This is the PostScript name of the font, without subset tag.  If the font
// has no PostScript name and fileName is not empty, the name is taken from
// the file name instead: files dumped from PDF documents are often named
// after the font's BaseFont entry, in which case the part after the "+" is
// used.  The result is empty if no name can be found.
func CanonicalName(f Font, fileName string) string {
	_, name := SplitSubsetTag(f.PostScriptName())
	if name != "" || fileName == "" {
		return name
	}

	base := filepath.Base(fileName)
	if ext := filepath.Ext(base); fontExtensions[strings.ToLower(ext)] {
		base = strings.TrimSuffix(base, ext)
	}
	if _, rest, found := strings.Cut(base, "+"); found {
		return rest
	}
	return ""
}
