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
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/glyphmatch/fontfile"
	"seehuhn.de/go/glyphmatch/shapedb"
)

// Build constructs a shape database for a reference font.
// The labels of the database entries are the texts found by [Labels].
func Build(f fontfile.Font, log logrus.FieldLogger) (*shapedb.DB[string], error) {
	if log == nil {
		log = discardLogger()
	}

	labels, err := Labels(f, log)
	if err != nil {
		return nil, err
	}

	db := shapedb.New[string]()
	for _, a := range labels {
		db.Add(f.Outline(a.GID), a.Text)
	}
	log.WithField("entries", db.Len()).Debug("database built")
	return db, nil
}

// Name returns the name under which the database for a reference font is
// stored: the PostScript name of the font, without subset tag.
// The result is empty if the font has no PostScript name, or if the name
// cannot be used as a file name.
func Name(f fontfile.Font) string {
	_, name := fontfile.SplitSubsetTag(f.PostScriptName())
	if !IsValidName(name) {
		return ""
	}
	return name
}

// Extract builds the shape database for a reference font and stores it in
// the directory dbDir, in a file named by [Name].
//
// Fonts without a usable PostScript name or without glyph names and
// character map are rejected with [ErrNoName] and [ErrNoMapping],
// respectively.  On success, the name of the database is returned.
func Extract(dbDir string, f fontfile.Font, log logrus.FieldLogger) (string, error) {
	if log == nil {
		log = discardLogger()
	}

	name := Name(f)
	if name == "" {
		return "", ErrNoName
	}
	log = log.WithField("font", name)

	db, err := Build(f, log)
	if err != nil {
		return name, err
	}

	err = db.WriteFile(filepath.Join(dbDir, name), shapedb.StringCodec{})
	if err != nil {
		return name, fmt.Errorf("%s: %w", name, err)
	}
	log.WithField("entries", db.Len()).Info("database written")
	return name, nil
}

// IsValidName reports whether name can be used as the file name of a
// database.  PostScript names consist of printable ASCII characters;
// names containing path separators, and the names "." and "..", are not
// allowed.
func IsValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= ' ' || c >= 0x7f || c == '/' || c == '\\' {
			return false
		}
	}
	return true
}
