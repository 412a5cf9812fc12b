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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/fontfile"
	"seehuhn.de/go/glyphmatch/internal/testfont"
	"seehuhn.de/go/glyphmatch/shape"
	"seehuhn.de/go/glyphmatch/shapedb"
)

func TestGlyphText(t *testing.T) {
	cases := []struct {
		name string
		text string
		ok   bool
	}{
		{"A", "A", true},
		{"space", " ", true},
		{"Lcommaaccent", "Ļ", true},
		{"uni20AC", "€", true},
		{"uni20ac", "€", true}, // lower case hex digits
		{"u1F600", "\U0001F600", true},
		{"uniD800", "", false}, // surrogate
		{"uni", "", false},
		{"unicorn", "", false},
		{"foo", "", false},
	}
	for _, c := range cases {
		text, ok := GlyphText(c.name)
		if text != c.text || ok != c.ok {
			t.Errorf("%q: got %q, %t, want %q, %t", c.name, text, ok, c.text, c.ok)
		}
	}
}

func TestLabelsTrueType(t *testing.T) {
	f, err := fontfile.FromSfnt(testfont.GoRegular())
	if err != nil {
		t.Fatal(err)
	}
	ttf := f.(*fontfile.TrueType)
	labels, err := Labels(f, nil)
	if err != nil {
		t.Fatal(err)
	}

	gidA := ttf.CMap().Lookup('A')
	if gidA == 0 {
		t.Fatal("'A' not mapped")
	}
	found := false
	for _, a := range labels {
		if a.Text == "A" {
			found = a.GID == gidA
		}
	}
	if !found {
		t.Errorf("'A' is not labelled with glyph %d", gidA)
	}
}

func TestLabelsPriority(t *testing.T) {
	text := map[rune]glyph.ID{'x': 2, 'y': 3}

	// glyph names take precedence over the character map
	withNames, _ := fontfile.FromSfnt(testfont.OpenType("Test", testfont.Glyphs(), true, text))
	labels, err := Labels(withNames, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Assignment{{1, " "}, {2, "A"}, {3, "B"}, {4, "C"}}
	if d := cmp.Diff(want, labels); d != "" {
		t.Errorf("labels from names (-want +got):\n%s", d)
	}

	// without glyph names, the character map is used
	noNames, _ := fontfile.FromSfnt(testfont.OpenType("Test", testfont.Glyphs(), false, text))
	labels, err = Labels(noNames, nil)
	if err != nil {
		t.Fatal(err)
	}
	want = []Assignment{{2, "x"}, {3, "y"}}
	if d := cmp.Diff(want, labels); d != "" {
		t.Errorf("labels from cmap (-want +got):\n%s", d)
	}

	// neither names nor cmap
	neither, _ := fontfile.FromSfnt(testfont.OpenType("Test", testfont.Glyphs(), false, nil))
	_, err = Labels(neither, nil)
	if !errors.Is(err, ErrNoMapping) {
		t.Errorf("expected ErrNoMapping, got %v", err)
	}
	if !IsSkip(err) {
		t.Error("ErrNoMapping is not a skip")
	}
}

func TestUnresolvedNames(t *testing.T) {
	glyphs := []testfont.Glyph{
		{Name: ".notdef"},
		{Name: "foo", Contours: [][]vec.Vec2{testfont.Square(0, 0, 10)}},
		{Name: "uni0041", Contours: [][]vec.Vec2{testfont.Square(0, 0, 20)}},
	}
	f := &fontfile.CFF{Font: testfont.CFF("Test", glyphs)}

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	labels, err := Labels(f, log)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]Assignment{{2, "A"}}, labels); d != "" {
		t.Errorf("labels (-want +got):\n%s", d)
	}

	var unresolved []string
	for _, entry := range hook.AllEntries() {
		if name, ok := entry.Data["glyph"]; ok {
			unresolved = append(unresolved, name.(string))
		}
	}
	if d := cmp.Diff([]string{"foo"}, unresolved); d != "" {
		t.Errorf("unresolved names (-want +got):\n%s", d)
	}
}

func TestBuild(t *testing.T) {
	f := fontfile.NewType1(testfont.Type1("Test", testfont.Glyphs()))
	db, err := Build(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	// .notdef is not included
	if db.Len() != 4 {
		t.Errorf("Len() = %d, want 4", db.Len())
	}

	for _, g := range testfont.Glyphs() {
		if len(g.Contours) == 0 || g.Name == ".notdef" {
			continue
		}
		var o shape.Outline
		for _, c := range g.Contours {
			o = append(o, shape.Polygon(c...)...)
		}
		text, ok := db.Query(o, nil)
		want, _ := GlyphText(g.Name)
		if !ok || text != want {
			t.Errorf("%s: got %q, %t", g.Name, text, ok)
		}
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()

	f := &fontfile.CFF{Font: testfont.CFF("Test-Bold", testfont.Glyphs())}
	name, err := Extract(dir, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Test-Bold" {
		t.Errorf("name = %q", name)
	}
	db, err := shapedb.ReadFile[string](filepath.Join(dir, name), shapedb.StringCodec{})
	if err != nil {
		t.Fatal(err)
	}
	if db.Len() != 4 {
		t.Errorf("Len() = %d, want 4", db.Len())
	}

	// subset tags are removed
	f = &fontfile.CFF{Font: testfont.CFF("ABCDEF+Test-Italic", testfont.Glyphs())}
	name, err = Extract(dir, f, nil)
	if err != nil || name != "Test-Italic" {
		t.Errorf("got %q, %v", name, err)
	}

	// fonts without a name are skipped
	f = &fontfile.CFF{Font: testfont.CFF("", testfont.Glyphs())}
	_, err = Extract(dir, f, nil)
	if !errors.Is(err, ErrNoName) {
		t.Errorf("expected ErrNoName, got %v", err)
	}
	if !IsSkip(err) {
		t.Error("ErrNoName is not a skip")
	}

	// a subset tag alone is not a name
	f = &fontfile.CFF{Font: testfont.CFF("QWERTY+", testfont.Glyphs())}
	_, err = Extract(dir, f, nil)
	if !errors.Is(err, ErrNoName) {
		t.Errorf("expected ErrNoName, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	if d := cmp.Diff([]string{"Test-Bold", "Test-Italic"}, files); d != "" {
		t.Errorf("files (-want +got):\n%s", d)
	}
}

func TestName(t *testing.T) {
	cases := []struct {
		psName, want string
	}{
		{"Times-Roman", "Times-Roman"},
		{"ABCDEF+Times-Roman", "Times-Roman"},
		{"abcdef+Times-Roman", "abcdef+Times-Roman"},
		{"", ""},
		{"Times Roman", ""},
	}
	for _, c := range cases {
		f := &fontfile.CFF{Font: testfont.CFF(c.psName, nil)}
		if got := Name(f); got != c.want {
			t.Errorf("%q: got %q, want %q", c.psName, got, c.want)
		}
	}
}

func TestIsValidName(t *testing.T) {
	for _, name := range []string{"Times-Roman", "Minion_Pro", "A+B"} {
		if !IsValidName(name) {
			t.Errorf("%q rejected", name)
		}
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "a b", "Ünicode"} {
		if IsValidName(name) {
			t.Errorf("%q accepted", name)
		}
	}
}
