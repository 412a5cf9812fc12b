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
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/internal/testfont"
	"seehuhn.de/go/glyphmatch/shape"
)

func TestParseTrueType(t *testing.T) {
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	ttf, ok := f.(*TrueType)
	if !ok {
		t.Fatalf("wrong font type %T", f)
	}
	if ttf.PostScriptName() == "" {
		t.Error("missing PostScript name")
	}

	cm := ttf.CMap()
	if cm == nil {
		t.Fatal("no cmap")
	}
	gid := cm.Lookup('O')
	if gid == 0 {
		t.Fatal("no glyph for 'O'")
	}
	o := ttf.Outline(gid)
	if len(o) != 2 {
		t.Errorf("'O' has %d contours, want 2", len(o))
	}

	space := ttf.Outline(cm.Lookup(' '))
	if !space.IsEmpty() {
		t.Errorf("space glyph has %d contours", len(space))
	}

	outOfRange := ttf.Outline(glyph.ID(ttf.NumGlyphs()))
	if !outOfRange.IsEmpty() {
		t.Error("glyph ID out of range has an outline")
	}
}

func TestParseCFF(t *testing.T) {
	buf := &bytes.Buffer{}
	err := testfont.CFF("Test-Regular", testfont.Glyphs()).Write(buf)
	if err != nil {
		t.Fatal(err)
	}

	f, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	cffFont, ok := f.(*CFF)
	if !ok {
		t.Fatalf("wrong font type %T", f)
	}
	if name := cffFont.PostScriptName(); name != "Test-Regular" {
		t.Errorf("PostScriptName() = %q", name)
	}

	names := cffFont.GlyphNames()
	want := []string{".notdef", "space", "A", "B", "C"}
	if d := cmp.Diff(want, names); d != "" {
		t.Errorf("glyph names (-want +got):\n%s", d)
	}

	sigs := cffFont.Outline(4).Signatures()
	wantSigs := []shape.Signature{
		shape.NewSignature(testfont.Square(0, 0, 700)),
		shape.NewSignature(testfont.Square(100, 100, 300)),
	}
	if d := cmp.Diff(wantSigs, sigs); d != "" {
		t.Errorf("outline of C (-want +got):\n%s", d)
	}
	if !cffFont.Outline(1).IsEmpty() {
		t.Error("space has an outline")
	}
}

func TestOpenType(t *testing.T) {
	info := testfont.OpenType("Test", testfont.Glyphs(), true, map[rune]glyph.ID{'A': 2})
	f, err := FromSfnt(info)
	if err != nil {
		t.Fatal(err)
	}
	otf, ok := f.(*OpenType)
	if !ok {
		t.Fatalf("wrong font type %T", f)
	}
	if otf.NumGlyphs() != 5 {
		t.Errorf("NumGlyphs() = %d, want 5", otf.NumGlyphs())
	}
	if names := otf.GlyphNames(); len(names) != 5 || names[3] != "B" {
		t.Errorf("unexpected glyph names %q", names)
	}
	cm := otf.CMap()
	if cm == nil || cm.Lookup('A') != 2 {
		t.Error("wrong cmap")
	}
	if len(otf.Outline(2)) != 1 {
		t.Error("wrong outline for A")
	}
}

func TestType1(t *testing.T) {
	psFont := testfont.Type1("Test-Type1", testfont.Glyphs())
	f := NewType1(psFont)

	want := []string{".notdef", "A", "B", "C", "space"}
	if d := cmp.Diff(want, f.GlyphNames()); d != "" {
		t.Errorf("glyph names (-want +got):\n%s", d)
	}
	if f.PostScriptName() != "Test-Type1" {
		t.Errorf("PostScriptName() = %q", f.PostScriptName())
	}

	sig := f.Outline(2).Signatures()
	wantSig := []shape.Signature{shape.NewSignature(testfont.Triangle(0, 0, 600))}
	if d := cmp.Diff(wantSig, sig); d != "" {
		t.Errorf("outline of B (-want +got):\n%s", d)
	}
	sig = f.Outline(3).Signatures()
	wantSig = []shape.Signature{
		shape.NewSignature(testfont.Square(0, 0, 700)),
		shape.NewSignature(testfont.Square(100, 100, 300)),
	}
	if d := cmp.Diff(wantSig, sig); d != "" {
		t.Errorf("outline of C (-want +got):\n%s", d)
	}
	if !f.Outline(4).IsEmpty() {
		t.Error("space has an outline")
	}
}

func TestParseUnknown(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("hello, world"), {0, 0, 0}} {
		_, err := Parse(data)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("%q: expected ErrUnknownFormat, got %v", data, err)
		}
	}
}

func TestSubsetTag(t *testing.T) {
	cases := []struct {
		in, tag, rest string
	}{
		{"ABCDEF+Times-Roman", "ABCDEF", "Times-Roman"},
		{"Times-Roman", "", "Times-Roman"},
		{"ABCDE+Times-Roman", "", "ABCDE+Times-Roman"},
		{"abcdef+Times-Roman", "", "abcdef+Times-Roman"},
		{"ABCDEF+", "ABCDEF", ""},
		{"", "", ""},
	}
	for _, test := range cases {
		tag, rest := SplitSubsetTag(test.in)
		if tag != test.tag || rest != test.rest {
			t.Errorf("%q: got %q, %q, want %q, %q", test.in, tag, rest, test.tag, test.rest)
		}
	}
}

type namedFont struct {
	Font
	name string
}

func (f namedFont) PostScriptName() string { return f.name }

func TestCanonicalName(t *testing.T) {
	cases := []struct {
		psName, fileName, want string
	}{
		{"Helvetica", "", "Helvetica"},
		{"XYZABC+Helvetica", "ignored+Name.ttf", "Helvetica"},
		{"", "/tmp/fonts/QWERTY+Garamond-Bold.ttf", "Garamond-Bold"},
		{"", "QWERTY+Garamond-Bold", "Garamond-Bold"},
		{"", "QWERTY+Garamond-Bold.data", "Garamond-Bold.data"},
		{"", "Garamond.otf", ""},
		{"", "", ""},
	}
	for _, test := range cases {
		got := CanonicalName(namedFont{name: test.psName}, test.fileName)
		if got != test.want {
			t.Errorf("%q/%q: got %q, want %q", test.psName, test.fileName, got, test.want)
		}
	}
}
