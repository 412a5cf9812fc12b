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

package classify

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/fontfile"
	"seehuhn.de/go/glyphmatch/internal/testfont"
	"seehuhn.de/go/glyphmatch/reference"
	"seehuhn.de/go/glyphmatch/shape"
)

type recorder struct {
	events []string
}

func (r *recorder) BeginGlyph(gid glyph.ID, o shape.Outline) {
	r.events = append(r.events, fmt.Sprintf("begin %d", gid))
}

func (r *recorder) EndGlyph(gid glyph.ID, text string, ok bool) {
	r.events = append(r.events, fmt.Sprintf("end %d %q %t", gid, text, ok))
}

func (r *recorder) Candidate(label string, hits int) {
	r.events = append(r.events, fmt.Sprintf("candidate %q %d", label, hits))
}

func (r *recorder) ContourCount(label string, stored, query int) {
	r.events = append(r.events, fmt.Sprintf("contours %q %d %d", label, stored, query))
}

func (r *recorder) ContourMismatch(label string, queryContour, storedContour, missing, total int) {}

func (r *recorder) Decision(label string, used []bool, accepted bool) {
	r.events = append(r.events, fmt.Sprintf("decision %q %t", label, accepted))
}

// sortSignatures compares lists of signatures as multisets.
var sortSignatures = cmpopts.SortSlices(func(a, b shape.Signature) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i].X != b[i].X:
			return a[i].X < b[i].X
		case a[i].Y != b[i].Y:
			return a[i].Y < b[i].Y
		}
	}
	return len(a) < len(b)
})

func TestSortSignatures(t *testing.T) {
	outer := shape.SignatureOf(shape.Point{X: 0, Y: 0}, shape.Point{X: 0, Y: 10})
	inner := shape.SignatureOf(shape.Point{X: 2, Y: 2}, shape.Point{X: 2, Y: 8})
	a := []shape.Signature{outer, inner}
	b := []shape.Signature{inner, outer}
	if d := cmp.Diff(a, b, sortSignatures); d != "" {
		t.Errorf("reordered contours differ:\n%s", d)
	}
	if cmp.Equal(a, []shape.Signature{outer, outer}, sortSignatures) {
		t.Error("different contours compare equal")
	}
}

func TestSelfClassification(t *testing.T) {
	f := &fontfile.CFF{Font: testfont.CFF("Test", testfont.Glyphs())}
	db, err := reference.Build(f, nil)
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	got := Glyphs(db, f, rec)
	want := map[glyph.ID]string{2: "A", 3: "B", 4: "C"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("labels (-want +got):\n%s", d)
	}

	// .notdef shares no points with any reference glyph, the space glyph
	// is blank
	wantEvents := []string{
		`begin 0`,
		`end 0 "" false`,
		`begin 2`,
		`candidate "A" 4`,
		`decision "A" true`,
		`end 2 "A" true`,
		`begin 3`,
		`candidate "B" 3`,
		`decision "B" true`,
		`end 3 "B" true`,
		`begin 4`,
		`candidate "C" 8`,
		`decision "C" true`,
		`end 4 "C" true`,
	}
	if d := cmp.Diff(wantEvents, rec.events); d != "" {
		t.Errorf("events (-want +got):\n%s", d)
	}
}

func TestNoMatch(t *testing.T) {
	ref := &fontfile.CFF{Font: testfont.CFF("Reference", testfont.Glyphs())}
	db, err := reference.Build(ref, nil)
	if err != nil {
		t.Fatal(err)
	}

	// "A" and "B" are drawn differently, "C" is missing its inner contour
	glyphs := testfont.Glyphs()
	glyphs[2].Contours[0] = testfont.Square(0, 0, 501)
	glyphs[3].Contours[0] = testfont.Triangle(1, 0, 600)
	glyphs[4].Contours = glyphs[4].Contours[:1]
	target := &fontfile.CFF{Font: testfont.CFF("Target", glyphs)}

	rec := &recorder{}
	got := Glyphs(db, target, rec)
	if len(got) != 0 {
		t.Errorf("unexpected labels %v", got)
	}

	// the outer square of "C" is found, but the contour count differs
	found := false
	for _, e := range rec.events {
		if e == `contours "C" 2 1` {
			found = true
		}
	}
	if !found {
		t.Errorf("contour count mismatch not reported: %q", rec.events)
	}
}

func TestGoRegular(t *testing.T) {
	f, err := fontfile.FromSfnt(testfont.GoRegular())
	if err != nil {
		t.Fatal(err)
	}
	ttf := f.(*fontfile.TrueType)
	db, err := reference.Build(f, nil)
	if err != nil {
		t.Fatal(err)
	}

	got := Glyphs(db, f, nil)

	gidA := ttf.CMap().Lookup('A')
	if got[gidA] != "A" {
		t.Errorf("glyph %d: got %q, want \"A\"", gidA, got[gidA])
	}

	// Different glyphs may have identical outlines, possibly with the
	// contours in a different order, so a label may point
	// to a glyph other than the one being classified.  In this case the
	// contours must agree.
	cmap := ttf.CMap()
	for gid, text := range got {
		rr := []rune(text)
		if len(rr) != 1 {
			t.Errorf("glyph %d: unexpected label %q", gid, text)
			continue
		}
		other := cmap.Lookup(rr[0])
		if other == gid {
			continue
		}
		a := f.Outline(gid).Signatures()
		b := f.Outline(other).Signatures()
		if d := cmp.Diff(a, b, sortSignatures); d != "" {
			t.Errorf("glyph %d labelled %q but outlines differ:\n%s", gid, text, d)
		}
	}
}
