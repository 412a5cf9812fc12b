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

// Package report writes HTML documents which show how the glyphs of a font
// were classified.
//
// A [Report] is passed as the observer to [classify.Glyphs].  Afterwards,
// [Report.WriteHTML] renders a preview of every glyph outline together with
// the database candidates which were considered for the glyph and the
// reason why each candidate was accepted or rejected.
package report

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/runenames"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/classify"
	"seehuhn.de/go/glyphmatch/shape"
)

// Report collects the trace of a glyph classification.
type Report struct {
	// Title is used as the title of the HTML document.
	Title string

	glyphs []*glyphTrace
}

var _ classify.Observer = (*Report)(nil)

type glyphTrace struct {
	GID        glyph.ID
	Outline    shape.Outline
	Candidates []*candidateTrace
	Text       string
	OK         bool
}

type candidateTrace struct {
	Label      string
	Hits       int
	Stored     int // number of stored contours, if different from the query
	Query      int // number of query contours, if different from the database
	Mismatches []mismatch
	Used       []bool
	Accepted   bool
}

type mismatch struct {
	QueryContour  int
	StoredContour int
	Missing       int
	Total         int
}

// New allocates a new, empty report.
func New() *Report {
	return &Report{Title: "Glyph Classification"}
}

// NumGlyphs returns the number of non-blank glyphs seen so far.
func (r *Report) NumGlyphs() int {
	return len(r.glyphs)
}

// NumClassified returns the number of glyphs which were labelled.
func (r *Report) NumClassified() int {
	n := 0
	for _, g := range r.glyphs {
		if g.OK {
			n++
		}
	}
	return n
}

// BeginGlyph implements the [classify.Observer] interface.
func (r *Report) BeginGlyph(gid glyph.ID, o shape.Outline) {
	r.glyphs = append(r.glyphs, &glyphTrace{GID: gid, Outline: o})
}

// EndGlyph implements the [classify.Observer] interface.
func (r *Report) EndGlyph(gid glyph.ID, text string, ok bool) {
	g := r.current()
	if g == nil || g.GID != gid {
		return
	}
	g.Text = text
	g.OK = ok
}

// Candidate implements the [shapedb.Observer] interface.
func (r *Report) Candidate(label string, hits int) {
	g := r.current()
	if g == nil {
		return
	}
	g.Candidates = append(g.Candidates, &candidateTrace{Label: label, Hits: hits})
}

// ContourCount implements the [shapedb.Observer] interface.
func (r *Report) ContourCount(label string, stored, query int) {
	c := r.candidate(label)
	if c == nil {
		return
	}
	c.Stored = stored
	c.Query = query
}

// ContourMismatch implements the [shapedb.Observer] interface.
func (r *Report) ContourMismatch(label string, queryContour, storedContour, missing, total int) {
	c := r.candidate(label)
	if c == nil {
		return
	}
	c.Mismatches = append(c.Mismatches, mismatch{
		QueryContour:  queryContour,
		StoredContour: storedContour,
		Missing:       missing,
		Total:         total,
	})
}

// Decision implements the [shapedb.Observer] interface.
func (r *Report) Decision(label string, used []bool, accepted bool) {
	c := r.candidate(label)
	if c == nil {
		return
	}
	c.Used = append([]bool(nil), used...)
	c.Accepted = accepted
}

func (r *Report) current() *glyphTrace {
	if len(r.glyphs) == 0 {
		return nil
	}
	return r.glyphs[len(r.glyphs)-1]
}

func (r *Report) candidate(label string) *candidateTrace {
	g := r.current()
	if g == nil || len(g.Candidates) == 0 {
		return nil
	}
	c := g.Candidates[len(g.Candidates)-1]
	if c.Label != label {
		return nil
	}
	return c
}

// WriteHTML writes the report as a self-contained HTML document.
func (r *Report) WriteHTML(w io.Writer) error {
	data := struct {
		Title      string
		Glyphs     []*glyphTrace
		Total      int
		Classified int
	}{
		Title:      r.Title,
		Glyphs:     r.glyphs,
		Total:      r.NumGlyphs(),
		Classified: r.NumClassified(),
	}
	return reportTmpl.Execute(w, data)
}

// viewBox returns the SVG view box for an outline drawn with the y-axis
// pointing up.
func viewBox(o shape.Outline) string {
	bbox := o.BBox()
	width := bbox.URx - bbox.LLx
	height := bbox.URy - bbox.LLy
	margin := math.Max(math.Max(width, height)*0.05, 1)
	return strings.Join([]string{
		formatNum(bbox.LLx - margin),
		formatNum(-bbox.URy - margin),
		formatNum(width + 2*margin),
		formatNum(height + 2*margin),
	}, " ")
}

func formatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

type runeInfo struct {
	Code string
	Name string
}

// describe lists the code points of a label, with their Unicode names.
func describe(text string) []runeInfo {
	var res []runeInfo
	for _, r := range text {
		name := runenames.Name(r)
		if name == "" {
			name = "unnamed character"
		}
		res = append(res, runeInfo{Code: fmt.Sprintf("U+%04X", r), Name: name})
	}
	return res
}

func countUsed(used []bool) int {
	n := 0
	for _, u := range used {
		if u {
			n++
		}
	}
	return n
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"viewBox":   viewBox,
	"describe":  describe,
	"countUsed": countUsed,
	"inc":       func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
.glyph { display: flex; gap: 1em; border-top: 1px solid #ccc; padding: 0.5em 0; }
.glyph svg { width: 100px; height: 100px; flex: none; background: #f8f8f8; }
.glyph.ok svg { background: #efe; }
.accepted { color: #070; }
.rejected { color: #a00; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Classified}} of {{.Total}} glyphs classified.</p>
{{range .Glyphs}}<div class="glyph{{if .OK}} ok{{end}}" id="glyph{{.GID}}">
<svg xmlns="http://www.w3.org/2000/svg" viewBox="{{viewBox .Outline}}">
<path d="{{.Outline.SVGPath}}" transform="scale(1,-1)" fill="#000" fill-rule="nonzero"/>
</svg>
<div>
<h2>glyph {{.GID}}</h2>
{{if .OK}}<p class="accepted">{{range describe .Text}}{{.Code}} {{.Name}}<br>
{{end}}</p>
{{else}}<p class="rejected">not classified</p>
{{end}}{{if .Candidates}}<ol>
{{range .Candidates}}<li>{{printf "%q" .Label}}: {{.Hits}} points shared,
{{if .Stored}}contour count {{.Stored}} (glyph has {{.Query}})
<span class="rejected">rejected</span>
{{else}}{{range .Mismatches}}query contour {{inc .QueryContour}} vs. stored contour {{inc .StoredContour}}: {{.Missing}} of {{.Total}} points missing;
{{end}}{{countUsed .Used}} of {{len .Used}} contours matched,
{{if .Accepted}}<span class="accepted">accepted</span>{{else}}<span class="rejected">rejected</span>{{end}}
{{end}}</li>
{{end}}</ol>
{{else}}<p>no candidates</p>
{{end}}</div>
</div>
{{end}}</body>
</html>
`))
