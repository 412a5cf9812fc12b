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

package shapedb

import (
	"cmp"
	"slices"

	"seehuhn.de/go/glyphmatch/shape"
)

// Entry is a labelled glyph outline stored in a database.
type Entry[L any] struct {
	Label L

	// Contours holds the signatures of the outline's contours,
	// in the order in which the contours appeared in the outline.
	Contours []shape.Signature
}

// DB is a database of glyph outline fingerprints.
// Labels can be of any type; [StringCodec] allows to store databases with
// string labels in files.
type DB[L any] struct {
	entries []Entry[L]
	points  map[shape.Point][]int
}

// New allocates a new, empty database.
func New[L any]() *DB[L] {
	return &DB[L]{
		points: make(map[shape.Point][]int),
	}
}

// Len returns the number of entries in the database.
func (db *DB[L]) Len() int {
	return len(db.entries)
}

// Entry returns the i-th entry of the database.
// The returned value shares memory with the database and must not be
// modified.
func (db *DB[L]) Entry(i int) Entry[L] {
	return db.entries[i]
}

// Add stores an outline under the given label.
//
// No check for duplicates is performed.  If the same outline is added with
// different labels, queries return the label of the entry which was added
// first.
func (db *DB[L]) Add(o shape.Outline, label L) {
	idx := len(db.entries)
	for _, p := range o.PointSet() {
		db.points[p] = append(db.points[p], idx)
	}
	db.entries = append(db.entries, Entry[L]{
		Label:    label,
		Contours: o.Signatures(),
	})
}

// Candidate is an entry which shares points with a query outline.
type Candidate struct {
	Index int // index of the database entry
	Hits  int // number of points the entry shares with the query
}

// Candidates returns the entries which share at least one point with o.
// The result is sorted by decreasing number of shared points; entries with
// the same number of shared points are given in the order in which they
// were added to the database.
func (db *DB[L]) Candidates(o shape.Outline) []Candidate {
	hits := make(map[int]int)
	for _, p := range o.PointSet() {
		for _, idx := range db.points[p] {
			hits[idx]++
		}
	}

	res := make([]Candidate, 0, len(hits))
	for idx, n := range hits {
		res = append(res, Candidate{Index: idx, Hits: n})
	}
	slices.SortFunc(res, func(a, b Candidate) int {
		if c := cmp.Compare(b.Hits, a.Hits); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return res
}

// Query looks up the label of an outline.
//
// If obs is not nil, the steps of the search are reported to obs.
// The second return value is false if no entry matches the outline.
func (db *DB[L]) Query(o shape.Outline, obs Observer[L]) (L, bool) {
	var query []shape.Signature
	for _, cand := range db.Candidates(o) {
		entry := &db.entries[cand.Index]
		if obs != nil {
			obs.Candidate(entry.Label, cand.Hits)
		}

		if len(entry.Contours) != len(o) {
			if obs != nil {
				obs.ContourCount(entry.Label, len(entry.Contours), len(o))
			}
			continue
		}

		if query == nil {
			query = o.Signatures()
		}
		used := db.assign(entry, query, obs)

		accepted := !slices.Contains(used, false)
		if obs != nil {
			obs.Decision(entry.Label, used, accepted)
		}
		if accepted {
			return entry.Label, true
		}
	}

	var zero L
	return zero, false
}

// assign pairs the query contours with the contours of entry.
// Each query contour takes the first unused stored contour with an equal
// signature.  The returned slice records which stored contours were used.
func (db *DB[L]) assign(entry *Entry[L], query []shape.Signature, obs Observer[L]) []bool {
	used := make([]bool, len(entry.Contours))
	for i, q := range query {
		for j, stored := range entry.Contours {
			if used[j] {
				continue
			}
			if q.Equal(stored) {
				used[j] = true
				break
			}
			if obs != nil {
				obs.ContourMismatch(entry.Label, i, j, q.Difference(stored), len(q))
			}
		}
	}
	return used
}
