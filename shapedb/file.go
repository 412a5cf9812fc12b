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
	"bufio"
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"unicode/utf8"

	"seehuhn.de/go/glyphmatch/shape"
)

// The file format is
//
//	magic       "GMDB"
//	version     byte
//	numEntries  uvarint
//	entries     numEntries times:
//	    labelLen    uvarint
//	    label       labelLen bytes, as produced by the Codec
//	    numContours uvarint
//	    contours    numContours times:
//	        numPoints  uvarint
//	        points     numPoints times x, y as big-endian uint16
//	numPoints   uvarint
//	index       numPoints times, in increasing point order:
//	    x, y        big-endian uint16
//	    numRefs     uvarint
//	    refs        numRefs uvarints (entry indices)
//
// Contour points are stored in the sorted order of shape.Signature.
const (
	magic         = "GMDB"
	formatVersion = 1
)

// Codec converts labels to and from their binary representation.
type Codec[L any] interface {
	EncodeLabel(label L) ([]byte, error)
	DecodeLabel(data []byte) (L, error)
}

// StringCodec stores string labels as UTF-8 bytes.
type StringCodec struct{}

// EncodeLabel implements the [Codec] interface.
func (StringCodec) EncodeLabel(label string) ([]byte, error) {
	if !utf8.ValidString(label) {
		return nil, fmt.Errorf("label %q is not valid UTF-8", label)
	}
	return []byte(label), nil
}

// DecodeLabel implements the [Codec] interface.
func (StringCodec) DecodeLabel(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("label is not valid UTF-8")
	}
	return string(data), nil
}

// FormatError indicates that a database file is corrupt or was written by
// an incompatible version of this library.
type FormatError struct {
	Pos    int64 // byte offset where the problem was detected
	Reason string
	Err    error
}

func (err *FormatError) Error() string {
	msg := "invalid shape database: " + err.Reason
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg + " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// Encode writes the database to w.
func (db *DB[L]) Encode(w io.Writer, codec Codec[L]) error {
	buf := make([]byte, 0, 4096)
	buf = append(buf, magic...)
	buf = append(buf, formatVersion)

	buf = binary.AppendUvarint(buf, uint64(len(db.entries)))
	for i, entry := range db.entries {
		label, err := codec.EncodeLabel(entry.Label)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		buf = binary.AppendUvarint(buf, uint64(len(label)))
		buf = append(buf, label...)

		buf = binary.AppendUvarint(buf, uint64(len(entry.Contours)))
		for _, sig := range entry.Contours {
			buf = binary.AppendUvarint(buf, uint64(len(sig)))
			for _, p := range sig {
				buf = appendPoint(buf, p)
			}
		}
	}

	keys := slices.SortedFunc(maps.Keys(db.points), func(a, b shape.Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	buf = binary.AppendUvarint(buf, uint64(len(keys)))
	for _, p := range keys {
		refs := db.points[p]
		buf = appendPoint(buf, p)
		buf = binary.AppendUvarint(buf, uint64(len(refs)))
		for _, idx := range refs {
			buf = binary.AppendUvarint(buf, uint64(idx))
		}
	}

	_, err := w.Write(buf)
	return err
}

func appendPoint(buf []byte, p shape.Point) []byte {
	buf = binary.BigEndian.AppendUint16(buf, p.X)
	return binary.BigEndian.AppendUint16(buf, p.Y)
}

// Decode reads a database from r.
func Decode[L any](r io.Reader, codec Codec[L]) (*DB[L], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d := &decoder{data: data}

	if !bytes.HasPrefix(data, []byte(magic)) {
		return nil, d.fail("wrong magic number", nil)
	}
	d.pos = len(magic)
	version := d.readByte()
	if d.err == nil && version != formatVersion {
		return nil, d.fail("unsupported format version "+strconv.Itoa(int(version)), nil)
	}

	numEntries := d.count(1)
	db := &DB[L]{
		entries: make([]Entry[L], 0, numEntries),
		points:  make(map[shape.Point][]int),
	}
	for range numEntries {
		labelLen := d.count(1)
		labelData := d.readBytes(labelLen)
		if d.err != nil {
			break
		}
		label, err := codec.DecodeLabel(labelData)
		if err != nil {
			return nil, d.fail("invalid label", err)
		}

		numContours := d.count(1)
		contours := make([]shape.Signature, 0, numContours)
		for range numContours {
			numPoints := d.count(4)
			sig := make(shape.Signature, 0, numPoints)
			for range numPoints {
				sig = append(sig, d.point())
			}
			if d.err != nil {
				break
			}
			if !sig.IsSorted() {
				return nil, d.fail("contour points out of order", nil)
			}
			contours = append(contours, sig)
		}
		if d.err != nil {
			break
		}
		db.entries = append(db.entries, Entry[L]{Label: label, Contours: contours})
	}

	numKeys := d.count(5)
	for range numKeys {
		p := d.point()
		numRefs := d.count(1)
		if d.err != nil {
			break
		}
		if numRefs == 0 {
			return nil, d.fail("empty index list", nil)
		}
		if _, dup := db.points[p]; dup {
			return nil, d.fail("duplicate index key", nil)
		}
		refs := make([]int, 0, numRefs)
		for range numRefs {
			idx := d.uvarint()
			if d.err == nil && idx >= uint64(len(db.entries)) {
				return nil, d.fail("index refers to missing entry", nil)
			}
			refs = append(refs, int(idx))
		}
		db.points[p] = refs
	}

	if d.err != nil {
		return nil, d.err
	}
	if d.pos != len(d.data) {
		return nil, d.fail("unexpected data after end of database", nil)
	}
	return db, nil
}

type decoder struct {
	data []byte
	pos  int
	err  error
}

func (d *decoder) fail(reason string, err error) error {
	if d.err == nil {
		d.err = &FormatError{Pos: int64(d.pos), Reason: reason, Err: err}
	}
	return d.err
}

func (d *decoder) readByte() byte {
	if d.err != nil {
		return 0
	}
	if d.pos >= len(d.data) {
		d.fail("unexpected end of data", io.ErrUnexpectedEOF)
		return 0
	}
	b := d.data[d.pos]
	d.pos++
	return b
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	x, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		d.fail("malformed integer", io.ErrUnexpectedEOF)
		return 0
	}
	d.pos += n
	return x
}

// count reads a number of items, each of which occupies at least minSize
// bytes in the remaining input.  Counts which cannot possibly fit are
// rejected, so that corrupt files cannot cause huge allocations.
func (d *decoder) count(minSize int) int {
	x := d.uvarint()
	if d.err != nil {
		return 0
	}
	if x > uint64(len(d.data)-d.pos)/uint64(minSize) {
		d.fail("item count too large", nil)
		return 0
	}
	return int(x)
}

func (d *decoder) readBytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n > len(d.data)-d.pos {
		d.fail("unexpected end of data", io.ErrUnexpectedEOF)
		return nil
	}
	res := d.data[d.pos : d.pos+n]
	d.pos += n
	return res
}

func (d *decoder) point() shape.Point {
	buf := d.readBytes(4)
	if buf == nil {
		return shape.Point{}
	}
	return shape.Point{
		X: binary.BigEndian.Uint16(buf[0:2]),
		Y: binary.BigEndian.Uint16(buf[2:4]),
	}
}

// WriteFile writes the database to the named file.
// The data is first written to a temporary file in the same directory,
// which is then renamed, so that readers never see a partially written
// database.
func (db *DB[L]) WriteFile(fname string, codec Codec[L]) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(fname), "."+filepath.Base(fname)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	err = db.Encode(w, codec)
	if err != nil {
		return err
	}
	err = w.Flush()
	if err != nil {
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fname)
}

// ReadFile reads a database from the named file.
func ReadFile[L any](fname string, codec Codec[L]) (*DB[L], error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	db, err := Decode(bufio.NewReader(fd), codec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return db, nil
}
