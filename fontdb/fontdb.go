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

// Package fontdb manages a directory of shape databases, one for each
// reference font.
//
// Databases are created from reference font files using [DB.BuildAll] or
// [DB.Add].  The file for each font is named after the PostScript name of
// the font, without subset tag.  [DB.Lookup] loads databases on demand and
// keeps them in memory for the lifetime of the [DB].  Files which are
// changed on disk after a font has been looked up are not reloaded.
//
// All methods of [DB] are safe for concurrent use.
package fontdb

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphmatch/classify"
	"seehuhn.de/go/glyphmatch/fontfile"
	"seehuhn.de/go/glyphmatch/reference"
	"seehuhn.de/go/glyphmatch/report"
	"seehuhn.de/go/glyphmatch/shapedb"
)

// ErrInvalidName is returned by [DB.Lookup] for names which cannot be
// used as file names inside the database directory.
var ErrInvalidName = errors.New("invalid font name")

// Options control the behaviour of a [DB].
type Options struct {
	// Logger receives diagnostic messages.  If this is nil, messages
	// are discarded.
	Logger logrus.FieldLogger
}

// DB is a directory of shape databases, together with a cache of the
// databases loaded so far.
type DB struct {
	dir string
	log logrus.FieldLogger

	mu    sync.RWMutex
	cache map[string]*shapedb.DB[string] // nil values record missing files
}

// New returns a DB for the database files in dir.
// The directory is created when the first database is written.
func New(dir string, opt *Options) *DB {
	if opt == nil {
		opt = &Options{}
	}
	log := opt.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &DB{
		dir:   dir,
		log:   log,
		cache: make(map[string]*shapedb.DB[string]),
	}
}

// Dir returns the database directory.
func (db *DB) Dir() string {
	return db.dir
}

// ErrDuplicate is returned when a reference font has the same name as a
// font processed earlier in the same build.  Subset fonts never replace
// the database of a complete font.
var ErrDuplicate = errors.New("duplicate font name")

// Stats summarizes a run of [DB.BuildAll] or [DB.AddFiles].
type Stats struct {
	// Fonts lists the names of the databases written.
	Fonts []string

	// Skipped is the number of files which were not used, because they
	// are not font files, because the font has no name or no information
	// about the meaning of the glyphs, or because a font with the same
	// name was already processed.
	Skipped int

	// Failed is the number of files which could not be processed.
	Failed int
}

// SourceFiles lists the regular files in dir, in sorted order.
// Subdirectories are not searched.
func SourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			res = append(res, filepath.Join(dir, entry.Name()))
		}
	}
	return res, nil
}

// BuildAll creates a database for every font file in srcDir.
// Subdirectories are not searched.  See [DB.AddFiles] for details.
func (db *DB) BuildAll(srcDir string) (*Stats, error) {
	files, err := SourceFiles(srcDir)
	if err != nil {
		return nil, err
	}
	return db.AddFiles(files...)
}

// AddFiles creates a database for each of the given font files.
//
// Files which cannot be used as reference fonts are counted in
// Stats.Skipped.  If two files give fonts with the same name, the first
// one is kept, unless it is a subset font and the later one is not.
// If any file fails to be processed, the remaining files are still
// processed and the returned error lists all failures.
func (db *DB) AddFiles(files ...string) (*Stats, error) {
	stats := &Stats{}
	written := make(map[string]bool) // name -> written from a subset font
	var errs []error
	for _, fname := range files {
		log := db.log.WithField("file", fname)

		name, err := db.add(fname, written, log)
		switch {
		case err == nil:
			if !slices.Contains(stats.Fonts, name) {
				stats.Fonts = append(stats.Fonts, name)
			}
		case errors.Is(err, ErrDuplicate):
			log.WithField("font", name).Warn("duplicate font name, not replaced")
			stats.Skipped++
		case reference.IsSkip(err) || errors.Is(err, fontfile.ErrUnknownFormat):
			log.WithError(err).Info("skipped")
			stats.Skipped++
		default:
			log.WithError(err).Warn("failed")
			stats.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", fname, err))
		}
	}
	return stats, errors.Join(errs...)
}

// Add creates the database for a single reference font file.
// The return value is the name of the new database.
// An existing database for the same font is replaced.
func (db *DB) Add(fontFile string) (string, error) {
	return db.add(fontFile, make(map[string]bool), db.log.WithField("file", fontFile))
}

func (db *DB) add(fontFile string, written map[string]bool, log logrus.FieldLogger) (string, error) {
	f, err := fontfile.ReadFile(fontFile)
	if err != nil {
		return "", err
	}

	name := reference.Name(f)
	if name == "" {
		return "", reference.ErrNoName
	}
	tag, _ := fontfile.SplitSubsetTag(f.PostScriptName())
	isSubset := tag != ""
	if prevSubset, seen := written[name]; seen && (!prevSubset || isSubset) {
		return name, ErrDuplicate
	}

	err = os.MkdirAll(db.dir, 0o755)
	if err != nil {
		return "", err
	}
	name, err = reference.Extract(db.dir, f, log)
	if err != nil {
		return name, err
	}
	written[name] = isSubset
	return name, nil
}

// Lookup returns the database for the font with the given name.
// If no database exists for the font, nil is returned without an error.
// Anything other than a regular file in the database directory counts as
// no database.
//
// Databases are loaded on first use and then kept in memory.  The returned
// database is shared between all callers and must not be modified.
func (db *DB) Lookup(name string) (*shapedb.DB[string], error) {
	if !reference.IsValidName(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	db.mu.RLock()
	res, ok := db.cache[name]
	db.mu.RUnlock()
	if ok {
		return res, nil
	}

	res, err := db.load(name)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if prev, ok := db.cache[name]; ok {
		return prev, nil
	}
	db.cache[name] = res
	return res, nil
}

// load reads the database file for a font.  A missing file gives nil
// without an error.
func (db *DB) load(name string) (*shapedb.DB[string], error) {
	fname := filepath.Join(db.dir, name)
	fi, err := os.Stat(fname)
	switch {
	case errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.Mode().IsRegular()):
		db.log.WithField("font", name).Debug("no database")
		return nil, nil
	case err != nil:
		return nil, err
	}
	res, err := shapedb.ReadFile[string](fname, shapedb.StringCodec{})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return res, err
}

// Classify labels the glyphs of f, using the database for the reference
// font with the given name.
// If no database exists for the font, nil is returned without an error.
func (db *DB) Classify(name string, f classify.Font) (map[glyph.ID]string, error) {
	sdb, err := db.Lookup(name)
	if sdb == nil {
		return nil, err
	}
	return classify.Glyphs(sdb, f, nil), nil
}

// Report classifies the glyphs of f like [DB.Classify] does, and returns
// an HTML document which shows how each glyph was classified.
// If no database exists for the font, nil is returned without an error.
func (db *DB) Report(name string, f classify.Font) ([]byte, error) {
	sdb, err := db.Lookup(name)
	if sdb == nil {
		return nil, err
	}

	r := report.New()
	r.Title = name
	classify.Glyphs(sdb, f, r)

	buf := &bytes.Buffer{}
	err = r.WriteHTML(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Cached returns the names of all fonts in the cache, in sorted order.
// This includes names for which no database file exists.
func (db *DB) Cached() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return slices.Sorted(maps.Keys(db.cache))
}
