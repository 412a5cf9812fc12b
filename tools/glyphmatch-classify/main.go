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

// Glyphmatch-classify recovers the Unicode text of the glyphs in a font,
// by comparing the glyph outlines to those of a known reference font.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/glyphmatch/fontdb"
	"seehuhn.de/go/glyphmatch/fontfile"
	"seehuhn.de/go/glyphmatch/tools/internal/buildinfo"
	"seehuhn.de/go/glyphmatch/tools/internal/cli"
	"seehuhn.de/go/glyphmatch/tools/internal/profile"
)

var (
	dbDir      = flag.String("db", cli.DefaultDB(), "database `directory`")
	nameArg    = flag.String("name", "", "use the database for the reference font `name`")
	reportArg  = flag.String("report", "", "write an HTML report to `file`")
	verbosity  = flag.Int("v", 0, "verbosity `level` (0-2)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyphmatch-classify \u2014 find the Unicode text for the glyphs of a font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyphmatch-classify"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyphmatch-classify [options] <font>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font       font file (TrueType, OpenType, CFF or Type 1)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThe reference font is found using the PostScript name of the font,\n")
		fmt.Fprintf(os.Stderr, "or the file name for subset fonts without a name.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glyphmatch-classify ABCDEF+Times-Roman.cff\n")
		fmt.Fprintf(os.Stderr, "  glyphmatch-classify -name NimbusRoman-Regular -report out.html font.cff\n")
	}
	flag.Parse()

	if flag.NArg() < 1 || *reportArg != "" && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := cli.NewLogger(*verbosity)

	prof, err := profile.Start(*cpuprofile, *memprofile, log)
	if err != nil {
		return err
	}
	defer prof.Stop()

	db := fontdb.New(*dbDir, &fontdb.Options{Logger: log})
	for _, fname := range flag.Args() {
		err := classifyFont(db, fname, log)
		if err != nil {
			return err
		}
	}
	return nil
}

func classifyFont(db *fontdb.DB, fname string, log logrus.FieldLogger) error {
	f, err := fontfile.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	name := *nameArg
	if name == "" {
		name = fontfile.CanonicalName(f, fname)
	}
	if name == "" {
		return fmt.Errorf("%s: cannot determine the font name, use -name", fname)
	}
	log = log.WithField("font", name)

	if *reportArg != "" {
		html, err := db.Report(name, f)
		if err != nil {
			return err
		}
		if html == nil {
			return fmt.Errorf("%s: no database for %q", fname, name)
		}
		err = os.WriteFile(*reportArg, html, 0o644)
		if err != nil {
			return err
		}
		log.WithField("file", *reportArg).Info("report written")
	}

	labels, err := db.Classify(name, f)
	if err != nil {
		return err
	}
	if labels == nil {
		return fmt.Errorf("%s: no database for %q", fname, name)
	}

	if flag.NArg() > 1 {
		fmt.Printf("# %s\n", fname)
	}
	for _, gid := range slices.Sorted(maps.Keys(labels)) {
		text := labels[gid]
		fmt.Printf("%5d  %-12s %q\n", gid, codePoints(text), text)
	}
	log.WithField("classified", len(labels)).
		WithField("glyphs", f.NumGlyphs()).
		Info("done")
	return nil
}

func codePoints(text string) string {
	var res []byte
	for i, r := range text {
		if i > 0 {
			res = append(res, ' ')
		}
		res = fmt.Appendf(res, "U+%04X", r)
	}
	return string(res)
}
