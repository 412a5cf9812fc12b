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

// Glyphmatch-build creates the shape databases for a collection of
// reference fonts.
package main

import (
	"flag"
	"fmt"
	"os"

	"seehuhn.de/go/glyphmatch/fontdb"
	"seehuhn.de/go/glyphmatch/tools/internal/buildinfo"
	"seehuhn.de/go/glyphmatch/tools/internal/cli"
	"seehuhn.de/go/glyphmatch/tools/internal/profile"
)

var (
	dbDir      = flag.String("db", cli.DefaultDB(), "database `directory`")
	verbosity  = flag.Int("v", 0, "verbosity `level` (0-2)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyphmatch-build \u2014 create shape databases from reference fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyphmatch-build"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyphmatch-build [options] <source>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source     a font file, or a directory of font files\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThe default database directory can be set using $GLYPHMATCH_DB.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glyphmatch-build /usr/share/fonts/truetype/dejavu\n")
		fmt.Fprintf(os.Stderr, "  glyphmatch-build -db ~/glyphdb -v 1 Times-Roman.pfb\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
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

	var files []string
	for _, src := range flag.Args() {
		fi, err := os.Stat(src)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			files = append(files, src)
			continue
		}
		dirFiles, err := fontdb.SourceFiles(src)
		if err != nil {
			return err
		}
		files = append(files, dirFiles...)
	}

	db := fontdb.New(*dbDir, &fontdb.Options{Logger: log})
	stats, err := db.AddFiles(files...)
	for _, name := range stats.Fonts {
		fmt.Println(name)
	}
	log.WithField("written", len(stats.Fonts)).
		WithField("skipped", stats.Skipped).
		WithField("failed", stats.Failed).
		Info("done")
	return err
}
