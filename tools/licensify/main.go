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

// Licensify adds the license header to all Go source files of the module
// which do not have one yet.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/glyphmatch/tools/internal/cli"
)

var (
	checkOnly = flag.Bool("check", false, "only list files without a header")
	verbosity = flag.Int("v", 1, "verbosity `level` (0-2)")
)

func main() {
	flag.Parse()
	log := cli.NewLogger(*verbosity)

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	missing, err := walk(root, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *checkOnly && missing > 0 {
		os.Exit(1)
	}
}

// walk visits all Go files below root.  Directories which the go tool
// ignores are skipped.
func walk(root string, log logrus.FieldLogger) (int, error) {
	missing := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.HasPrefix(body, []byte(header)) {
			return nil
		}
		missing++

		log := log.WithField("file", path)
		switch {
		case *checkOnly:
			log.Warn("no license header")
			return nil
		case !bytes.HasPrefix(body, []byte("package ")) && !bytes.HasPrefix(body, []byte("//go:build")):
			log.Warn("unexpected file start, not updated")
			return nil
		}

		log.Info("adding license header")
		return os.WriteFile(path, append([]byte(header), body...), 0o644)
	})
	return missing, err
}

const header = `// seehuhn.de/go/glyphmatch - identify glyphs by their outlines
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

`
