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

// Package cli holds the settings shared by the glyphmatch command line
// tools.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Environment variable which names the default database directory.
const dbEnv = "GLYPHMATCH_DB"

// NewLogger returns a logger which writes to stderr.
// Verbosity 0 shows warnings and errors, 1 adds informational messages,
// and 2 or more enables debug output.
// Colours are used only if stderr is a terminal.
func NewLogger(verbosity int) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !isTTY,
		DisableTimestamp: true,
	})

	switch {
	case verbosity >= 2:
		log.SetLevel(logrus.DebugLevel)
	case verbosity == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// DefaultDB returns the default database directory, taken from the
// GLYPHMATCH_DB environment variable.  If this is not set, "./db" is used.
func DefaultDB() string {
	if dir := os.Getenv(dbEnv); dir != "" {
		return dir
	}
	return "db"
}
