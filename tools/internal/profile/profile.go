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

// Package profile writes CPU and memory profiles for the command line
// tools.
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/sirupsen/logrus"
)

// Profiler records the profiles requested on the command line.
type Profiler struct {
	memFile string
	cpu     *os.File
	log     logrus.FieldLogger
}

// Start begins CPU profiling, if cpuFile is not empty.
// If memFile is not empty, an allocation profile is written to this
// file when Stop is called.
func Start(cpuFile, memFile string, log logrus.FieldLogger) (*Profiler, error) {
	p := &Profiler{memFile: memFile, log: log}
	if cpuFile == "" {
		return p, nil
	}

	fd, err := os.Create(cpuFile)
	if err != nil {
		return nil, fmt.Errorf("CPU profile: %w", err)
	}
	err = pprof.StartCPUProfile(fd)
	if err != nil {
		fd.Close()
		return nil, fmt.Errorf("CPU profile: %w", err)
	}
	p.cpu = fd
	return p, nil
}

// Stop finishes the CPU profile and writes the memory profile.
// Problems are logged, since there is nothing the caller could do
// about them.
func (p *Profiler) Stop() {
	if p.cpu != nil {
		pprof.StopCPUProfile()
		if err := p.cpu.Close(); err != nil {
			p.log.WithError(err).Error("cannot write CPU profile")
		}
		p.cpu = nil
	}

	if p.memFile == "" {
		return
	}
	err := p.writeAllocs()
	if err != nil {
		p.log.WithError(err).WithField("file", p.memFile).Error("cannot write memory profile")
	}
	p.memFile = ""
}

func (p *Profiler) writeAllocs() error {
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		return errors.New("no allocation profile available")
	}

	fd, err := os.Create(p.memFile)
	if err != nil {
		return err
	}
	runtime.GC()
	err = allocs.WriteTo(fd, 0)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
