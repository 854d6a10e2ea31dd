// Package prof wires Go's runtime profilers to the CLI flags.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session is an active profiling run started by Start.
type Session struct {
	cpuFile *os.File
	memPath string
}

// Start begins CPU profiling into cpuPath and remembers memPath for a heap
// profile at Stop. Empty paths disable the respective profile.
func Start(cpuPath, memPath string) (*Session, error) {
	s := &Session{memPath: memPath}
	if cpuPath == "" {
		return s, nil
	}
	f, err := os.Create(cpuPath)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends the CPU profile and writes the heap profile.
func (s *Session) Stop() error {
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.memPath != "" {
		errs = append(errs, writeMem(s.memPath))
		s.memPath = ""
	}
	return errors.Join(errs...)
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
