package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	s, err := Start(cpu, mem)
	be.Err(t, err, nil)
	be.Err(t, s.Stop(), nil)

	for _, path := range []string{cpu, mem} {
		info, err := os.Stat(path)
		be.Err(t, err, nil)
		be.True(t, info.Size() > 0)
	}
	// a second Stop is a no-op
	be.Err(t, s.Stop(), nil)
}

func TestSessionDisabled(t *testing.T) {
	s, err := Start("", "")
	be.Err(t, err, nil)
	be.Err(t, s.Stop(), nil)
}
