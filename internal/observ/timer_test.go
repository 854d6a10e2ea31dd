package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("decode")
	time.Sleep(time.Millisecond)
	be.True(t, tm.End(i, "3 decls") > 0)
	j := tm.Begin("lower")
	tm.End(j, "")

	r := tm.Report()
	be.Equal(t, len(r.Phases), 2)
	be.Equal(t, r.Phases[0].Name, "decode")
	be.Equal(t, r.Phases[0].Note, "3 decls")
	be.True(t, r.TotalMS >= r.Phases[0].DurationMS)

	s := tm.Summary()
	be.True(t, strings.Contains(s, "decode"))
	be.True(t, strings.Contains(s, "// 3 decls"))
	be.True(t, strings.Contains(s, "total"))
}

func TestTimerBadIndex(t *testing.T) {
	tm := NewTimer()
	be.Equal(t, tm.End(3, ""), time.Duration(0))
	be.Equal(t, len(tm.Report().Phases), 0)
}
