package persistring_test

import (
	"fmt"
	"testing"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/cow"
	"github.com/JarvisCraft/persistring/delta"
	"github.com/JarvisCraft/persistring/flatrope"
	"github.com/JarvisCraft/persistring/rope"
)

// strategies enumerates the four PersistentString constructors so every
// benchmark below runs identically across all of them; this is what makes
// the numbers comparable instead of incidentally testing different
// workloads per strategy.
var strategies = []struct {
	name string
	new  func() persistring.PersistentString
}{
	{"cow", func() persistring.PersistentString { return cow.New() }},
	{"delta", func() persistring.PersistentString { return delta.New() }},
	{"rope", func() persistring.PersistentString { return rope.New() }},
	{"flatrope", func() persistring.PersistentString { return flatrope.New() }},
}

func BenchmarkPushStrAppendHeavy(b *testing.B) {
	for _, strat := range strategies {
		b.Run(strat.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s := strat.new()
				for j := 0; j < 1000; j++ {
					s.PushStr("chunk")
				}
			}
		})
	}
}

func BenchmarkSnapshotDeepHistory(b *testing.B) {
	for _, strat := range strategies {
		b.Run(strat.name, func(b *testing.B) {
			s := strat.new()
			for j := 0; j < 1000; j++ {
				s.PushStr("x")
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = s.Snapshot()
			}
		})
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	const base = "the quick brown fox jumps over the lazy dog"
	mid := len([]rune(base)) / 2

	for _, strat := range strategies {
		b.Run(strat.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s := strat.new()
				s.PushStr(base)
				for j := 0; j < 50; j++ {
					s.Insert(mid, 'x')
				}
			}
		})
	}
}

func BenchmarkVersionSwitchAfterHistory(b *testing.B) {
	for _, strat := range strategies {
		b.Run(strat.name, func(b *testing.B) {
			s := strat.new()
			handles := make([]persistring.Handle, 0, 200)
			for j := 0; j < 200; j++ {
				s.PushStr(fmt.Sprintf("v%d", j))
				handles = append(handles, s.Version())
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.SwitchVersion(handles[i%len(handles)])
			}
		})
	}
}
