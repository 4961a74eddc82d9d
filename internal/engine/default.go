package engine

import "sync"

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a process-wide Engine constructed with no collaborators
// - a convenience for callers that don't want to thread an *Engine through
// their call graph. It is lazily built on first use and never reset; tests
// should always construct a fresh Engine with New instead of relying on
// this getter.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}
