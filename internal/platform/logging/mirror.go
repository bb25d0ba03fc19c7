package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every emitted log entry so it can be forwarded to a
// second sink, such as an OTLP log exporter. Mirrors must not log through
// this package or they will recurse.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirrorFunc atomic.Pointer[MirrorFunc]

// SetMirror installs the process-wide log mirror. Passing nil removes it.
func SetMirror(f MirrorFunc) {
	if f == nil {
		mirrorFunc.Store(nil)
		return
	}
	mirrorFunc.Store(&f)
}

func mirror(ctx context.Context, level Level, msg string, args []any) {
	f := mirrorFunc.Load()
	if f == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	(*f)(ctx, level, msg, args...)
}
