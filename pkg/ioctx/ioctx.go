// Package ioctx carries a command's output streams in its context, so
// subcommands can be run against buffers in tests.
package ioctx

import (
	"context"
	"io"
	"os"
)

type stdoutKey struct{}
type stderrKey struct{}

func writerFromContext(ctx context.Context, key any, fallback io.Writer) io.Writer {
	if w, ok := ctx.Value(key).(io.Writer); ok && w != nil {
		return w
	}
	return fallback
}

// StdoutFromContext returns the writer for regular output, os.Stdout if none
// was set.
func StdoutFromContext(ctx context.Context) io.Writer {
	return writerFromContext(ctx, stdoutKey{}, os.Stdout)
}

func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

// StderrFromContext returns the writer for diagnostics, os.Stderr if none
// was set.
func StderrFromContext(ctx context.Context) io.Writer {
	return writerFromContext(ctx, stderrKey{}, os.Stderr)
}

func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey{}, w)
}
