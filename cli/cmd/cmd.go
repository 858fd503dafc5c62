package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the given source path for reading. The path "-" selects
// stdin, whose Close is a no-op.
func openSource(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err)
	}

	return file, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources filters the given source paths down to a unique set. It
// resolves symlinks and compares device/inode pairs, so the same file named
// two different ways is processed only once. Paths that cannot be resolved
// are passed through untouched so the caller reports the open error itself.
// The first occurrence of "-" is kept and later ones dropped.
func uniqueSources(sources []string) []string {
	unique := make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})
	sawStdin := false

	for _, src := range sources {
		if src == stdinSource {
			if sawStdin {
				continue
			}

			sawStdin = true

			unique = append(unique, src)

			continue
		}

		key, ok := resolveFileKey(src)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		unique = append(unique, src)
	}

	return unique
}

// resolveFileKey resolves a path to its device/inode identity.
func resolveFileKey(path string) (key fileKey, ok bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return key, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return key, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}
