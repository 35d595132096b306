package trackio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrProtectedPath is returned when the destination is one of the protected inputs.
var ErrProtectedPath = errors.New("refusing to overwrite input track")

// Sink writes a track to a file path.
type Sink struct {
	Path string
	// Protected lists paths the sink must never overwrite.
	Protected []string
}

// WriteLines replaces the destination with lines, each terminated by "\n".
// The destination only changes once the full content has been written.
func (s Sink) WriteLines(ctx context.Context, lines []string) error {
	dest, err := filepath.Abs(s.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", s.Path, err)
	}
	if err := s.checkProtected(dest); err != nil {
		return err
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	lock := flock.New(dest + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", dest, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: held by another process", dest)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", dest, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("rename into %s: %w", dest, err)
	}
	committed = true
	return nil
}

func (s Sink) checkProtected(dest string) error {
	destInfo, destErr := os.Stat(dest)
	for _, p := range s.Protected {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if abs == dest {
			return fmt.Errorf("%w: %s", ErrProtectedPath, s.Path)
		}
		if destErr != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && os.SameFile(info, destInfo) {
			return fmt.Errorf("%w: %s", ErrProtectedPath, s.Path)
		}
	}
	return nil
}
