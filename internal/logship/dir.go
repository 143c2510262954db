package logship

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/SudoMagicCode/action-build-td-tox-package/internal/paths"
)

// Copies logs into a local directory as "<build-id>-<file>".
type Dir struct {
	Path string
}

// Implements [Shipper].
func (d Dir) Ship(ctx context.Context, rec Record) error {
	if err := d.ship(ctx, rec); err != nil {
		return fmt.Errorf("%w: %w", ErrShip, err)
	}
	return nil
}

func (d Dir) ship(ctx context.Context, rec Record) error {
	if _, err := checkLog(rec.Path); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Path, paths.DefaultDirMode); err != nil {
		return err
	}

	name := filepath.Base(rec.Path)
	if rec.BuildID != "" {
		name = rec.BuildID + "-" + name
	}
	dest := filepath.Join(d.Path, name)

	src, err := os.Open(rec.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return err
	}

	n, err := io.Copy(dst, &ctxReader{ctx: ctx, r: src})
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return err
	}

	slog.Info("log stored", "path", dest, "bytes", n, logging.Depth(2))
	return nil
}

// Stops reading once the context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
