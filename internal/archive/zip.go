package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/paths"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Media type recorded in archive descriptors.
const MediaTypeZip = "application/zip"

// Creates zip archives of directories.
type Zip struct{}

// Zips the tree rooted at dir into dest, replacing any existing file, and
// returns its descriptor carrying a copy of annotations.
//
// The archive is written to a temporary file next to dest and renamed into
// place once complete, so dest never holds a partial archive.
func (z Zip) Archive(ctx context.Context, dir, dest string, annotations map[string]string) (ocispec.Descriptor, error) {
	desc, err := z.archive(ctx, dir, dest, annotations)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return desc, nil
}

func (z Zip) archive(ctx context.Context, dir, dest string, annotations map[string]string) (ocispec.Descriptor, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	if !info.IsDir() {
		return ocispec.Descriptor{}, fmt.Errorf("%w: %s", ErrNotADir, dir)
	}
	if within(dir, dest) {
		return ocispec.Descriptor{}, fmt.Errorf("%w: %s", ErrInsideTree, dest)
	}

	if err := os.MkdirAll(filepath.Dir(dest), paths.DefaultDirMode); err != nil {
		return ocispec.Descriptor{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	defer os.Remove(tmp.Name())

	digester := digest.Canonical.Digester()
	counter := &countingWriter{}
	zw := zip.NewWriter(io.MultiWriter(tmp, digester.Hash(), counter))

	if err := writeDirToZip(ctx, zw, dir); err != nil {
		tmp.Close()
		return ocispec.Descriptor{}, err
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return ocispec.Descriptor{}, err
	}
	if err := tmp.Close(); err != nil {
		return ocispec.Descriptor{}, err
	}
	if err := os.Chmod(tmp.Name(), paths.DefaultFileMode); err != nil {
		return ocispec.Descriptor{}, err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return ocispec.Descriptor{}, err
	}

	desc := ocispec.Descriptor{
		MediaType: MediaTypeZip,
		Digest:    digester.Digest(),
		Size:      counter.n,
	}
	if len(annotations) > 0 {
		desc.Annotations = maps.Clone(annotations)
	}
	return desc, nil
}

// Writes a directory tree into a zip writer. Entry names are relative to
// root; the root itself is not an entry.
func writeDirToZip(ctx context.Context, zw *zip.Writer, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		return writeZipEntry(zw, path, filepath.ToSlash(rel), d)
	})
}

// Writes a single file or directory entry. Other file types (symlinks,
// devices) are skipped.
func writeZipEntry(zw *zip.Writer, hostPath, name string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return nil
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
		header.Method = zip.Store
	} else {
		header.Method = zip.Deflate
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}

	f, err := os.Open(hostPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// Reports whether path lies inside dir.
func within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Counts bytes written through it.
type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
