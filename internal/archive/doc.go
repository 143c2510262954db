// Package archive zips a built package directory.
//
// [Zip.Archive] writes every file under a directory into a zip file, with
// entry names relative to the directory and slash separated, and returns an
// OCI content descriptor of the result (media type, sha256 digest, size and
// optional annotations such as the package version).
//
// Example usage:
//
//	desc, err := archive.Zip{}.Archive(ctx, "dist/package", "dist/package.zip", nil)
//	if err != nil {
//	    return err
//	}
//	slog.Info("archive created", "digest", desc.Digest)
package archive
