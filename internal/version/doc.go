// Package version derives a build version from git history.
//
// The release line comes from the nearest reachable tag matching
// "v<major>.<minor>*". The patch number is not read from the tag: it is the
// number of commits between the "v<major>.<minor>" lineage point and HEAD,
// so every commit on a release line yields a new, larger version.
//
//	v2.3 ── a ── b ── c (HEAD)    →  2.3.3
//
// Branch, abbreviated commit and the origin remote are captured alongside.
//
// Example usage:
//
//	info, err := version.NewResolver(version.Options{Dir: "."}).Resolve(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Semver)
package version
