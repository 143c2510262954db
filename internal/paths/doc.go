// Provides platform-appropriate paths for toxbuild.
//
// Paths follow XDG conventions on Linux and platform-native conventions on
// macOS and Windows, with "toxbuild" as the subdirectory under each base.
package paths
