// Parses flags and runs toxbuild commands.
//
// The root command accepts the following flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is reconfigured to reflect the final level and verbosity
// before the selected command runs. The build command is the default, so
//
//	toxbuild build-settings.json
//
// is the same as "toxbuild build build-settings.json". The S3 log shipper is
// configured from flags or the TOXBUILD_S3_* environment variables; without
// an endpoint the application log is copied to the local state directory.
package cli
