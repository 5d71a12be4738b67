/*
Package buildinfo exists to provide a way to set build information at
compile-time with ldflags like so:

	LDFLAGS=(
	  "-X 'github.com/podkit/podkit/buildinfo.Version=${VERSION}'"
	  "-X 'github.com/podkit/podkit/buildinfo.Commit=${GIT_COMMIT}'"
	  "-X 'github.com/podkit/podkit/buildinfo.BuildDate=${BUILD_DATE}'"
	) && \
	go build -ldflags="${LDFLAGS[*]}"
*/

package buildinfo

// Version is the build-time version for the service. If unset, the config
// layer falls back to its default and the --version flag can still override
// it.
var Version string

// Commit is the git commit the binary was built from.
var Commit string

// BuildDate is the date the binary was built.
var BuildDate string
