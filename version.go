package artmarket

import "fmt"

const (
	versionMajor = 0
	versionMinor = 1
	versionPatch = 0
)

// GitCommit is injected at build time with
//
//	-ldflags "-X github.com/iov-one/artmarket.GitCommit=<sha>"
var GitCommit = ""

// Version returns the release of the node and cli, followed by the commit
// when it is known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d-dev", versionMajor, versionMinor, versionPatch)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
